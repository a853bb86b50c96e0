package report

import (
	"math"

	"go.uber.org/zap"

	"github.com/cor1nthian/wincontentseeker/internal/config"
	"github.com/cor1nthian/wincontentseeker/internal/filesystem"
	"github.com/cor1nthian/wincontentseeker/internal/hasher"
	"github.com/cor1nthian/wincontentseeker/pkg/models"
)

// Builder assembles report rows for matched files
type Builder struct {
	config *config.Config
	logger *zap.Logger
}

// NewBuilder creates a new report builder
func NewBuilder(cfg *config.Config, logger *zap.Logger) *Builder {
	return &Builder{
		config: cfg,
		logger: logger,
	}
}

// BuildRow builds the report row for a matched file. The file content
// is re-read in full for hashing, independent of whatever partial read
// decided the match. A hash failure degrades to an absent hash field;
// path, size and algorithm label stay populated.
func (b *Builder) BuildRow(path string) *models.ReportRow {
	size := filesystem.SizeOf(path)
	algo := b.SelectAlgorithm(size)

	row := &models.ReportRow{
		Path:       path,
		Size:       size,
		ScaledSize: b.scaledSize(size),
		Algorithm:  algo,
	}

	sum, err := hasher.Hash(hasher.FromFile(path), algo)
	if err != nil {
		b.logger.Warn("Hash failed, emitting row without hash",
			zap.String("path", path),
			zap.String("algorithm", string(algo)),
			zap.Error(err))
		return row
	}
	row.Hash = sum

	return row
}

// SelectAlgorithm picks the hash algorithm for a file of the given
// size. Pure function of the configuration and the size.
func (b *Builder) SelectAlgorithm(size int64) models.HashAlgorithm {
	if b.config.AlwaysSHA256 {
		return models.AlgoSHA256
	}
	if size <= filesystem.ParseSize(b.config.MD5Threshold) {
		return models.AlgoMD5
	}
	return models.AlgoSHA256
}

// scaledSize converts a byte count to the configured unit, rounded to
// the configured number of fraction digits
func (b *Builder) scaledSize(size int64) float64 {
	divisor, err := b.config.SizeDivisor()
	if err != nil {
		divisor = 1 << 10
	}
	pow := math.Pow10(b.config.FractionDigits)
	return math.Round(float64(size)/float64(divisor)*pow) / pow
}
