package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cor1nthian/wincontentseeker/internal/config"
	"github.com/cor1nthian/wincontentseeker/internal/filesystem"
	"github.com/cor1nthian/wincontentseeker/internal/matcher"
	"github.com/cor1nthian/wincontentseeker/internal/report"
	"github.com/cor1nthian/wincontentseeker/pkg/models"
)

// maxLineBytes caps a single line read during matching. Longer lines
// (typically binary content) degrade to a read error for that file.
const maxLineBytes = 1024 * 1024

// ErrNoFiles is returned when the traversal yields zero regular files
var ErrNoFiles = errors.New("no files found under root folder")

// ProgressCallback is called to report scan progress. Percent complete
// is current/total*100.
type ProgressCallback func(current, total int, path string)

// Scanner is the main scan engine. It enumerates every regular file
// under the root, matches content line by line and builds one report
// row per matched file, strictly one file at a time in discovery order.
type Scanner struct {
	config           *config.Config
	logger           *zap.Logger
	matcher          *matcher.Matcher
	builder          *report.Builder
	walker           *filesystem.Walker
	results          *models.ScanResults
	progressCallback ProgressCallback
}

// NewScanner creates a new scanner instance. The search expression is
// compiled here, so an invalid expression fails before any file is read.
func NewScanner(cfg *config.Config, logger *zap.Logger) (*Scanner, error) {
	m, err := matcher.New(cfg.Search, cfg.GetCompareMethod())
	if err != nil {
		return nil, err
	}

	return &Scanner{
		config:  cfg,
		logger:  logger,
		matcher: m,
		builder: report.NewBuilder(cfg, logger),
		walker:  filesystem.NewWalker(logger),
		results: &models.ScanResults{},
	}, nil
}

// SetProgressCallback sets the progress callback function
func (s *Scanner) SetProgressCallback(cb ProgressCallback) {
	s.progressCallback = cb
}

// reportProgress calls the progress callback if set
func (s *Scanner) reportProgress(current, total int, path string) {
	if s.progressCallback != nil {
		s.progressCallback(current, total, path)
	}
}

// Scan performs the content scan
func (s *Scanner) Scan(path string) (*models.ScanResults, error) {
	s.logger.Info("Starting scan",
		zap.String("path", path),
		zap.String("search", s.config.Search),
		zap.String("method", s.matcher.Method().String()))

	s.results.StartTime = time.Now()
	s.results.ScanPath = path

	// Count files first so progress can report a fraction
	totalFiles := s.countFiles(path)
	if totalFiles == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, path)
	}

	maxSize := filesystem.ParseSize(s.config.MaxSize)
	processed := 0

	walkErr := s.walker.Walk(path, func(fileInfo *models.FileInfo) error {
		if fileInfo.IsDir {
			s.results.TotalDirs++
			return nil
		}

		s.results.TotalFiles++
		processed++
		s.reportProgress(processed, totalFiles, fileInfo.Path)

		// Probe size; a vanished file reads as zero bytes and passes
		// the ceiling, failing later at open time, which is tolerated.
		size := filesystem.SizeOf(fileInfo.Path)
		if size > maxSize {
			s.logger.Debug("File too large, skipping",
				zap.String("path", fileInfo.Path),
				zap.Int64("size", size))
			s.results.SkippedFiles++
			return nil
		}

		matched, err := s.matchFile(fileInfo.Path)
		if err != nil {
			s.logger.Debug("File unreadable, treating as no match",
				zap.String("path", fileInfo.Path),
				zap.Error(err))
			s.results.ReadErrors++
			return nil
		}

		s.results.ScannedFiles++
		if matched {
			s.results.AddRow(s.builder.BuildRow(fileInfo.Path))
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	s.results.EndTime = time.Now()
	s.results.Duration = s.results.EndTime.Sub(s.results.StartTime)

	s.logger.Info("Scan completed",
		zap.Duration("duration", s.results.Duration),
		zap.Int("files_scanned", s.results.ScannedFiles),
		zap.Int("files_matched", s.results.MatchedFiles),
		zap.Int("files_skipped", s.results.SkippedFiles),
		zap.Int("read_errors", s.results.ReadErrors))

	return s.results, nil
}

// countFiles counts regular files under the root
func (s *Scanner) countFiles(path string) int {
	count := 0
	s.walker.Walk(path, func(fileInfo *models.FileInfo) error {
		if !fileInfo.IsDir {
			count++
		}
		return nil
	})
	return count
}

// matchFile opens a file and looks for the first matching line. The
// stream is released as soon as the match decision is made.
func (s *Scanner) matchFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	return s.matchReader(f)
}

// matchReader iterates lines and stops at the first match
func (s *Scanner) matchReader(r io.Reader) (bool, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if s.matcher.Matches(scanner.Text()) {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return false, nil
}
