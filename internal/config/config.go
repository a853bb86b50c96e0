package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/cor1nthian/wincontentseeker/internal/filesystem"
	"github.com/cor1nthian/wincontentseeker/pkg/models"
)

// Config represents the seeker configuration. It is assembled once from
// defaults, environment and CLI flags, then treated as read-only.
type Config struct {
	// Scan settings
	RootFolder   string `mapstructure:"root_folder"`   // directory tree to scan
	Search       string `mapstructure:"search"`        // search expression
	MaxSize      string `mapstructure:"max_size"`      // size ceiling, files above are never opened
	MD5Threshold string `mapstructure:"md5_threshold"` // boundary between MD5 and SHA256 hashing
	AlwaysSHA256 bool   `mapstructure:"always_sha256"` // force SHA256 regardless of size

	// Matching settings
	CompareMethod string `mapstructure:"compare_method"` // equal, equalignorecase, partialmatch, partialmatchignorecase

	// Report settings
	SizeUnit       string `mapstructure:"size_unit"`       // K, M or G
	FractionDigits int    `mapstructure:"fraction_digits"` // 2, 3 or 4
	ClearScreen    bool   `mapstructure:"clear_screen"`    // clear console before the report
}

// LoadConfig loads configuration from environment variables and defaults
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("max_size", "100M")
	v.SetDefault("md5_threshold", "50M")
	v.SetDefault("always_sha256", false)
	v.SetDefault("compare_method", "partialmatchignorecase")
	v.SetDefault("size_unit", "K")
	v.SetDefault("fraction_digits", 2)
	v.SetDefault("clear_screen", true)

	// Read environment variables
	v.SetEnvPrefix("SEEKER")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration before a scan starts
func (c *Config) Validate() error {
	if c.RootFolder == "" {
		return fmt.Errorf("root folder is required")
	}
	if _, err := os.Stat(c.RootFolder); err != nil {
		return fmt.Errorf("root folder is not accessible: %w", err)
	}
	if c.Search == "" {
		return fmt.Errorf("search expression is required")
	}
	if filesystem.ParseSize(c.MaxSize) < 0 {
		return fmt.Errorf("max size must be >= 0 (got: %s)", c.MaxSize)
	}
	if filesystem.ParseSize(c.MD5Threshold) < 0 {
		return fmt.Errorf("md5 threshold must be >= 0 (got: %s)", c.MD5Threshold)
	}
	if _, err := c.SizeDivisor(); err != nil {
		return err
	}
	switch c.FractionDigits {
	case 2, 3, 4:
	default:
		return fmt.Errorf("fraction digits must be 2, 3 or 4 (got: %d)", c.FractionDigits)
	}
	if _, err := models.ParseCompareMethod(c.CompareMethod); err != nil {
		return err
	}
	return nil
}

// GetCompareMethod returns the compare method enum value
func (c *Config) GetCompareMethod() models.CompareMethod {
	method, err := models.ParseCompareMethod(c.CompareMethod)
	if err != nil {
		return models.ComparePartialMatchIgnoreCase
	}
	return method
}

// SizeDivisor returns the divisor for the scaled size column
func (c *Config) SizeDivisor() (int64, error) {
	switch c.SizeUnit {
	case "K", "k":
		return 1 << 10, nil
	case "M", "m":
		return 1 << 20, nil
	case "G", "g":
		return 1 << 30, nil
	default:
		return 0, fmt.Errorf("size unit must be K, M or G (got: %s)", c.SizeUnit)
	}
}

// SizeLabel returns the header label for the scaled size column
func (c *Config) SizeLabel() string {
	switch c.SizeUnit {
	case "M", "m":
		return "Size, MB"
	case "G", "g":
		return "Size, GB"
	default:
		return "Size, KB"
	}
}
