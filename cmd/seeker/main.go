package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/cor1nthian/wincontentseeker/internal/config"
	"github.com/cor1nthian/wincontentseeker/internal/core"
	"github.com/cor1nthian/wincontentseeker/internal/report"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorOrange = "\033[38;5;208m"
	colorGray   = "\033[38;5;245m"
)

var (
	version = "0.1.0"
	logger  *zap.Logger
	verbose bool
)

func main() {
	rootCmd := seekCmd()
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// seekCmd creates the root command
func seekCmd() *cobra.Command {
	var (
		search         string
		maxSize        string
		md5Threshold   string
		alwaysSHA256   bool
		clearScreen    bool
		sizeUnit       string
		fractionDigits int
		compareMethod  string
	)

	cmd := &cobra.Command{
		Use:   "seeker <folder> [search]",
		Short: "Seeker - recursive content search with file hashing",
		Long: `Recursively scan a directory tree for files whose text content matches
a search expression and report each match with its size and content hash.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Initialize logger based on verbose flag
			var err error
			if verbose {
				logger, err = zap.NewDevelopment()
			} else {
				// Silent logger - only errors
				cfg := zap.Config{
					Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
					Encoding:         "json",
					OutputPaths:      []string{"stderr"},
					ErrorOutputPaths: []string{"stderr"},
					EncoderConfig:    zap.NewProductionEncoderConfig(),
				}
				logger, err = cfg.Build()
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
				return err
			}
			defer logger.Sync()

			// Load configuration
			cfg, err := config.LoadConfig()
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			// Override config with CLI input
			if len(args) > 0 {
				cfg.RootFolder = args[0]
			}
			if len(args) > 1 {
				cfg.Search = args[1]
			}
			if search != "" {
				cfg.Search = search
			}
			if maxSize != "" {
				cfg.MaxSize = maxSize
			}
			if md5Threshold != "" {
				cfg.MD5Threshold = md5Threshold
			}
			if alwaysSHA256 {
				cfg.AlwaysSHA256 = true
			}
			if cmd.Flags().Changed("cls") {
				cfg.ClearScreen = clearScreen
			}
			if sizeUnit != "" {
				cfg.SizeUnit = sizeUnit
			}
			if cmd.Flags().Changed("fraction-digits") {
				cfg.FractionDigits = fractionDigits
			}
			if compareMethod != "" {
				cfg.CompareMethod = compareMethod
			}

			if err := cfg.Validate(); err != nil {
				printError(err)
				return err
			}

			// Create scanner
			scanner, err := core.NewScanner(cfg, logger)
			if err != nil {
				printError(err)
				return err
			}

			// Set up progress callback
			started := false
			scanner.SetProgressCallback(func(current, total int, path string) {
				if started {
					fmt.Print("\033[1A\033[K")
				}
				started = true

				pct := float64(current) / float64(total) * 100
				barWidth := 30
				filled := int(float64(barWidth) * float64(current) / float64(total))
				bar := repeat("█", filled) + repeat("░", barWidth-filled)
				fmt.Printf("  %sScanning:%s [%s%s%s] %s%.1f%%%s (%d/%d)\n",
					colorGray, colorReset, colorOrange, bar, colorReset, colorOrange, pct, colorReset, current, total)
			})

			// Run scan
			results, err := scanner.Scan(cfg.RootFolder)
			if err != nil {
				printError(err)
				return err
			}

			if cfg.ClearScreen {
				fmt.Print("\033[2J\033[H")
			}

			builder := report.NewBuilder(cfg, logger)
			fmt.Print(builder.Render(results))

			waitForKey()
			return nil
		},
	}

	// Flags
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search expression (alternative to the second argument)")
	cmd.Flags().StringVar(&maxSize, "max-size", "", "Maximum file size to scan (default: 100M)")
	cmd.Flags().StringVar(&md5Threshold, "md5-threshold", "", "Size boundary between MD5 and SHA256 hashing (default: 50M)")
	cmd.Flags().BoolVar(&alwaysSHA256, "sha256-always", false, "Always hash with SHA256 regardless of file size")
	cmd.Flags().BoolVar(&clearScreen, "cls", true, "Clear the screen before printing the report")
	cmd.Flags().StringVar(&sizeUnit, "size-unit", "", "Unit for the size column: K, M or G (default: K)")
	cmd.Flags().IntVar(&fractionDigits, "fraction-digits", 2, "Fraction digits for the size column: 2, 3 or 4")
	cmd.Flags().StringVar(&compareMethod, "compare", "", "Compare method: equal, equalignorecase, partialmatch, partialmatchignorecase (default: partialmatchignorecase)")

	return cmd
}

// printError prints a fatal error in red to the error stream
func printError(err error) {
	fmt.Fprintf(os.Stderr, "\n  %s✗ Error:%s %s\n\n", colorRed, colorReset, err.Error())
}

// waitForKey blocks until a single keypress. Skipped when stdin is not
// a terminal so piped runs terminate on their own.
func waitForKey() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return
	}

	fmt.Printf("\n  %sPress any key to exit...%s", colorGray, colorReset)

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	defer term.Restore(fd, oldState)

	buf := make([]byte, 1)
	os.Stdin.Read(buf)
	fmt.Println()
}

// repeat returns a string with character c repeated n times
func repeat(c string, n int) string {
	if n <= 0 {
		return ""
	}
	result := ""
	for i := 0; i < n; i++ {
		result += c
	}
	return result
}
