package core

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/cor1nthian/wincontentseeker/internal/config"
	"github.com/cor1nthian/wincontentseeker/pkg/models"
)

func testConfig(root string) *config.Config {
	return &config.Config{
		RootFolder:     root,
		Search:         "world",
		MaxSize:        "100M",
		MD5Threshold:   "50M",
		CompareMethod:  "partialmatchignorecase",
		SizeUnit:       "K",
		FractionDigits: 2,
	}
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file %s: %v", name, err)
		}
	}
}

func TestScan_PartialMatchIgnoreCase(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"a.txt": "hello WORLD",
		"b.txt": "goodbye",
	})

	cfg := testConfig(tmpDir)
	scanner, err := NewScanner(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("NewScanner() error = %v", err)
	}

	results, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(results.Rows) != 1 {
		t.Fatalf("Scan() produced %d rows, want 1", len(results.Rows))
	}
	if want := filepath.Join(tmpDir, "a.txt"); results.Rows[0].Path != want {
		t.Errorf("matched path = %q, want %q", results.Rows[0].Path, want)
	}
	if results.TotalFiles != 2 {
		t.Errorf("TotalFiles = %d, want 2", results.TotalFiles)
	}
	if results.MatchedFiles != 1 {
		t.Errorf("MatchedFiles = %d, want 1", results.MatchedFiles)
	}
}

func TestScan_EqualSemantics(t *testing.T) {
	tests := []struct {
		name    string
		content string
		matched bool
	}{
		{"Exact single line", "hello WORLD", true},
		{"Trailing newline stripped by line decode", "hello WORLD\n", true},
		{"Trailing space", "hello WORLD \n", false},
		{"Case differs", "hello world", false},
		{"Second line matches", "first\nhello WORLD\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			writeFiles(t, tmpDir, map[string]string{"a.txt": tt.content})

			cfg := testConfig(tmpDir)
			cfg.Search = "hello WORLD"
			cfg.CompareMethod = "equal"

			scanner, err := NewScanner(cfg, zap.NewNop())
			if err != nil {
				t.Fatalf("NewScanner() error = %v", err)
			}
			results, err := scanner.Scan(tmpDir)
			if err != nil {
				t.Fatalf("Scan() error = %v", err)
			}

			if got := len(results.Rows) == 1; got != tt.matched {
				t.Errorf("matched = %v, want %v", got, tt.matched)
			}
		})
	}
}

func TestScan_SizeCeiling(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"big.txt": "0123456789", // 10 bytes
	})

	cfg := testConfig(tmpDir)
	cfg.Search = "123"
	cfg.MaxSize = "5"

	scanner, err := NewScanner(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("NewScanner() error = %v", err)
	}
	results, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(results.Rows) != 0 {
		t.Errorf("Scan() produced %d rows, want 0 (file above ceiling)", len(results.Rows))
	}
	if results.SkippedFiles != 1 {
		t.Errorf("SkippedFiles = %d, want 1", results.SkippedFiles)
	}
	if results.ScannedFiles != 0 {
		t.Errorf("ScannedFiles = %d, want 0 (file must never be opened)", results.ScannedFiles)
	}
}

func TestScan_EmptyFolder(t *testing.T) {
	tmpDir := t.TempDir()

	scanner, err := NewScanner(testConfig(tmpDir), zap.NewNop())
	if err != nil {
		t.Fatalf("NewScanner() error = %v", err)
	}

	_, err = scanner.Scan(tmpDir)
	if !errors.Is(err, ErrNoFiles) {
		t.Errorf("Scan() error = %v, want ErrNoFiles", err)
	}
}

func TestScan_NoMatches(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"a.txt": "nothing here",
		"b.txt": "nor here",
	})

	scanner, err := NewScanner(testConfig(tmpDir), zap.NewNop())
	if err != nil {
		t.Fatalf("NewScanner() error = %v", err)
	}
	results, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(results.Rows) != 0 {
		t.Errorf("Scan() produced %d rows, want 0", len(results.Rows))
	}
	if results.ScannedFiles != 2 {
		t.Errorf("ScannedFiles = %d, want 2", results.ScannedFiles)
	}
}

func TestScan_DiscoveryOrder(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"a.txt": "world",
		"b.txt": "world",
		"c.txt": "world",
	})

	scanner, err := NewScanner(testConfig(tmpDir), zap.NewNop())
	if err != nil {
		t.Fatalf("NewScanner() error = %v", err)
	}
	results, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := []string{"a.txt", "b.txt", "c.txt"}
	if len(results.Rows) != len(want) {
		t.Fatalf("Scan() produced %d rows, want %d", len(results.Rows), len(want))
	}
	for i, name := range want {
		if got := filepath.Base(results.Rows[i].Path); got != name {
			t.Errorf("rows[%d] = %q, want %q", i, got, name)
		}
	}
}

func TestScan_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"a.txt": "hello world",
		"b.txt": "goodbye",
	})

	run := func() *models.ScanResults {
		scanner, err := NewScanner(testConfig(tmpDir), zap.NewNop())
		if err != nil {
			t.Fatalf("NewScanner() error = %v", err)
		}
		results, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		return results
	}

	first := run()
	second := run()

	if len(first.Rows) != len(second.Rows) {
		t.Fatalf("row counts differ: %d vs %d", len(first.Rows), len(second.Rows))
	}
	for i := range first.Rows {
		a, b := first.Rows[i], second.Rows[i]
		if a.Path != b.Path || a.Hash != b.Hash || a.Algorithm != b.Algorithm || a.ScaledSize != b.ScaledSize {
			t.Errorf("rows[%d] differ between runs: %+v vs %+v", i, a, b)
		}
	}
}

func TestScan_UnreadableContentIsNoMatch(t *testing.T) {
	tmpDir := t.TempDir()

	// A single "line" longer than the line cap degrades to a read
	// error for that file, which counts as no match
	huge := strings.Repeat("x", maxLineBytes+1)
	writeFiles(t, tmpDir, map[string]string{
		"binary.bin": huge,
		"good.txt":   "hello world",
	})

	scanner, err := NewScanner(testConfig(tmpDir), zap.NewNop())
	if err != nil {
		t.Fatalf("NewScanner() error = %v", err)
	}
	results, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(results.Rows) != 1 {
		t.Fatalf("Scan() produced %d rows, want 1", len(results.Rows))
	}
	if got := filepath.Base(results.Rows[0].Path); got != "good.txt" {
		t.Errorf("matched file = %q, want good.txt", got)
	}
	if results.ReadErrors != 1 {
		t.Errorf("ReadErrors = %d, want 1", results.ReadErrors)
	}
}

// countingReader tracks how many bytes the matcher actually consumed
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func TestMatchReader_ShortCircuit(t *testing.T) {
	// First line matches; the rest of the stream must stay unread
	// beyond the scanner's initial buffered chunk
	filler := strings.Repeat("filler line that does not match\n", 32*1024)
	content := "hello world\n" + filler

	scanner, err := NewScanner(testConfig(t.TempDir()), zap.NewNop())
	if err != nil {
		t.Fatalf("NewScanner() error = %v", err)
	}

	cr := &countingReader{r: strings.NewReader(content)}
	matched, err := scanner.matchReader(cr)
	if err != nil {
		t.Fatalf("matchReader() error = %v", err)
	}
	if !matched {
		t.Fatal("matchReader() = false, want true")
	}

	if cr.n >= len(content)/2 {
		t.Errorf("matcher consumed %d of %d bytes, expected an early stop", cr.n, len(content))
	}
}

func TestScan_ProgressCallback(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"a.txt": "hello world",
		"b.txt": "goodbye",
		"c.txt": "world again",
	})

	scanner, err := NewScanner(testConfig(tmpDir), zap.NewNop())
	if err != nil {
		t.Fatalf("NewScanner() error = %v", err)
	}

	var calls int
	var lastCurrent, lastTotal int
	scanner.SetProgressCallback(func(current, total int, path string) {
		calls++
		lastCurrent, lastTotal = current, total
		if path == "" {
			t.Error("progress callback received empty path")
		}
		if current < 1 || current > total {
			t.Errorf("progress current = %d, total = %d", current, total)
		}
	})

	if _, err := scanner.Scan(tmpDir); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if calls != 3 {
		t.Errorf("progress callback called %d times, want 3", calls)
	}
	if lastCurrent != 3 || lastTotal != 3 {
		t.Errorf("final progress = %d/%d, want 3/3", lastCurrent, lastTotal)
	}
}

func TestNewScanner_InvalidExpression(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Search = "[unclosed"
	cfg.CompareMethod = "partialmatch"

	if _, err := NewScanner(cfg, zap.NewNop()); err == nil {
		t.Error("NewScanner() expected error for invalid regex, got nil")
	}
}
