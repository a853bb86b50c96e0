package models

import "time"

// ScanResults contains the complete scan results
type ScanResults struct {
	// Summary
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	ScanPath  string        `json:"scan_path"`

	// Counters
	TotalFiles   int `json:"total_files"`
	TotalDirs    int `json:"total_dirs"`
	ScannedFiles int `json:"scanned_files"`
	SkippedFiles int `json:"skipped_files"`
	MatchedFiles int `json:"matched_files"`
	ReadErrors   int `json:"read_errors"`

	// Rows in discovery order, one per matched file
	Rows []*ReportRow `json:"rows"`
}

// AddRow appends a report row for a matched file
func (r *ScanResults) AddRow(row *ReportRow) {
	r.Rows = append(r.Rows, row)
	r.MatchedFiles++
}
