package models

// ReportRow is the emitted record for a single matched file.
// Hash is empty when the digest could not be computed; the row is still
// valid and keeps its path, size and algorithm label.
type ReportRow struct {
	Path       string        `json:"path"`
	Size       int64         `json:"size_bytes"`
	ScaledSize float64       `json:"scaled_size"`
	Algorithm  HashAlgorithm `json:"algorithm"`
	Hash       string        `json:"hash,omitempty"`
}

// HashAbsent reports whether the digest degraded to an absent value
func (r *ReportRow) HashAbsent() bool {
	return r.Hash == ""
}
