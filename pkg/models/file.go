package models

import (
	"time"
)

// FileInfo contains basic file information without content
type FileInfo struct {
	Path      string
	Size      int64
	ModTime   time.Time
	IsDir     bool
	IsSymlink bool
	IsHidden  bool
}
