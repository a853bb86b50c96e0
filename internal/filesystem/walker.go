package filesystem

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cor1nthian/wincontentseeker/pkg/models"
)

// Walker walks the filesystem and enumerates entries under a root
type Walker struct {
	logger *zap.Logger
}

// NewWalker creates a new filesystem walker
func NewWalker(logger *zap.Logger) *Walker {
	return &Walker{logger: logger}
}

// Walk recursively walks the directory tree in discovery order.
// Entries that cannot be accessed are logged and skipped; the walk
// itself continues. Symlink traversal is left to the platform API.
func (w *Walker) Walk(root string, callback func(*models.FileInfo) error) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			w.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			return nil // Continue walking
		}

		fileInfo := &models.FileInfo{
			Path:      path,
			Size:      info.Size(),
			ModTime:   info.ModTime(),
			IsDir:     info.IsDir(),
			IsSymlink: info.Mode()&os.ModeSymlink != 0,
			IsHidden:  isHidden(info.Name()),
		}

		return callback(fileInfo)
	})
}

// isHidden checks if a file is hidden
func isHidden(name string) bool {
	// Unix-like systems: files starting with dot
	if len(name) > 0 && name[0] == '.' {
		return true
	}
	return false
}
