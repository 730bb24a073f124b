package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// moveToArchived moves a finished recording out of the watched folder
func (p *implProcessor) moveToArchived(ctx context.Context, audioPath string) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}
	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(audioPath))

	p.logger.Info(ctx, "Archiving: %s -> %s", audioPath, destPath)
	if err := os.Rename(audioPath, destPath); err != nil {
		return "", fmt.Errorf("move to archived: %w", err)
	}
	return destPath, nil
}

// inRecordings reports whether path sits directly in the recordings folder.
// Only those files are archived; explicit CLI inputs stay where they are.
func (p *implProcessor) inRecordings(path string) bool {
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return false
	}
	rec, err := filepath.Abs(p.cfg.Paths.Recordings)
	if err != nil {
		return false
	}
	return dir == rec
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (p *implProcessor) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}
