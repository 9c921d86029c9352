package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// moveToArchived moves a processed source out of the inbox. An existing file
// with the same name is kept and the new one gets a timestamp suffix.
func (p *implProcessor) moveToArchived(ctx context.Context, srcPath string) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0o755); err != nil {
		return "", fmt.Errorf("create archived dir: %w", err)
	}

	filename := filepath.Base(srcPath)
	destPath := filepath.Join(p.cfg.Paths.Archived, filename)
	if _, err := os.Stat(destPath); err == nil {
		ext := filepath.Ext(filename)
		stamp := time.Now().Format("20060102-150405")
		destPath = filepath.Join(p.cfg.Paths.Archived, strings.TrimSuffix(filename, ext)+"_"+stamp+ext)
	}

	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", srcPath, destPath)

	if err := os.Rename(srcPath, destPath); err != nil {
		return "", fmt.Errorf("move to archived: %w", err)
	}
	return destPath, nil
}

// baseName strips directory and extension: "in/standup.mp4" -> "standup".
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
