package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// CleanupOldLogs removes files in dir matching pattern whose modification time
// is older than retentionDays. Paths listed in keep are never removed. A
// retentionDays value of 0 disables pruning. It returns the number of files
// removed.
func CleanupOldLogs(logger *slog.Logger, dir, pattern string, retentionDays int, keep ...string) int {
	if retentionDays <= 0 || dir == "" {
		return 0
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	kept := make(map[string]struct{}, len(keep))
	for _, path := range keep {
		if abs, err := filepath.Abs(path); err == nil {
			kept[abs] = struct{}{}
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if pattern != "" {
			if matched, err := filepath.Match(pattern, entry.Name()); err != nil || !matched {
				continue
			}
		}
		fullPath := filepath.Join(dir, entry.Name())
		if abs, err := filepath.Abs(fullPath); err == nil {
			fullPath = abs
		}
		if _, skip := kept[fullPath]; skip {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(fullPath); err != nil {
			WarnWithContext(logger, "log retention remove failed; file remains", "log_retention_failed",
				String("path", fullPath),
				Error(err),
				String(FieldErrorHint, "check file permissions and log_dir ownership"),
				String(FieldImpact, "old log file remains on disk"),
			)
			continue
		}
		removed++
		if logger != nil {
			logger.Debug("log pruned", String("path", fullPath), String(FieldEventType, "log_pruned"))
		}
	}
	return removed
}
