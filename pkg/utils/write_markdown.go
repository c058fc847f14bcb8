package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dyike/CortexFin/pkg/logger"
)

// WriteMarkdown writes content to dir/fileName and returns the full path.
func WriteMarkdown(dir, fileName, content string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, fileName)
	// 写入文件
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}
	logger.Named("utils").Debugw("markdown written", "path", path)
	return path, nil
}

// ReportFileName builds a file name like 20240105-103000-<intent>.md.
func ReportFileName(at time.Time, intent string) string {
	intent = strings.TrimSpace(intent)
	if intent == "" {
		intent = "answer"
	}
	return at.Format("20060102-150405") + "-" + intent + ".md"
}
