package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMarkdown(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := WriteMarkdown(dir, "a.md", "# 报告\n")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "a.md"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# 报告\n", string(data))
}

func TestReportFileName(t *testing.T) {
	at := time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "20240105-103000-report_generation.md", ReportFileName(at, "report_generation"))
	assert.Equal(t, "20240105-103000-answer.md", ReportFileName(at, " "))
}
