package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "turns.db")

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode;").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}
