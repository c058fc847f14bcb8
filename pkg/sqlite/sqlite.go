package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const memoryPath = ":memory:"

var defaultPragmas = []string{
	"PRAGMA journal_mode=WAL;",
	"PRAGMA busy_timeout=3000;",
	"PRAGMA synchronous=NORMAL;",
}

// Open opens (and creates if needed) the sqlite database at dbPath.
// ":memory:" opens a private in-memory database limited to one connection.
func Open(dbPath string) (*sql.DB, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("db path is required")
	}

	if dbPath != memoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	// 添加 _loc=Local 使时间戳使用本地时区
	db, err := sql.Open("sqlite3", dbPath+"?_loc=Local")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if dbPath == memoryPath {
		db.SetMaxOpenConns(1)
	}

	for _, p := range defaultPragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma %s: %w", p, err)
		}
	}
	return db, nil
}
