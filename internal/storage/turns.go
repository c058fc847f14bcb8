package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dyike/CortexFin/pkg/sqlite"
)

var ErrDisabled = errors.New("transcript store disabled")

// Turn is one completed user turn as written to the transcript.
type Turn struct {
	ID        string
	SessionID string
	Query     string
	Intent    string
	Path      []string
	Output    string
	Fallback  bool
	StartedAt time.Time
	Duration  time.Duration
}

// TurnStore is an append-only audit log of turns. Conversation memory does
// not read from it.
type TurnStore struct {
	db *sql.DB
}

func NewTurnStore(dbPath string) (*TurnStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, ErrDisabled
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, err
	}
	s := &TurnStore{db: db}
	if err := s.initTable(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *TurnStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initTable 初始化对话记录表
func (s *TurnStore) initTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS turns (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		query TEXT NOT NULL,
		intent TEXT,
		path TEXT,
		output TEXT,
		fallback INTEGER NOT NULL DEFAULT 0,
		started_at DATETIME NOT NULL,
		duration_ms INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_turns_started_at ON turns(started_at);`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create turns table: %w", err)
	}
	return nil
}

func (s *TurnStore) Record(ctx context.Context, t Turn) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (id, session_id, query, intent, path, output, fallback, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.SessionID, t.Query, t.Intent, strings.Join(t.Path, ","), t.Output,
		t.Fallback, t.StartedAt, t.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert turn %s: %w", t.ID, err)
	}
	return nil
}

// Recent returns up to limit turns, newest first.
func (s *TurnStore) Recent(ctx context.Context, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, query, intent, path, output, fallback, started_at, duration_ms
		 FROM turns ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var (
			t          Turn
			path       string
			durationMs int64
		)
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Query, &t.Intent, &path, &t.Output,
			&t.Fallback, &t.StartedAt, &durationMs); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		if path != "" {
			t.Path = strings.Split(path, ",")
		}
		t.Duration = time.Duration(durationMs) * time.Millisecond
		turns = append(turns, t)
	}
	return turns, rows.Err()
}
