// Package archive caches meeting reports in SQLite, keyed by the hash of
// the source file, so an unchanged file is never analyzed twice.
package archive

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nguyentantai21042004/meetflow/internal/insight"
)

const schema = `
	CREATE TABLE IF NOT EXISTS reports (
		hash       TEXT PRIMARY KEY,
		id         TEXT NOT NULL,
		source     TEXT NOT NULL,
		priority   TEXT NOT NULL,
		urgency    INTEGER NOT NULL DEFAULT 0,
		created_at REAL NOT NULL,
		payload    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS reports_created_at ON reports(created_at);
`

// Entry is a report listing without the payload.
type Entry struct {
	Hash      string
	ID        string
	Source    string
	Priority  string
	Urgency   int
	CreatedAt time.Time
}

// Store is the report archive.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive at path. ":memory:" gives a private
// in-memory archive.
func Open(path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create archive dir: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	// One writer at a time; also keeps a :memory: database on one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the report stored for hash, or nil when there is none.
func (s *Store) Get(ctx context.Context, hash string) (*insight.Report, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM reports WHERE hash = ?`, hash).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}

	var r insight.Report
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", hash, err)
	}
	return &r, nil
}

// Put stores r under hash, replacing any previous report.
func (s *Store) Put(ctx context.Context, hash string, r *insight.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO reports (hash, id, source, priority, urgency, created_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, hash, r.ID, r.Source, string(r.Priority), r.Risk.UrgencyScore, unixFromTime(r.CreatedAt), string(payload))
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// Recent lists the newest reports first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, id, source, priority, urgency, created_at
		FROM reports
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt float64
		if err := rows.Scan(&e.Hash, &e.ID, &e.Source, &e.Priority, &e.Urgency, &createdAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		e.CreatedAt = timeFromUnix(createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// HashFile returns the hex SHA-256 of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash source: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func timeFromUnix(v float64) time.Time {
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}
