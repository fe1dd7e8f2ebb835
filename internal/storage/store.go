// Package storage persists chat transcripts and the reply cache in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	timestamp TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS ai_cache (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_message TEXT UNIQUE,
	ai_reply TEXT
);
`

type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Message is one stored transcript line.
type Message struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Open creates the database file and its parent directory if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, path: path, now: time.Now}, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Close() error { return s.db.Close() }

// SaveMessage appends a transcript line stamped with the current UTC time.
func (s *Store) SaveMessage(ctx context.Context, role, content string) (int64, error) {
	ts := s.now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (role, content, timestamp) VALUES (?, ?, ?)`,
		role, content, ts)
	if err != nil {
		return 0, fmt.Errorf("save message: %w", err)
	}
	return res.LastInsertId()
}

// Messages returns up to limit messages, newest first. limit <= 0 means all.
func (s *Store) Messages(ctx context.Context, limit int) ([]Message, error) {
	q := `SELECT id, role, content, timestamp FROM messages ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	msgs := make([]Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (s *Store) Message(ctx context.Context, id int64) (Message, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, role, content, timestamp FROM messages WHERE id = ?`, id)
	m, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Message{}, fmt.Errorf("message %d: %w", id, ErrNotFound)
	}
	return m, err
}

func (s *Store) CountMessages(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&n)
	return n, err
}

// CachedReply looks up a previous reply for the exact message text.
func (s *Store) CachedReply(ctx context.Context, message string) (string, error) {
	var reply sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT ai_reply FROM ai_cache WHERE user_message = ?`, message).Scan(&reply)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read cache: %w", err)
	}
	return reply.String, nil
}

// SaveCache stores or replaces the reply for message.
func (s *Store) SaveCache(ctx context.Context, message, reply string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO ai_cache (user_message, ai_reply) VALUES (?, ?)`,
		message, reply)
	if err != nil {
		return fmt.Errorf("save cache: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMessage(sc scanner) (Message, error) {
	var (
		m  Message
		ts string
	)
	if err := sc.Scan(&m.ID, &m.Role, &m.Content, &ts); err != nil {
		return Message{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return Message{}, fmt.Errorf("message %d timestamp %q: %w", m.ID, ts, err)
	}
	m.Timestamp = t
	return m, nil
}
