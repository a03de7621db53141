// Package sqlite implements store.Store on a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/releasedtoday/gameday/internal/model"
	"github.com/releasedtoday/gameday/internal/store"
)

// Open opens (or creates) a SQLite database at the given path and enables
// WAL journal mode for better read concurrency.
func Open(path string) (*sql.DB, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the users table when missing. The column names match
// the external auth system that shares this table.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            id             INTEGER PRIMARY KEY AUTOINCREMENT,
            username       TEXT NOT NULL UNIQUE,
            creation_time  TIMESTAMP NOT NULL,
            last_vote_date TEXT,
            id_voted_game  INTEGER
        )`)
	return err
}

// New opens the database at path, ensures the schema, and returns the store.
func New(ctx context.Context, path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB wires the store over an existing connection (used by tests).
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Users() store.Users   { return &users{db: s.db} }
func (s *sqliteStore) Ledger() store.Ledger { return &ledger{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DB exposes the underlying connection (local tooling use).
func (s *sqliteStore) DB() *sql.DB { return s.db }

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, username string) (*model.User, error) {
	now := time.Now().UTC()
	res, err := u.db.ExecContext(ctx,
		`INSERT INTO users (username, creation_time) VALUES (?, ?)`, username, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.User{ID: id, Username: username, CreationTime: now}, nil
}

func (u *users) Get(ctx context.Context, id int64) (*model.User, error) {
	var out model.User
	row := u.db.QueryRowContext(ctx,
		`SELECT id, username, creation_time, last_vote_date, id_voted_game FROM users WHERE id = ?`, id)
	if err := row.Scan(&out.ID, &out.Username, &out.CreationTime, &out.LastVoteDate, &out.VotedGameID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// --- Ledger ---

type ledger struct{ db *sql.DB }

// TryVote relies on a single conditional UPDATE: SQLite serializes writers,
// so only one of two concurrent votes by the same user can match the
// "not yet voted today" predicate.
func (l *ledger) TryVote(ctx context.Context, userID, gameID int64, today string) (bool, error) {
	res, err := l.db.ExecContext(ctx, `
        UPDATE users
        SET last_vote_date = ?, id_voted_game = ?
        WHERE id = ? AND (last_vote_date IS NULL OR last_vote_date <> ?)`,
		today, gameID, userID, today)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 1 {
		return true, nil
	}

	var exists int
	if err := l.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE id = ?`, userID).Scan(&exists); err != nil {
		return false, err
	}
	if exists == 0 {
		return false, model.ErrNotFound
	}
	return false, nil
}
