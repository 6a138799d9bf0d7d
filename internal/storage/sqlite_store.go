package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteStore keeps the snapshot as two expiring key/value rows, the local
// equivalent of the browser's cookie pair.
type SQLiteStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB, ttl time.Duration) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SQLiteStore{db: db, ttl: ttl, now: time.Now}, nil
}

// OpenSQLite opens (creating if needed) the database at path and applies the
// embedded migrations.
func OpenSQLite(ctx context.Context, path string, ttl time.Duration) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := MigrateUp(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	store, err := NewSQLiteStore(db, ttl)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (Snapshot, error) {
	now := s.now().UTC()
	tasks, err := s.get(ctx, KeyTasks, now)
	if err != nil {
		return Snapshot{}, err
	}
	categories, err := s.get(ctx, KeyCategories, now)
	if err != nil {
		return Snapshot{}, err
	}
	return decodeValues(tasks, categories)
}

func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	tasks, categories, err := encodeValues(snap)
	if err != nil {
		return err
	}
	now := s.now().UTC()
	expires := now.Add(s.ttl)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, kv := range [][2]string{{KeyTasks, tasks}, {KeyCategories, categories}} {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO kv_entries (key, value, expires_at, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at, updated_at = excluded.updated_at`,
			kv[0], kv[1], expires.Format(sqliteTimeLayout), now.Format(sqliteTimeLayout),
		); err != nil {
			return fmt.Errorf("save %s: %w", kv[0], err)
		}
	}
	return tx.Commit()
}

// PurgeExpired deletes rows past their expiry and reports how many went.
func (s *SQLiteStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE expires_at <= ?`, s.now().UTC().Format(sqliteTimeLayout))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) get(ctx context.Context, key string, now time.Time) (string, error) {
	var value, expires string
	err := s.db.QueryRowContext(ctx, `SELECT value, expires_at FROM kv_entries WHERE key = ?`, key).Scan(&value, &expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", key, ErrNotFound)
		}
		return "", err
	}
	expiresAt, err := time.Parse(sqliteTimeLayout, expires)
	if err != nil {
		return "", fmt.Errorf("parse expiry of %s: %w", key, err)
	}
	if !now.Before(expiresAt) {
		return "", fmt.Errorf("%s expired: %w", key, ErrNotFound)
	}
	return value, nil
}
