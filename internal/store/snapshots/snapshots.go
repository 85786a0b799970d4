// Package snapshots keeps already-fetched account records in SQLite so the
// analyzer can score real data without talking to a platform API.
package snapshots

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"trustscope/internal/model"
	"trustscope/internal/pipeline"
)

// ErrNotFound is returned when no snapshot exists for a handle. Errors
// carrying it also match pipeline.ErrUnavailable.
var ErrNotFound = errors.New("snapshot not found")

func notFound(h, platform string) error {
	return fmt.Errorf("%w: %w: @%s on %s", ErrNotFound, pipeline.ErrUnavailable, h, platform)
}

// DB wraps the SQLite database holding snapshots.
type DB struct{ sql *sql.DB }

func Open(path string) (*DB, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// :memory: databases are per-connection.
	if path == ":memory:" {
		d.SetMaxOpenConns(1)
	}
	if _, err := d.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL; PRAGMA foreign_keys=ON;`); err != nil {
		_ = d.Close()
		return nil, err
	}
	db := &DB{sql: d}
	if err := db.migrate(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) Close() error { return d.sql.Close() }

func (d *DB) migrate() error {
	_, err := d.sql.Exec(`
	CREATE TABLE IF NOT EXISTS accounts (
	  handle TEXT NOT NULL,
	  platform TEXT NOT NULL,
	  fetched_at INTEGER NOT NULL,
	  payload TEXT NOT NULL,
	  PRIMARY KEY (handle, platform)
	);
	CREATE TABLE IF NOT EXISTS content_items (
	  handle TEXT NOT NULL,
	  platform TEXT NOT NULL,
	  seq INTEGER NOT NULL,
	  item_id TEXT,
	  likes INTEGER NOT NULL DEFAULT 0,
	  comments INTEGER NOT NULL DEFAULT 0,
	  shares INTEGER NOT NULL DEFAULT 0,
	  views INTEGER NOT NULL DEFAULT 0,
	  PRIMARY KEY (handle, platform, seq),
	  FOREIGN KEY (handle, platform) REFERENCES accounts(handle, platform) ON DELETE CASCADE
	);
	CREATE TABLE IF NOT EXISTS followings (
	  handle TEXT NOT NULL,
	  platform TEXT NOT NULL,
	  following TEXT NOT NULL,
	  PRIMARY KEY (handle, platform, following)
	);
	CREATE TABLE IF NOT EXISTS cursors (
	  name TEXT PRIMARY KEY,
	  value TEXT NOT NULL
	);
	`)
	return err
}

// key normalises a handle for storage: no '@', lower case.
func key(handle string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
}

// Put stores or replaces a snapshot, including its content items and
// followings.
func (d *DB) Put(ctx context.Context, s model.Snapshot) error {
	if err := s.Account.Validate(); err != nil {
		return err
	}
	for _, it := range s.Items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	h, p := key(s.Account.Handle), s.Account.Platform
	fetched := s.FetchedAt
	if fetched.IsZero() {
		fetched = time.Now().UTC()
	}
	payload, err := json.Marshal(s.Account)
	if err != nil {
		return err
	}

	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT INTO accounts(handle, platform, fetched_at, payload) VALUES(?,?,?,?)
		ON CONFLICT(handle, platform) DO UPDATE SET fetched_at=excluded.fetched_at, payload=excluded.payload`,
		h, p, fetched.Unix(), string(payload)); err != nil {
		return fmt.Errorf("put account %s: %w", h, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM content_items WHERE handle=? AND platform=?`, h, p); err != nil {
		return err
	}
	for i, it := range s.Items {
		if _, err := tx.ExecContext(ctx, `INSERT INTO content_items(handle, platform, seq, item_id, likes, comments, shares, views) VALUES(?,?,?,?,?,?,?,?)`,
			h, p, i, it.ID, it.Likes, it.Comments, it.Shares, it.Views); err != nil {
			return fmt.Errorf("put item %d of %s: %w", i, h, err)
		}
	}
	if s.Followings != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM followings WHERE handle=? AND platform=?`, h, p); err != nil {
			return err
		}
		for _, f := range s.Followings {
			if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO followings(handle, platform, following) VALUES(?,?,?)`, h, p, key(f)); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// Fetch loads the snapshot for handle on platform.
func (d *DB) Fetch(ctx context.Context, handle, platform string) (model.Snapshot, error) {
	var out model.Snapshot
	h := key(handle)
	row := d.sql.QueryRowContext(ctx, `SELECT fetched_at, payload FROM accounts WHERE handle=? AND platform=?`, h, platform)
	var ts int64
	var payload string
	if err := row.Scan(&ts, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return out, notFound(h, platform)
		}
		return out, err
	}
	if err := json.Unmarshal([]byte(payload), &out.Account); err != nil {
		return out, fmt.Errorf("decode snapshot @%s: %w", h, err)
	}
	out.FetchedAt = time.Unix(ts, 0).UTC()

	items, err := d.loadItems(ctx, h, platform)
	if err != nil {
		return out, err
	}
	out.Items = items
	follows, err := d.Followings(ctx, h, platform)
	if err != nil {
		return out, err
	}
	out.Followings = follows
	return out, nil
}

func (d *DB) loadItems(ctx context.Context, h, platform string) ([]model.ContentItem, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT COALESCE(item_id, ''), likes, comments, shares, views FROM content_items WHERE handle=? AND platform=? ORDER BY seq`, h, platform)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ContentItem
	for rows.Next() {
		var it model.ContentItem
		if err := rows.Scan(&it.ID, &it.Likes, &it.Comments, &it.Shares, &it.Views); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Followings returns the stored handles that handle follows, sorted.
func (d *DB) Followings(ctx context.Context, handle, platform string) ([]string, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT following FROM followings WHERE handle=? AND platform=? ORDER BY following`, key(handle), platform)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Handles lists stored handles for platform, sorted.
func (d *DB) Handles(ctx context.Context, platform string) ([]string, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT handle FROM accounts WHERE platform=? ORDER BY handle`, platform)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Delete removes a snapshot and its items.
func (d *DB) Delete(ctx context.Context, handle, platform string) error {
	h := key(handle)
	for _, table := range []string{"followings", "content_items"} {
		if _, err := d.sql.ExecContext(ctx, `DELETE FROM `+table+` WHERE handle=? AND platform=?`, h, platform); err != nil {
			return err
		}
	}
	res, err := d.sql.ExecContext(ctx, `DELETE FROM accounts WHERE handle=? AND platform=?`, h, platform)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound(h, platform)
	}
	return nil
}

// LoadCursor returns the stored value for name, or "" if unset.
func (d *DB) LoadCursor(ctx context.Context, name string) (string, error) {
	var v string
	err := d.sql.QueryRowContext(ctx, `SELECT value FROM cursors WHERE name=?`, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}

// SaveCursor upserts a named cursor value.
func (d *DB) SaveCursor(ctx context.Context, name, value string) error {
	_, err := d.sql.ExecContext(ctx, `INSERT INTO cursors(name, value) VALUES(?,?)
		ON CONFLICT(name) DO UPDATE SET value=excluded.value`, name, value)
	return err
}
