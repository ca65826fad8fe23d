package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

// ErrMiss is returned by Get when no fresh entry exists.
var ErrMiss = errors.New("cache miss")

type DB struct {
	sql  *sql.DB
	lock *flock.Flock
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	rebuilt, err := dropUnorderedApps(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS cache_entries (
  kind       TEXT NOT NULL,
  key        TEXT NOT NULL,
  body       TEXT NOT NULL,
  fetched_at INTEGER NOT NULL,
  PRIMARY KEY (kind, key)
);
CREATE INDEX IF NOT EXISTS idx_cache_kind ON cache_entries(kind);
CREATE TABLE IF NOT EXISTS steam_apps (
  ord   INTEGER PRIMARY KEY,
  appid INTEGER NOT NULL,
  name  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS meta (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
    `); err != nil {
		db.Close()
		return nil, err
	}
	if rebuilt {
		if _, err := db.Exec("DELETE FROM meta WHERE key = ?", metaAppsUpdated); err != nil {
			db.Close()
			return nil, err
		}
	}
	return &DB{sql: db}, nil
}

// Close closes the database and releases the lock taken by OpenLocked.
func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	err := d.sql.Close()
	if d.lock != nil {
		if uerr := d.lock.Unlock(); uerr != nil && err == nil {
			err = uerr
		}
		d.lock = nil
	}
	return err
}

// dropUnorderedApps drops a steam_apps table written before the app
// list kept its download order. The list is refetched on the next scrape.
func dropUnorderedApps(db *sql.DB) (bool, error) {
	var tables, ordCols int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'steam_apps'").Scan(&tables); err != nil {
		return false, err
	}
	if tables == 0 {
		return false, nil
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM pragma_table_info('steam_apps') WHERE name = 'ord'").Scan(&ordCols); err != nil {
		return false, err
	}
	if ordCols > 0 {
		return false, nil
	}
	_, err := db.Exec("DROP TABLE steam_apps")
	return err == nil, err
}

// Get returns the cached body for (kind, key). Entries older than maxAge
// are treated as missing; maxAge <= 0 accepts any age.
func (d *DB) Get(ctx context.Context, kind, key string, maxAge time.Duration) (string, error) {
	var (
		body      string
		fetchedAt int64
	)
	err := d.sql.QueryRowContext(ctx, "SELECT body, fetched_at FROM cache_entries WHERE kind = ? AND key = ?", kind, key).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrMiss
	}
	if err != nil {
		return "", err
	}
	if maxAge > 0 && time.Since(time.Unix(fetchedAt, 0)) > maxAge {
		return "", ErrMiss
	}
	return body, nil
}

func (d *DB) Put(ctx context.Context, kind, key, body string) error {
	_, err := d.sql.ExecContext(ctx, `INSERT INTO cache_entries(kind, key, body, fetched_at) VALUES(?,?,?,?)
ON CONFLICT(kind, key) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		kind, key, body, time.Now().Unix())
	return err
}

type KindStats struct {
	Kind    string
	Entries int
	Bytes   int64
}

type Stats struct {
	Kinds     []KindStats
	SteamApps int
	// AppsUpdatedAt is zero when the app index was never stored.
	AppsUpdatedAt time.Time
}

func (d *DB) GetStats(ctx context.Context) (Stats, error) {
	var s Stats
	query := `
		SELECT
			kind,
			COUNT(*),
			COALESCE(SUM(LENGTH(body)), 0)
		FROM
			cache_entries
		GROUP BY
			kind
		ORDER BY
			kind;
	`
	rows, err := d.sql.QueryContext(ctx, query)
	if err != nil {
		return s, err
	}
	defer rows.Close()

	for rows.Next() {
		var k KindStats
		if err := rows.Scan(&k.Kind, &k.Entries, &k.Bytes); err != nil {
			return s, err
		}
		s.Kinds = append(s.Kinds, k)
	}
	if err := rows.Err(); err != nil {
		return s, err
	}

	if err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM steam_apps").Scan(&s.SteamApps); err != nil {
		return s, err
	}
	updated, err := d.meta(ctx, metaAppsUpdated)
	if err != nil {
		return s, err
	}
	if updated != "" {
		s.AppsUpdatedAt, _ = time.Parse(time.RFC3339, updated)
	}
	return s, nil
}

// Clear drops cached responses of the given kind, or everything
// (responses and the app index) when kind is empty.
func (d *DB) Clear(ctx context.Context, kind string) (int64, error) {
	if kind != "" {
		res, err := d.sql.ExecContext(ctx, "DELETE FROM cache_entries WHERE kind = ?", kind)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}

	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM cache_entries")
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM steam_apps"); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM meta"); err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

func (d *DB) meta(ctx context.Context, key string) (string, error) {
	var v string
	err := d.sql.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}
