package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cache.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	if _, err := db.Get(ctx, KindRAWG, "portal 2", 0); !errors.Is(err, ErrMiss) {
		t.Fatalf("want ErrMiss on empty cache, got %v", err)
	}
	if err := db.Put(ctx, KindRAWG, "portal 2", `{"a":1}`); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := db.Put(ctx, KindRAWG, "portal 2", `{"a":2}`); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, err := db.Get(ctx, KindRAWG, "portal 2", time.Hour)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != `{"a":2}` {
		t.Fatalf("got %q, want overwritten body", got)
	}
	if _, err := db.Get(ctx, KindReviews, "portal 2", 0); !errors.Is(err, ErrMiss) {
		t.Fatalf("kinds must not share keys, got %v", err)
	}
}

func TestCacheExpiry(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	if _, err := db.sql.ExecContext(ctx, "INSERT INTO cache_entries(kind, key, body, fetched_at) VALUES(?,?,?,?)",
		KindPage, "old", "x", time.Now().Add(-48*time.Hour).Unix()); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := db.Get(ctx, KindPage, "old", 24*time.Hour); !errors.Is(err, ErrMiss) {
		t.Fatalf("expired entry should miss, got %v", err)
	}
	if body, err := db.Get(ctx, KindPage, "old", 0); err != nil || body != "x" {
		t.Fatalf("maxAge 0 should accept any age, got %q %v", body, err)
	}
}

func TestSteamAppsAndStats(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	apps, at, err := db.SteamApps(ctx)
	if err != nil || len(apps) != 0 || !at.IsZero() {
		t.Fatalf("empty index: apps=%v at=%v err=%v", apps, at, err)
	}

	if err := db.ReplaceSteamApps(ctx, []SteamApp{{AppID: 620, Name: "Portal 2"}, {AppID: 1, Name: ""}, {AppID: 400, Name: "Portal"}}); err != nil {
		t.Fatalf("ReplaceSteamApps: %v", err)
	}
	if err := db.ReplaceSteamApps(ctx, []SteamApp{{AppID: 620, Name: "Portal 2"}, {AppID: 400, Name: "Portal"}}); err != nil {
		t.Fatalf("ReplaceSteamApps again: %v", err)
	}
	apps, at, err = db.SteamApps(ctx)
	if err != nil {
		t.Fatalf("SteamApps: %v", err)
	}
	if len(apps) != 2 || apps[0].AppID != 620 || apps[1].Name != "Portal" {
		t.Fatalf("unexpected apps %+v", apps)
	}
	if at.IsZero() {
		t.Fatalf("expected update time")
	}

	if err := db.Put(ctx, KindAppDetails, "620", "abc"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.SteamApps != 2 || len(stats.Kinds) != 1 || stats.Kinds[0].Entries != 1 || stats.Kinds[0].Bytes != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	n, err := db.Clear(ctx, "")
	if err != nil || n != 1 {
		t.Fatalf("Clear: n=%d err=%v", n, err)
	}
	stats, err = db.GetStats(ctx)
	if err != nil || stats.SteamApps != 0 || len(stats.Kinds) != 0 || !stats.AppsUpdatedAt.IsZero() {
		t.Fatalf("after clear: %+v %v", stats, err)
	}
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		return "body", nil
	}
	for i := 0; i < 2; i++ {
		got, err := db.Cached(ctx, KindProtonDB, "620", 0, fetch)
		if err != nil || got != "body" {
			t.Fatalf("Cached: %q %v", got, err)
		}
	}
	if calls != 1 {
		t.Fatalf("fetch called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, err := db.Cached(ctx, KindProtonDB, "other", 0, func(context.Context) (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Fatalf("want fetch error, got %v", err)
	}
	if _, err := db.Get(ctx, KindProtonDB, "other", 0); !errors.Is(err, ErrMiss) {
		t.Fatalf("failed fetch must not be cached")
	}

	var nilDB *DB
	if got, err := nilDB.Cached(ctx, KindProtonDB, "620", 0, fetch); err != nil || got != "body" || calls != 2 {
		t.Fatalf("nil DB should fetch: %q %v calls=%d", got, err, calls)
	}
}

func TestSteamAppsKeepOrder(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	in := []SteamApp{{AppID: 500, Name: "Tetris"}, {AppID: 400, Name: "TETRIS"}, {AppID: 500, Name: "Tetris Effect"}}
	if err := db.ReplaceSteamApps(ctx, in); err != nil {
		t.Fatalf("ReplaceSteamApps: %v", err)
	}
	apps, _, err := db.SteamApps(ctx)
	if err != nil {
		t.Fatalf("SteamApps: %v", err)
	}
	if len(apps) != len(in) {
		t.Fatalf("got %d apps, want %d", len(apps), len(in))
	}
	for i := range in {
		if apps[i] != in[i] {
			t.Fatalf("app %d: got %+v, want %+v", i, apps[i], in[i])
		}
	}
}

func TestOpen_DropsUnorderedAppTable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.sqlite")

	old, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := old.Exec(`
CREATE TABLE steam_apps (appid INTEGER PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE meta (key TEXT PRIMARY KEY, value TEXT NOT NULL);
INSERT INTO steam_apps VALUES (620, 'Portal 2');
INSERT INTO meta VALUES ('steam_apps_updated_at', '2024-01-01T00:00:00Z');`); err != nil {
		t.Fatalf("seeding old schema: %v", err)
	}
	old.Close()

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	apps, at, err := db.SteamApps(ctx)
	if err != nil || len(apps) != 0 || !at.IsZero() {
		t.Fatalf("after migration: apps=%v at=%v err=%v", apps, at, err)
	}
	if err := db.ReplaceSteamApps(ctx, []SteamApp{{AppID: 620, Name: "Portal 2"}}); err != nil {
		t.Fatalf("ReplaceSteamApps: %v", err)
	}
}

func TestOpenLocked(t *testing.T) {
	path, err := ResolvePath(filepath.Join(t.TempDir(), "nested", "cache.sqlite"))
	if err != nil {
		t.Fatalf("ResolvePath: %v", err)
	}

	first, err := OpenLocked(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("first OpenLocked: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	waited := false
	if _, err := OpenLocked(ctx, path, func() { waited = true }); err == nil {
		t.Fatalf("second OpenLocked succeeded while the lock was held")
	}
	if !waited {
		t.Fatalf("onWait was not called")
	}

	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	second, err := OpenLocked(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("OpenLocked after Close: %v", err)
	}
	second.Close()
}

func TestOpen_MissingDirectory(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "missing", "cache.sqlite"))
	if err == nil {
		db.Close()
		t.Fatalf("expected an error opening a database in a missing directory")
	}
}
