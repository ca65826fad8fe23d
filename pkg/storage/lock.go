package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	homedir "github.com/mitchellh/go-homedir"
)

const (
	lockFileSuffix = ".lock"
	lockRetryDelay = 500 * time.Millisecond
)

// ResolvePath makes path absolute, defaulting to
// ~/.config/bestgames/cache.sqlite, and creates its directory.
func ResolvePath(path string) (string, error) {
	if path == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, ".config", "bestgames", "cache.sqlite")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", err
	}
	return abs, nil
}

// OpenLocked takes an exclusive file lock next to path before opening
// the cache, so only one writer uses it at a time. onWait, if set, is
// called once when another process holds the lock. Waiting stops when
// ctx is done. Close releases the lock.
func OpenLocked(ctx context.Context, path string, onWait func()) (*DB, error) {
	lock := flock.New(path + lockFileSuffix)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock on %s: %w", lock.Path(), err)
	}
	if !locked {
		if onWait != nil {
			onWait()
		}
		if _, err := lock.TryLockContext(ctx, lockRetryDelay); err != nil {
			return nil, fmt.Errorf("failed to acquire lock on %s after waiting: %w", lock.Path(), err)
		}
	}

	db, err := Open(path)
	if err != nil {
		lock.Unlock()
		return nil, err
	}
	db.lock = lock
	return db, nil
}
