package storage

import (
	"context"
	"errors"
	"time"
)

// Cached returns the cached body for (kind, key) or calls fetch and
// stores its result. A nil DB always fetches. Cache write failures are
// ignored; the fetched body is still returned.
func (d *DB) Cached(ctx context.Context, kind, key string, maxAge time.Duration, fetch func(context.Context) (string, error)) (string, error) {
	if d == nil {
		return fetch(ctx)
	}
	body, err := d.Get(ctx, kind, key, maxAge)
	if err == nil {
		return body, nil
	}
	if !errors.Is(err, ErrMiss) {
		return "", err
	}
	body, err = fetch(ctx)
	if err != nil {
		return "", err
	}
	_ = d.Put(ctx, kind, key, body)
	return body, nil
}
