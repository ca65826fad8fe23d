package storage

import (
	"context"
	"time"
)

// ReplaceSteamApps swaps the whole app index in one transaction. The
// order of apps is kept: SteamApps returns them the same way.
func (d *DB) ReplaceSteamApps(ctx context.Context, apps []SteamApp) (err error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM steam_apps"); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO steam_apps(ord, appid, name) VALUES(?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, a := range apps {
		if a.Name == "" {
			continue
		}
		if _, err = stmt.ExecContext(ctx, i, a.AppID, a.Name); err != nil {
			return err
		}
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO meta(key, value) VALUES(?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`, metaAppsUpdated, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return tx.Commit()
}

// SteamApps returns the stored index and when it was written. An empty
// index returns a zero time.
func (d *DB) SteamApps(ctx context.Context) ([]SteamApp, time.Time, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT appid, name FROM steam_apps ORDER BY ord")
	if err != nil {
		return nil, time.Time{}, err
	}
	defer rows.Close()

	var apps []SteamApp
	for rows.Next() {
		var a SteamApp
		if err := rows.Scan(&a.AppID, &a.Name); err != nil {
			return nil, time.Time{}, err
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}

	updated, err := d.meta(ctx, metaAppsUpdated)
	if err != nil {
		return nil, time.Time{}, err
	}
	var at time.Time
	if updated != "" {
		at, _ = time.Parse(time.RFC3339, updated)
	}
	return apps, at, nil
}
