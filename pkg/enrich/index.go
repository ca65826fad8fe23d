package enrich

import (
	"context"
	"fmt"
	"time"

	"github.com/bestgames/bestgames/pkg/steam"
	"github.com/bestgames/bestgames/pkg/storage"
	"github.com/bestgames/bestgames/pkg/titles"
)

// AppLister is satisfied by *steam.Client.
type AppLister interface {
	AppList(ctx context.Context) ([]steam.App, error)
}

// LoadIndex builds the title index from the cached Steam app list,
// downloading a new list when the cache is empty or older than maxAge.
// db may be nil, in which case the list is always downloaded.
func LoadIndex(ctx context.Context, db *storage.DB, lister AppLister, n *titles.Normalizer, threshold float64, maxAge time.Duration, log Logger) (*titles.Index, error) {
	if log == nil {
		log = nopLogger{}
	}

	var apps []storage.SteamApp
	if db != nil {
		cached, updated, err := db.SteamApps(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading cached app list: %w", err)
		}
		if len(cached) > 0 && (maxAge <= 0 || time.Since(updated) <= maxAge) {
			log.Debugf("Using cached Steam app list (%d apps)", len(cached))
			apps = cached
		}
	}

	if apps == nil {
		log.Infof("Fetching complete Steam games list...")
		fetched, err := lister.AppList(ctx)
		if err != nil {
			return nil, err
		}
		apps = make([]storage.SteamApp, 0, len(fetched))
		for _, a := range fetched {
			apps = append(apps, storage.SteamApp{AppID: a.ID, Name: a.Name})
		}
		if db != nil {
			if err := db.ReplaceSteamApps(ctx, apps); err != nil {
				log.Warnf("Could not cache Steam app list: %v", err)
			}
		}
	}

	names := make([]string, len(apps))
	ids := make([]int, len(apps))
	for i, a := range apps {
		names[i], ids[i] = a.Name, a.AppID
	}
	return titles.NewIndex(n, threshold, names, ids), nil
}
