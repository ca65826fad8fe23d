package enrich

import (
	"context"
	"time"

	"github.com/bestgames/bestgames/pkg/rankings"
)

// Collect runs sources one after another, sleeping delay between them.
// A failing source is logged and contributes no entries.
func Collect(ctx context.Context, sources []rankings.Source, delay time.Duration, log Logger) ([]rankings.Entry, error) {
	if log == nil {
		log = nopLogger{}
	}
	var all []rankings.Entry
	for i, src := range sources {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
		log.Infof("Scraping %s...", src.Name())
		entries, err := src.Scrape(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Errorf("Error scraping %s: %v", src.Name(), err)
			continue
		}
		log.Infof("%s: %d entries", src.Name(), len(entries))
		all = append(all, entries...)
	}
	return all, nil
}
