// Package enrich turns scraped ranking entries into catalog records.
package enrich

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/bestgames/bestgames/pkg/catalog"
	"github.com/bestgames/bestgames/pkg/rankings"
	"github.com/bestgames/bestgames/pkg/rawg"
	"github.com/bestgames/bestgames/pkg/steam"
	"github.com/bestgames/bestgames/pkg/titles"
)

// Logger abstracts logging so callers can use logrus, stdlib log, or any
// other logger that satisfies this interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// nopLogger silently discards all messages.
type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Debugf(string, ...interface{}) {}

// SteamAPI is satisfied by *steam.Client.
type SteamAPI interface {
	AppDetails(ctx context.Context, appID int) (steam.Details, error)
	Reviews(ctx context.Context, appID int) (steam.Reviews, error)
	ProtonTier(ctx context.Context, appID int) (catalog.DeckStatus, error)
}

// RAWGAPI is satisfied by *rawg.Client.
type RAWGAPI interface {
	Search(ctx context.Context, title string) (rawg.Game, error)
}

// Matcher resolves a title to a Steam app id. *titles.Index implements it.
type Matcher interface {
	Lookup(title string) (titles.Match, bool)
}

// Config holds everything Build needs. Nil clients skip that source.
type Config struct {
	Normalizer  *titles.Normalizer
	Matcher     Matcher
	Steam       SteamAPI
	RAWG        RAWGAPI
	Concurrency int    // defaults to 4 if <= 0
	Log         Logger // optional; nil = no logging

	// OnGameDone is called from worker goroutines after each title.
	OnGameDone func(game catalog.Game)
}

// Result is the outcome of a build.
type Result struct {
	Games []catalog.Game
	// Unmatched lists titles with no Steam match, in catalog order.
	Unmatched []string
}

// Group is one unique title with its rank in each source.
type Group struct {
	Title    string
	Rankings map[string]int
}

// Dedupe groups entries by normalized title in first-seen order. A later
// entry for the same source overwrites the earlier rank.
func Dedupe(n *titles.Normalizer, entries []rankings.Entry) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, e := range entries {
		title := n.Normalize(e.Title)
		key := strings.ToLower(title)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Title: title, Rankings: make(map[string]int)})
		}
		groups[i].Rankings[e.Source] = e.Rank
	}
	return groups
}

// Build dedupes entries and enriches every unique title concurrently.
// Output order is first appearance order.
func Build(ctx context.Context, entries []rankings.Entry, cfg Config) (*Result, error) {
	log := cfg.Log
	if log == nil {
		log = nopLogger{}
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	groups := Dedupe(cfg.Normalizer, entries)
	log.Infof("Found %d unique games in %d entries", len(groups), len(entries))

	games := make([]catalog.Game, len(groups))
	unmatched := make([]bool, len(groups))

	jobs := make(chan int, len(groups))
	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				g, ok := enrichOne(ctx, cfg, log, groups[i].Title)
				g.Rankings = groups[i].Rankings
				games[i] = g
				unmatched[i] = !ok
				if cfg.OnGameDone != nil {
					cfg.OnGameDone(g)
				}
			}
		}()
	}
	for i := range groups {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Games: games}
	for i, miss := range unmatched {
		if miss {
			res.Unmatched = append(res.Unmatched, groups[i].Title)
		}
	}
	return res, nil
}

// newGame returns a record with the defaults used when nothing is known.
func newGame(title string) catalog.Game {
	return catalog.Game{
		Title:     title,
		Rankings:  map[string]int{},
		Platforms: catalog.Availability{Windows: true, SteamDeck: catalog.DeckUnknown},
		Stores:    []string{},
		Price:     "N/A",
	}
}

// enrichOne reports false when Steam matching ran and found nothing.
func enrichOne(ctx context.Context, cfg Config, log Logger, title string) (catalog.Game, bool) {
	g := newGame(title)
	matched := true

	if cfg.Matcher != nil && cfg.Steam != nil {
		matched = mergeSteam(ctx, cfg, log, &g)
	}
	if cfg.RAWG != nil {
		mergeRAWG(ctx, cfg.RAWG, log, &g)
	}
	return g, matched
}

func mergeSteam(ctx context.Context, cfg Config, log Logger, g *catalog.Game) bool {
	m, ok := cfg.Matcher.Lookup(g.Title)
	if !ok {
		log.Warnf("No Steam match for: %s", g.Title)
		return false
	}
	if m.Fuzzy {
		log.Debugf("Fuzzy match for %s: %s (similarity: %.2f)", g.Title, m.Name, m.Score)
	}

	d, err := cfg.Steam.AppDetails(ctx, m.ID)
	if err != nil {
		if errors.Is(err, steam.ErrNotFound) {
			log.Debugf("No store data for %s (app %d)", g.Title, m.ID)
		} else {
			log.Warnf("Steam details for %s: %v", g.Title, err)
		}
		return true
	}

	reviews, err := cfg.Steam.Reviews(ctx, m.ID)
	if err != nil {
		log.Warnf("Steam reviews for %s: %v", g.Title, err)
	}
	tier, err := cfg.Steam.ProtonTier(ctx, m.ID)
	if err != nil {
		log.Warnf("ProtonDB tier for %s: %v", g.Title, err)
		tier = catalog.DeckUnknown
	}

	id := m.ID
	g.SteamID = &id
	g.Platforms = catalog.Availability{
		Windows:   d.Windows,
		MacOS:     d.MacOS,
		Linux:     d.Linux,
		SteamDeck: tier,
	}
	g.UserScore = reviews.Score()
	g.TotalReviews = reviews.Total
	g.Price = d.Price
	g.HeaderImage = d.HeaderImage
	addStore(g, "Steam")
	return true
}

func mergeRAWG(ctx context.Context, client RAWGAPI, log Logger, g *catalog.Game) {
	info, err := client.Search(ctx, g.Title)
	if err != nil {
		if errors.Is(err, rawg.ErrNoResults) {
			log.Debugf("No RAWG data for: %s", g.Title)
		} else {
			log.Warnf("RAWG lookup for %s: %v", g.Title, err)
		}
		return
	}

	if info.HasPlatform("Nintendo Switch") {
		g.Platforms.Switch = true
	}
	for _, s := range info.Stores {
		addStore(g, s)
	}
	if g.HeaderImage == "" {
		g.HeaderImage = info.BackgroundImage
	}
	g.Metacritic = info.Metacritic
	g.ReleaseDate = info.Released
}

func addStore(g *catalog.Game, store string) {
	if store != "" && !slices.Contains(g.Stores, store) {
		g.Stores = append(g.Stores, store)
	}
}
