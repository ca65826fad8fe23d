// Package rawg queries the RAWG video game database.
package rawg

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bestgames/bestgames/pkg/storage"
	"github.com/bestgames/bestgames/pkg/whttp"
	"github.com/tidwall/gjson"
)

// ErrNoResults means the search matched nothing.
var ErrNoResults = errors.New("rawg: no results")

const DefaultBaseURL = "https://api.rawg.io"

type Fetcher interface {
	GetOK(ctx context.Context, rawURL string, headers ...whttp.WHTTPHeader) (string, error)
}

// Game is the first search hit.
type Game struct {
	Name            string
	BackgroundImage string
	Platforms       []string
	Stores          []string
	Rating          float64
	Metacritic      *int
	Released        string
}

// HasPlatform matches a platform name exactly, e.g. "Nintendo Switch".
func (g Game) HasPlatform(name string) bool {
	for _, p := range g.Platforms {
		if p == name {
			return true
		}
	}
	return false
}

type Client struct {
	fetcher Fetcher
	apiKey  string
	cache   *storage.DB
	maxAge  time.Duration

	BaseURL string
}

func NewClient(fetcher Fetcher, apiKey string, cache *storage.DB, maxAge time.Duration) *Client {
	return &Client{fetcher: fetcher, apiKey: apiKey, cache: cache, maxAge: maxAge, BaseURL: DefaultBaseURL}
}

// Search returns the best RAWG hit for title.
func (c *Client) Search(ctx context.Context, title string) (Game, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("search", title)
	q.Set("page_size", "1")
	u := c.BaseURL + "/api/games?" + q.Encode()

	key := strings.ToLower(title)
	body, err := c.cache.Cached(ctx, storage.KindRAWG, key, c.maxAge, func(ctx context.Context) (string, error) {
		return c.fetcher.GetOK(ctx, u)
	})
	if err != nil {
		return Game{}, fmt.Errorf("rawg search %q: %w", title, err)
	}
	return parseSearch(body)
}

func parseSearch(body string) (Game, error) {
	hit := gjson.Get(body, "results.0")
	if !hit.Exists() {
		return Game{}, ErrNoResults
	}

	g := Game{
		Name:            hit.Get("name").String(),
		BackgroundImage: hit.Get("background_image").String(),
		Rating:          hit.Get("rating").Float(),
		Released:        hit.Get("released").String(),
	}
	for _, p := range hit.Get("platforms.#.platform.name").Array() {
		g.Platforms = append(g.Platforms, p.String())
	}
	for _, s := range hit.Get("stores.#.store.name").Array() {
		g.Stores = append(g.Stores, s.String())
	}
	if mc := hit.Get("metacritic"); mc.Type == gjson.Number {
		v := int(mc.Int())
		g.Metacritic = &v
	}
	return g, nil
}
