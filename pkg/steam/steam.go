// Package steam reads the Steam store, Steam reviews and ProtonDB.
package steam

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bestgames/bestgames/pkg/catalog"
	"github.com/bestgames/bestgames/pkg/storage"
	"github.com/bestgames/bestgames/pkg/whttp"
	"github.com/tidwall/gjson"
)

// ErrNotFound means the store has no usable data for an app.
var ErrNotFound = errors.New("steam: app not found")

const (
	DefaultAPIBase    = "https://api.steampowered.com"
	DefaultStoreBase  = "https://store.steampowered.com"
	DefaultProtonBase = "https://www.protondb.com"
)

type Fetcher interface {
	GetOK(ctx context.Context, rawURL string, headers ...whttp.WHTTPHeader) (string, error)
}

type Client struct {
	fetcher Fetcher
	cache   *storage.DB
	maxAge  time.Duration

	APIBase    string
	StoreBase  string
	ProtonBase string
}

// NewClient returns a client for the public endpoints. cache may be nil.
func NewClient(fetcher Fetcher, cache *storage.DB, maxAge time.Duration) *Client {
	return &Client{
		fetcher:    fetcher,
		cache:      cache,
		maxAge:     maxAge,
		APIBase:    DefaultAPIBase,
		StoreBase:  DefaultStoreBase,
		ProtonBase: DefaultProtonBase,
	}
}

type App struct {
	ID   int
	Name string
}

// AppList downloads the full Steam app index.
func (c *Client) AppList(ctx context.Context) ([]App, error) {
	body, err := c.fetcher.GetOK(ctx, c.APIBase+"/ISteamApps/GetAppList/v2/")
	if err != nil {
		return nil, fmt.Errorf("fetching steam app list: %w", err)
	}
	apps := gjson.Get(body, "applist.apps")
	if !apps.IsArray() {
		return nil, fmt.Errorf("steam app list: unexpected response")
	}
	out := make([]App, 0, len(apps.Array()))
	apps.ForEach(func(_, v gjson.Result) bool {
		name := v.Get("name").String()
		if name != "" {
			out = append(out, App{ID: int(v.Get("appid").Int()), Name: name})
		}
		return true
	})
	return out, nil
}

// Details is the subset of appdetails the catalog uses.
type Details struct {
	AppID       int
	Name        string
	Windows     bool
	MacOS       bool
	Linux       bool
	Price       string
	HeaderImage string
}

func (c *Client) AppDetails(ctx context.Context, appID int) (Details, error) {
	id := strconv.Itoa(appID)
	u := c.StoreBase + "/api/appdetails?appids=" + id
	body, err := c.cache.Cached(ctx, storage.KindAppDetails, id, c.maxAge, func(ctx context.Context) (string, error) {
		return c.fetcher.GetOK(ctx, u)
	})
	if err != nil {
		return Details{}, fmt.Errorf("fetching appdetails %d: %w", appID, err)
	}

	app := gjson.Get(body, id)
	if !app.Exists() || !app.Get("success").Bool() {
		return Details{}, ErrNotFound
	}
	data := app.Get("data")

	price := data.Get("price_overview.final_formatted").String()
	if price == "" {
		price = "N/A"
		if data.Get("is_free").Bool() {
			price = "Free"
		}
	}
	return Details{
		AppID:       appID,
		Name:        data.Get("name").String(),
		Windows:     data.Get("platforms.windows").Bool(),
		MacOS:       data.Get("platforms.mac").Bool(),
		Linux:       data.Get("platforms.linux").Bool(),
		Price:       price,
		HeaderImage: data.Get("header_image").String(),
	}, nil
}

type Reviews struct {
	Positive int
	Total    int
}

// Score is the positive fraction, nil when there are no reviews.
func (r Reviews) Score() *float64 {
	if r.Total <= 0 {
		return nil
	}
	s := float64(r.Positive) / float64(r.Total)
	return &s
}

func (c *Client) Reviews(ctx context.Context, appID int) (Reviews, error) {
	id := strconv.Itoa(appID)
	u := c.StoreBase + "/appreviews/" + id + "?json=1"
	body, err := c.cache.Cached(ctx, storage.KindReviews, id, c.maxAge, func(ctx context.Context) (string, error) {
		return c.fetcher.GetOK(ctx, u)
	})
	if err != nil {
		return Reviews{}, fmt.Errorf("fetching reviews %d: %w", appID, err)
	}
	summary := gjson.Get(body, "query_summary")
	return Reviews{
		Positive: int(summary.Get("total_positive").Int()),
		Total:    int(summary.Get("total_reviews").Int()),
	}, nil
}

// ProtonTier returns the ProtonDB tier. Apps ProtonDB does not know
// are DeckUnknown.
func (c *Client) ProtonTier(ctx context.Context, appID int) (catalog.DeckStatus, error) {
	id := strconv.Itoa(appID)
	u := c.ProtonBase + "/api/v1/reports/summaries/" + id + ".json"
	body, err := c.cache.Cached(ctx, storage.KindProtonDB, id, c.maxAge, func(ctx context.Context) (string, error) {
		return c.fetcher.GetOK(ctx, u)
	})
	var se *whttp.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return catalog.DeckUnknown, nil
	}
	if err != nil {
		return catalog.DeckUnknown, fmt.Errorf("fetching protondb %d: %w", appID, err)
	}
	return catalog.ParseDeckStatus(gjson.Get(body, "tier").String()), nil
}
