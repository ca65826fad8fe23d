package rawg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bestgames/bestgames/pkg/whttp"
)

const portalResponse = `{"count":1,"results":[{
  "name":"Portal 2",
  "background_image":"https://media.rawg.io/portal2.jpg",
  "rating":4.61,
  "metacritic":95,
  "released":"2011-04-18",
  "platforms":[{"platform":{"id":4,"name":"PC"}},{"platform":{"id":7,"name":"Nintendo Switch"}}],
  "stores":[{"store":{"id":1,"name":"Steam"}},{"store":{"id":11,"name":"Epic Games"}}]
}]}`

func TestSearch(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/games" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotQuery = r.URL.Query()
		if r.URL.Query().Get("search") == "Nothing" {
			w.Write([]byte(`{"count":0,"results":[]}`))
			return
		}
		w.Write([]byte(portalResponse))
	}))
	defer srv.Close()

	hc, err := whttp.NewClient(whttp.Options{})
	if err != nil {
		t.Fatalf("whttp.NewClient: %v", err)
	}
	c := NewClient(hc, "secret", nil, 0)
	c.BaseURL = srv.URL

	g, err := c.Search(context.Background(), "Portal 2")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotQuery["key"][0] != "secret" || gotQuery["search"][0] != "Portal 2" || gotQuery["page_size"][0] != "1" {
		t.Fatalf("unexpected query %v", gotQuery)
	}
	if g.Name != "Portal 2" || g.Metacritic == nil || *g.Metacritic != 95 || g.Released != "2011-04-18" {
		t.Fatalf("unexpected game %+v", g)
	}
	if !g.HasPlatform("Nintendo Switch") || g.HasPlatform("Xbox") {
		t.Fatalf("unexpected platforms %v", g.Platforms)
	}
	if len(g.Stores) != 2 || g.Stores[1] != "Epic Games" {
		t.Fatalf("unexpected stores %v", g.Stores)
	}

	if _, err := c.Search(context.Background(), "Nothing"); !errors.Is(err, ErrNoResults) {
		t.Fatalf("want ErrNoResults, got %v", err)
	}
}

func TestParseSearch_NullMetacritic(t *testing.T) {
	g, err := parseSearch(`{"results":[{"name":"Indie","metacritic":null,"platforms":[]}]}`)
	if err != nil {
		t.Fatalf("parseSearch: %v", err)
	}
	if g.Metacritic != nil || len(g.Stores) != 0 {
		t.Fatalf("unexpected game %+v", g)
	}
}
