package catalog

import "testing"

func TestNewCard_Bare(t *testing.T) {
	c := NewCard(Game{Title: "Bare"})

	if c.Image != PlaceholderImage {
		t.Fatalf("expected placeholder image, got %q", c.Image)
	}
	if c.ImageAlt != "Bare" {
		t.Fatalf("alt text: got %q", c.ImageAlt)
	}
	if c.Price.Text != "N/A" || c.Price.URL != "" {
		t.Fatalf("price: got %+v", c.Price)
	}
	if c.Rankings != "" || c.UserScore != "" || c.Metacritic != "" || c.ReleaseDate != "" {
		t.Fatalf("optional lines should be empty: %+v", c)
	}
	if c.Deck.Status != DeckUnknown || c.Deck.URL != "" {
		t.Fatalf("deck badge: got %+v", c.Deck)
	}
	if c.Deck.Text() != "Steam Deck: Unknown" {
		t.Fatalf("deck text: got %q", c.Deck.Text())
	}
	if len(c.Platforms) != 4 {
		t.Fatalf("expected 4 platform tags, got %d", len(c.Platforms))
	}
	for _, p := range c.Platforms {
		if p.Available {
			t.Fatalf("%s should be unavailable", p.Platform)
		}
	}
}

func TestNewCard_Full(t *testing.T) {
	g := Game{
		Title:       "Portal 2",
		Rankings:    map[string]int{SourcePCGamer: 2, SourceRPS: 3},
		Platforms:   Availability{Windows: true, Linux: true, SteamDeck: DeckPlatinum},
		Stores:      []string{"Steam", "GOG"},
		SteamID:     intp(620),
		UserScore:   floatp(0.9751),
		Price:       "$9.99",
		HeaderImage: "https://cdn.example/620.jpg",
		Metacritic:  intp(95),
		ReleaseDate: "2011-04-18",
	}
	c := NewCard(g)

	checks := []struct{ name, got, want string }{
		{"image", c.Image, "https://cdn.example/620.jpg"},
		{"rankings", c.Rankings, "RPS: #3 | PCGamer: #2"},
		{"price text", c.Price.Text, "$9.99"},
		{"price url", c.Price.URL, "https://store.steampowered.com/app/620"},
		{"deck url", c.Deck.URL, "https://www.protondb.com/app/620"},
		{"deck class", c.Deck.Compat.Class, "steamdeck-platinum"},
		{"deck icon", c.Deck.Compat.Icon, "#medal-platinum"},
		{"user score", c.UserScore, "98% positive"},
		{"metacritic", c.Metacritic, "Metacritic: 95"},
		{"release", c.ReleaseDate, "Apr 18, 2011"},
	}
	for _, ch := range checks {
		if ch.got != ch.want {
			t.Fatalf("%s: want %q, got %q", ch.name, ch.want, ch.got)
		}
	}

	want := map[Platform]bool{PlatformWindows: true, PlatformMacOS: false, PlatformLinux: true, PlatformSwitch: false}
	for _, p := range c.Platforms {
		if p.Available != want[p.Platform] {
			t.Fatalf("%s: want %v, got %v", p.Platform, want[p.Platform], p.Available)
		}
	}
	if len(c.Stores) != 2 || c.Stores[0] != "Steam" || c.Stores[1] != "GOG" {
		t.Fatalf("stores: got %v", c.Stores)
	}
}

func TestNewCard_SteamLinkWithoutPrice(t *testing.T) {
	c := NewCard(Game{Title: "Free", SteamID: intp(440)})
	if c.Price.Text != "View on Steam" || c.Price.URL != SteamStoreURL(440) {
		t.Fatalf("price: got %+v", c.Price)
	}
	if c.Deck.URL != "" {
		t.Fatalf("unknown deck status must not link, got %q", c.Deck.URL)
	}
}

func TestNewCard_UnparseableReleaseDateShownVerbatim(t *testing.T) {
	c := NewCard(Game{Title: "Soon", ReleaseDate: "Q3 2026"})
	if c.ReleaseDate != "Q3 2026" {
		t.Fatalf("got %q", c.ReleaseDate)
	}
}

func TestRankingsLine(t *testing.T) {
	tests := []struct {
		rankings map[string]int
		want     string
	}{
		{nil, ""},
		{map[string]int{SourceIGN: 7}, "IGN: #7"},
		{map[string]int{SourceIGN: 7, SourceRPS: 0}, "IGN: #7"},
		{map[string]int{SourcePCGamer: 1, SourceIGN: 2, SourceRPS: 3}, "RPS: #3 | IGN: #2 | PCGamer: #1"},
	}
	for _, tt := range tests {
		if got := RankingsLine(Game{Rankings: tt.rankings}); got != tt.want {
			t.Fatalf("%v: want %q, got %q", tt.rankings, tt.want, got)
		}
	}
}
