package web

import (
	"errors"
	"strings"
	"testing"

	"github.com/bestgames/bestgames/pkg/catalog"
	g "maragu.dev/gomponents"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	if err := n.Render(&b); err != nil {
		t.Fatalf("render: %v", err)
	}
	return b.String()
}

func intp(v int) *int { return &v }

func TestCardNode_PlaceholderAndNoPrice(t *testing.T) {
	out := render(t, CardNode(catalog.NewCard(catalog.Game{Title: "Bare"})))

	if !strings.Contains(out, `src="data:image/svg+xml`) {
		t.Fatalf("expected placeholder image, got:\n%s", out)
	}
	if !strings.Contains(out, `alt="Bare"`) {
		t.Fatalf("expected alt text, got:\n%s", out)
	}
	if !strings.Contains(out, `<span class="price">N/A</span>`) {
		t.Fatalf("expected N/A price, got:\n%s", out)
	}
	if strings.Contains(out, "store-tags") {
		t.Fatalf("empty store list should not render tags:\n%s", out)
	}
	if strings.Contains(out, "protondb.com") {
		t.Fatalf("unknown deck status should not link:\n%s", out)
	}
}

func TestCardNode_Links(t *testing.T) {
	game := catalog.Game{
		Title:      "Portal 2",
		Rankings:   map[string]int{catalog.SourceRPS: 3},
		Platforms:  catalog.Availability{Windows: true, SteamDeck: catalog.DeckGold},
		Stores:     []string{"Steam", "GOG"},
		SteamID:    intp(620),
		Price:      "$9.99",
		Metacritic: intp(95),
	}
	out := render(t, CardNode(catalog.NewCard(game)))

	for _, want := range []string{
		`href="https://store.steampowered.com/app/620"`,
		`href="https://www.protondb.com/app/620"`,
		`class="platform-tag steamdeck steamdeck-gold"`,
		`<use href="#medal-gold"></use>`,
		"Steam Deck: Gold",
		"RPS: #3",
		`<span class="platform-tag available" data-platform="windows">Windows</span>`,
		`<span class="platform-tag unavailable" data-platform="macos">macOS</span>`,
		`<span class="store-tag">Steam</span><span class="store-tag">GOG</span>`,
		"Metacritic: 95",
		">$9.99</a>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "user-score") {
		t.Fatalf("user score should be omitted:\n%s", out)
	}
}

func TestCardNode_EscapesTitle(t *testing.T) {
	out := render(t, CardNode(catalog.NewCard(catalog.Game{Title: "<script>alert(1)</script>"})))
	if strings.Contains(out, "<script>") {
		t.Fatalf("title was not escaped:\n%s", out)
	}
}

func TestCatalogPage(t *testing.T) {
	games := []catalog.Game{{Title: "A"}, {Title: "B"}}
	out := render(t, CatalogPage(CatalogView{
		Criteria: catalog.Criteria{Search: "a", Sort: catalog.SortPoints, Platforms: []catalog.Platform{catalog.PlatformLinux}, Stores: []string{"GOG"}},
		Stores:   []string{"GOG", "Steam"},
		Games:    games[:1],
		Total:    2,
	}))

	for _, want := range []string{
		"<!DOCTYPE html>",
		`id="game-grid"`,
		`<span id="visible-count">1</span>`,
		`<span id="total-count">2</span>`,
		`<option value="points" selected>Points</option>`,
		`value="linux" data-platform="linux" checked`,
		`value="GOG" data-store="GOG" checked`,
		`name="search" value="a"`,
		`id="medal-platinum"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in page", want)
		}
	}
}

func TestGridFragment_LoadError(t *testing.T) {
	out := render(t, GridFragment(CatalogView{LoadErr: errors.New("boom"), Games: []catalog.Game{{Title: "hidden"}}}))
	if !strings.Contains(out, catalog.LoadErrorMessage) {
		t.Fatalf("expected error message, got %s", out)
	}
	if strings.Contains(out, "hidden") || strings.Contains(out, "boom") {
		t.Fatalf("error view should not leak games or error details: %s", out)
	}
}

func TestCatalogPage_StaticHasNoControls(t *testing.T) {
	out := render(t, CatalogPage(CatalogView{Static: true, Games: []catalog.Game{{Title: "A"}}, Total: 1}))
	if strings.Contains(out, `id="filters"`) {
		t.Fatalf("static page should not render the filter form")
	}
}
