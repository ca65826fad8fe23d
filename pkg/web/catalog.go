package web

import (
	"slices"
	"strconv"
	"strings"

	"github.com/bestgames/bestgames/pkg/catalog"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// GridID is the element the htmx form swaps on every control change.
const GridID = "game-grid"

// CatalogView is everything the catalog page needs.
type CatalogView struct {
	Criteria catalog.Criteria
	// Stores offered as store checkboxes.
	Stores []string
	Games  []catalog.Game
	Total  int
	// LoadErr replaces the grid with the static error message.
	LoadErr error
	// Static pages have no server to send htmx requests to.
	Static bool
}

// CatalogPage renders the whole document.
func CatalogPage(v CatalogView) g.Node {
	return PageLayout(
		"Best Games of All Time",
		"The best games of all time according to Rock Paper Shotgun, IGN and PC Gamer, with platform and Steam Deck compatibility.",
		CatalogContent(v),
	)
}

// CatalogContent renders the controls and the grid.
func CatalogContent(v CatalogView) g.Node {
	return Main(Class("container mx-auto px-4 py-8"),
		Header(Class("mb-6"),
			H1(Class("text-3xl font-bold text-gray-900"), g.Text("Best Games of All Time")),
		),
		g.If(!v.Static, controls(v)),
		Div(ID(GridID), GridFragment(v)),
	)
}

// GridFragment renders the stats line and the cards. It is the body of
// htmx responses.
func GridFragment(v CatalogView) g.Node {
	if v.LoadErr != nil {
		return P(Class("text-red-700"), g.Text(catalog.LoadErrorMessage))
	}
	return g.Group([]g.Node{
		P(Class("stats text-sm text-gray-600 mb-4"),
			g.Text("Showing "),
			Span(ID("visible-count"), g.Text(strconv.Itoa(len(v.Games)))),
			g.Text(" of "),
			Span(ID("total-count"), g.Text(strconv.Itoa(v.Total))),
			g.Text(" games"),
		),
		Div(Class("grid gap-6 sm:grid-cols-2 lg:grid-cols-3 xl:grid-cols-4"),
			g.Map(v.Games, func(game catalog.Game) g.Node {
				return CardNode(catalog.NewCard(game))
			}),
		),
	})
}

func controls(v CatalogView) g.Node {
	c := v.Criteria
	return Form(ID("filters"), Method("GET"), Action("/"),
		Class("bg-white border border-gray-200 rounded-xl p-4 mb-6 grid gap-4 md:grid-cols-2"),
		g.Attr("hx-get", "/"),
		g.Attr("hx-target", "#"+GridID),
		g.Attr("hx-push-url", "true"),
		g.Attr("hx-trigger", "change, input delay:300ms from:#search"),
		Div(Class("flex flex-col gap-2"),
			Label(For("search"), Class("text-sm font-medium"), g.Text("Search")),
			Input(ID("search"), Type("search"), Name("search"), Value(c.Search), Placeholder("Search games..."),
				Class("border border-gray-300 rounded-lg px-3 py-2")),
			Label(For("sort-by"), Class("text-sm font-medium"), g.Text("Sort by")),
			Select(ID("sort-by"), Name("sort"), Class("border border-gray-300 rounded-lg px-3 py-2"),
				g.Map(catalog.SortKeys, func(k catalog.SortKey) g.Node {
					return Option(Value(string(k)), g.If(k == currentSort(c), Selected()), g.Text(k.Label()))
				}),
			),
			Label(For("min-metacritic"), Class("text-sm font-medium"),
				g.Text("Minimum Metacritic: "),
				Span(ID("min-metacritic-value"), g.Text(strconv.Itoa(c.MinMetacritic))),
			),
			Input(ID("min-metacritic"), Type("range"), Name("min_metacritic"), g.Attr("min", "0"), g.Attr("max", "100"), g.Attr("step", "5"),
				Value(strconv.Itoa(c.MinMetacritic)),
				g.Attr("oninput", "document.getElementById('min-metacritic-value').textContent = this.value")),
		),
		Div(Class("flex flex-col gap-3"),
			checkboxGroup("Platforms", "platform", platformOptions(), platformValues(c.Platforms)),
			g.If(len(v.Stores) > 0,
				checkboxGroup("Stores", "store", storeOptions(v.Stores), c.Stores),
			),
		),
		NoScript(Button(Type("submit"), Class("px-4 py-2 bg-indigo-600 text-white rounded-lg"), g.Text("Apply"))),
	)
}

type option struct{ Value, Label string }

func checkboxGroup(legend, name string, opts []option, checked []string) g.Node {
	return FieldSet(
		Legend(Class("text-sm font-medium mb-1"), g.Text(legend)),
		Div(Class("flex flex-wrap gap-3"),
			g.Map(opts, func(o option) g.Node {
				id := name + "-" + strings.ToLower(strings.ReplaceAll(o.Value, " ", "-"))
				return Label(For(id), Class("inline-flex items-center gap-1 text-sm"),
					Input(ID(id), Type("checkbox"), Name(name), Value(o.Value), Data(name, o.Value),
						g.If(slices.Contains(checked, o.Value), Checked())),
					g.Text(o.Label),
				)
			}),
		),
	)
}

var platformLabels = map[catalog.Platform]string{
	catalog.PlatformWindows:   "Windows",
	catalog.PlatformMacOS:     "macOS",
	catalog.PlatformLinux:     "Linux",
	catalog.PlatformSwitch:    "Switch",
	catalog.PlatformSteamDeck: "Steam Deck (Gold+)",
}

func platformOptions() []option {
	opts := make([]option, 0, len(catalog.AllPlatforms))
	for _, p := range catalog.AllPlatforms {
		opts = append(opts, option{Value: string(p), Label: platformLabels[p]})
	}
	return opts
}

func platformValues(ps []catalog.Platform) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, string(p))
	}
	return out
}

func storeOptions(stores []string) []option {
	opts := make([]option, 0, len(stores))
	for _, s := range stores {
		opts = append(opts, option{Value: s, Label: s})
	}
	return opts
}

func currentSort(c catalog.Criteria) catalog.SortKey {
	if c.Sort.Valid() {
		return c.Sort
	}
	return catalog.SortTitle
}
