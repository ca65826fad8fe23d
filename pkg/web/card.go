package web

import (
	"github.com/bestgames/bestgames/pkg/catalog"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// CardNode draws one game card.
func CardNode(c catalog.Card) g.Node {
	return Article(Class("game-card bg-white rounded-xl shadow-sm border border-gray-200 overflow-hidden flex flex-col"),
		Img(Class("game-image w-full aspect-[32/15] object-cover bg-gray-100"), Src(c.Image), Alt(c.ImageAlt), Loading("lazy"), Width("320"), Height("150")),
		Div(Class("p-4 flex flex-col gap-2 flex-grow"),
			H3(Class("game-title text-lg font-semibold text-gray-900"), g.Text(c.Title)),
			P(Class("game-rankings text-sm text-indigo-700 font-medium"), g.Text(c.Rankings)),
			Div(Class("platforms flex flex-wrap gap-1"),
				g.Map(c.Platforms, platformTag),
				deckBadge(c.Deck),
			),
			g.If(len(c.Stores) > 0,
				Div(Class("store-tags"),
					g.Map(c.Stores, func(s string) g.Node {
						return Span(Class("store-tag"), g.Text(s))
					}),
				),
			),
			Div(Class("meta mt-auto text-sm text-gray-600 flex flex-col gap-1"),
				priceNode(c.Price),
				g.If(c.UserScore != "", Span(Class("user-score"), g.Text(c.UserScore))),
				g.If(c.Metacritic != "", Span(Class("metacritic"), g.Text(c.Metacritic))),
				g.If(c.ReleaseDate != "", Span(Class("release-date"), g.Text(c.ReleaseDate))),
			),
		),
	)
}

func platformTag(p catalog.PlatformTag) g.Node {
	state := "unavailable"
	if p.Available {
		state = "available"
	}
	return Span(Class("platform-tag "+state), Data("platform", string(p.Platform)), g.Text(p.Label))
}

func deckBadge(b catalog.DeckBadge) g.Node {
	class := "platform-tag steamdeck " + b.Compat.Class
	icon := g.El("svg", Class("medal-svg"), Width("16"), Height("16"),
		g.El("use", Href(b.Compat.Icon)),
	)
	if b.URL != "" {
		return A(Class(class), Href(b.URL), Target("_blank"), Rel("noopener noreferrer"), icon, g.Text(b.Text()))
	}
	return Span(Class(class), Span(Class("medal"), icon, g.Text(b.Text())))
}

func priceNode(l catalog.Link) g.Node {
	if l.URL != "" {
		return Span(Class("price"),
			A(Class("steam-link text-indigo-600 hover:underline"), Href(l.URL), Target("_blank"), Rel("noopener noreferrer"), g.Text(l.Text)),
		)
	}
	return Span(Class("price"), g.Text(l.Text))
}
