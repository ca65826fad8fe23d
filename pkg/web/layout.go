package web

import (
	"fmt"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html" // Using . import for convenience with html tags
)

// PageLayout wraps content in the full HTML document.
func PageLayout(title, description string, content g.Node) g.Node {
	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(Lang("en"),
			Head(
				Meta(Charset("UTF-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				Meta(Name("description"), Content(description)),
				TitleEl(g.Text(title)),
				Script(Src("https://cdn.tailwindcss.com")),
				Script(Src("https://unpkg.com/htmx.org@2.0.4")),
				StyleEl(g.Raw(`
					.platform-tag { display: inline-flex; align-items: center; gap: 0.25rem; padding: 0.125rem 0.5rem; border-radius: 9999px; font-size: 0.75rem; }
					.platform-tag.available { background: #dcfce7; color: #166534; }
					.platform-tag.unavailable { background: #f3f4f6; color: #9ca3af; text-decoration: line-through; }
					.steamdeck-platinum { background: #e5e7eb; color: #374151; }
					.steamdeck-gold { background: #fef3c7; color: #92400e; }
					.steamdeck-bronze { background: #fde68a; color: #78350f; }
					.steamdeck-borked { background: #fee2e2; color: #991b1b; }
					.steamdeck-unknown { background: #f3f4f6; color: #6b7280; }
					.store-tag { display: inline-block; padding: 0.125rem 0.5rem; margin: 0 0.25rem 0.25rem 0; border-radius: 0.25rem; background: #e0f2fe; color: #075985; font-size: 0.75rem; }
					.medal-svg { display: inline-block; vertical-align: middle; }
					.htmx-request #game-grid { opacity: 0.6; transition: opacity 150ms; }
				`)),
			),
			Body(Class("bg-gray-50 font-sans antialiased text-gray-800 flex flex-col min-h-screen"),
				medalSprite(),
				Div(Class("flex-grow"), content),
				footerEl(),
			),
		),
	})
}

// medalSprite defines the Steam Deck medal icons referenced by the
// badges through <use href="#medal-...">.
func medalSprite() g.Node {
	medal := func(id, fill string) g.Node {
		return g.El("symbol", ID(id), g.Attr("viewBox", "0 0 16 16"),
			g.El("circle", g.Attr("cx", "8"), g.Attr("cy", "8"), g.Attr("r", "7"), g.Attr("fill", fill)),
		)
	}
	return g.El("svg", g.Attr("xmlns", "http://www.w3.org/2000/svg"), Style("display:none"),
		medal("medal-platinum", "#b4c7dc"),
		medal("medal-gold", "#cfb53b"),
		medal("medal-bronze", "#cd7f32"),
		medal("medal-borked", "#ef4444"),
		medal("medal-unknown", "#9ca3af"),
	)
}

func footerEl() g.Node {
	return Footer(Class("text-gray-500 text-sm border-t border-gray-200 mt-auto"),
		Div(Class("container mx-auto px-4 py-6 flex flex-col md:flex-row justify-between gap-2"),
			P(g.Text(fmt.Sprintf("© %d bestgames. Rankings from Rock Paper Shotgun, IGN and PC Gamer.", time.Now().Year()))),
			P(
				g.Text("Compatibility data from "),
				A(Href("https://www.protondb.com"), Target("_blank"), Rel("noopener noreferrer"), Class("underline"), g.Text("ProtonDB")),
			),
		),
	)
}
