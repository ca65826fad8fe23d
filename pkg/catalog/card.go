package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PlaceholderImage is shown for games without a header image.
const PlaceholderImage = `data:image/svg+xml,%3Csvg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 320 150"%3E%3Crect width="320" height="150" fill="%23f3f4f6"/%3E%3C/svg%3E`

const (
	steamStoreURL = "https://store.steampowered.com/app/"
	protonDBURL   = "https://www.protondb.com/app/"

	// ReleaseDateLayout is the layout release dates are displayed in.
	ReleaseDateLayout = "Jan 2, 2006"
)

// Card is everything needed to draw one game in the grid.
type Card struct {
	Title     string
	Image     string
	ImageAlt  string
	Rankings  string
	Platforms []PlatformTag
	Deck      DeckBadge
	Stores    []string
	Price     Link
	// Optional lines, empty when the field is missing.
	UserScore   string
	Metacritic  string
	ReleaseDate string
}

// PlatformTag marks availability on one platform.
type PlatformTag struct {
	Platform  Platform
	Label     string
	Available bool
}

// DeckBadge is the Steam Deck indicator. URL is empty when the badge is
// a plain label.
type DeckBadge struct {
	Status DeckStatus
	Compat Compat
	URL    string
}

// Text is the badge caption.
func (b DeckBadge) Text() string {
	return "Steam Deck: " + b.Compat.Label
}

// Link is a piece of text that may point somewhere.
type Link struct {
	Text string
	URL  string
}

var platformLabels = map[Platform]string{
	PlatformWindows: "Windows",
	PlatformMacOS:   "macOS",
	PlatformLinux:   "Linux",
	PlatformSwitch:  "Switch",
}

// NewCard builds the card for g. It never fails: missing optional fields
// are left out or replaced by their fallback.
func NewCard(g Game) Card {
	c := Card{
		Title:    g.Title,
		Image:    g.HeaderImage,
		ImageAlt: g.Title,
		Rankings: RankingsLine(g),
		Stores:   g.Stores,
	}
	if c.Image == "" {
		c.Image = PlaceholderImage
	}

	for _, p := range []Platform{PlatformWindows, PlatformMacOS, PlatformLinux, PlatformSwitch} {
		c.Platforms = append(c.Platforms, PlatformTag{
			Platform:  p,
			Label:     platformLabels[p],
			Available: g.Platforms.Has(p),
		})
	}

	status := g.Platforms.SteamDeck
	c.Deck = DeckBadge{Status: status, Compat: status.Compat()}
	if g.SteamID != nil && status != DeckUnknown {
		c.Deck.URL = ProtonDBURL(*g.SteamID)
	}

	c.Price = priceLink(g)
	if g.UserScore != nil {
		c.UserScore = fmt.Sprintf("%d%% positive", int(math.Round(*g.UserScore*100)))
	}
	if g.Metacritic != nil {
		c.Metacritic = fmt.Sprintf("Metacritic: %d", *g.Metacritic)
	}
	if g.ReleaseDate != "" {
		if t, ok := ParseReleaseDate(g.ReleaseDate); ok {
			c.ReleaseDate = t.Format(ReleaseDateLayout)
		} else {
			c.ReleaseDate = g.ReleaseDate
		}
	}
	return c
}

// RankingsLine formats the present rankings as "RPS: #3 | IGN: #12".
func RankingsLine(g Game) string {
	var parts []string
	for _, src := range RankingSources {
		if r := g.Rank(src); r > 0 {
			parts = append(parts, src+": #"+strconv.Itoa(r))
		}
	}
	return strings.Join(parts, " | ")
}

// SteamStoreURL is the store page of a Steam app.
func SteamStoreURL(id int) string {
	return steamStoreURL + strconv.Itoa(id)
}

// ProtonDBURL is the compatibility report page of a Steam app.
func ProtonDBURL(id int) string {
	return protonDBURL + strconv.Itoa(id)
}

func priceLink(g Game) Link {
	if g.SteamID != nil {
		text := g.Price
		if text == "" {
			text = "View on Steam"
		}
		return Link{Text: text, URL: SteamStoreURL(*g.SteamID)}
	}
	if g.Price == "" {
		return Link{Text: "N/A"}
	}
	return Link{Text: g.Price}
}
