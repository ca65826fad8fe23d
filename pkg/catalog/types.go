package catalog

import (
	"sort"
	"strings"
)

// Ranking sources. The keys are the ones written by the scraper and
// used in the JSON document.
const (
	SourceRPS     = "RPS"
	SourceIGN     = "IGN"
	SourcePCGamer = "PCGamer"
)

// RankingSources lists the ranking sources in display order.
var RankingSources = []string{SourceRPS, SourceIGN, SourcePCGamer}

// Platform is a key of the platforms object of a game record.
type Platform string

const (
	PlatformWindows   Platform = "windows"
	PlatformMacOS     Platform = "macos"
	PlatformLinux     Platform = "linux"
	PlatformSwitch    Platform = "switch"
	PlatformSteamDeck Platform = "steamdeck"
)

// AllPlatforms lists every known platform key, Steam Deck last.
var AllPlatforms = []Platform{PlatformWindows, PlatformMacOS, PlatformLinux, PlatformSwitch, PlatformSteamDeck}

// Game is a single catalog entry.
type Game struct {
	Title        string         `json:"title"`
	Rankings     map[string]int `json:"rankings"`
	Platforms    Availability   `json:"platforms"`
	Stores       []string       `json:"stores"`
	SteamID      *int           `json:"steam_id"`
	UserScore    *float64       `json:"user_score"`
	TotalReviews int            `json:"total_reviews"`
	Price        string         `json:"price,omitempty"`
	HeaderImage  string         `json:"header_image,omitempty"`
	Metacritic   *int           `json:"metacritic"`
	ReleaseDate  string         `json:"release_date,omitempty"`
}

// Availability holds per-platform availability of a game.
type Availability struct {
	Windows   bool       `json:"windows"`
	MacOS     bool       `json:"macos"`
	Linux     bool       `json:"linux"`
	SteamDeck DeckStatus `json:"steamdeck"`
	Switch    bool       `json:"switch"`
}

// Has reports whether the game is available on p. For the Steam Deck
// only platinum and gold ProtonDB tiers count as available.
func (a Availability) Has(p Platform) bool {
	switch p {
	case PlatformWindows:
		return a.Windows
	case PlatformMacOS:
		return a.MacOS
	case PlatformLinux:
		return a.Linux
	case PlatformSwitch:
		return a.Switch
	case PlatformSteamDeck:
		return a.SteamDeck.Playable()
	}
	return false
}

// Rank returns the rank a game holds in source, or 0 if unranked.
func (g Game) Rank(source string) int {
	r, ok := g.Rankings[source]
	if !ok || r <= 0 {
		return 0
	}
	return r
}

// ParsePlatform maps a platform key to a Platform, ignoring case.
func ParsePlatform(s string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllPlatforms {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// StoreNames returns the distinct store names used across games, sorted
// without regard to case. The first spelling seen wins.
func StoreNames(games []Game) []string {
	seen := make(map[string]bool)
	var names []string
	for _, g := range games {
		for _, s := range g.Stores {
			key := strings.ToLower(s)
			if s == "" || seen[key] {
				continue
			}
			seen[key] = true
			names = append(names, s)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}
