package catalog

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering applied by Sort.
type SortKey string

const (
	SortTitle      SortKey = "title"
	SortRPS        SortKey = "rps"
	SortIGN        SortKey = "ign"
	SortPCGamer    SortKey = "pcgamer"
	SortUserScore  SortKey = "score"
	SortMetacritic SortKey = "metacritic"
	SortRelease    SortKey = "release"
	SortPoints     SortKey = "points"
)

// SortKeys lists the supported keys in the order the UI offers them.
var SortKeys = []SortKey{SortTitle, SortRPS, SortIGN, SortPCGamer, SortUserScore, SortMetacritic, SortRelease, SortPoints}

var sortLabels = map[SortKey]string{
	SortTitle:      "Title",
	SortRPS:        "RPS Ranking",
	SortIGN:        "IGN Ranking",
	SortPCGamer:    "PCGamer Ranking",
	SortUserScore:  "User Score",
	SortMetacritic: "Metacritic",
	SortRelease:    "Release Date",
	SortPoints:     "Points",
}

// Label is the human readable name of the key.
func (k SortKey) Label() string {
	if l, ok := sortLabels[k]; ok {
		return l
	}
	return string(k)
}

// Valid reports whether k is a known key.
func (k SortKey) Valid() bool {
	_, ok := sortLabels[k]
	return ok
}

const missingRank = 999

var rankSource = map[SortKey]string{
	SortRPS:     SourceRPS,
	SortIGN:     SourceIGN,
	SortPCGamer: SourcePCGamer,
}

// Sort returns a stably sorted copy of games. Unknown keys keep the
// original order.
func Sort(games []Game, key SortKey) []Game {
	out := slices.Clone(games)
	if out == nil {
		out = []Game{}
	}

	var cmp func(a, b Game) int
	switch key {
	case SortTitle:
		// Collators keep internal buffers, so each call gets its own.
		col := collate.New(language.English)
		cmp = func(a, b Game) int { return col.CompareString(a.Title, b.Title) }
	case SortRPS, SortIGN, SortPCGamer:
		src := rankSource[key]
		cmp = func(a, b Game) int { return rankOrMissing(a, src) - rankOrMissing(b, src) }
	case SortUserScore:
		cmp = func(a, b Game) int { return compareDesc(floatOrZero(a.UserScore), floatOrZero(b.UserScore)) }
	case SortMetacritic:
		cmp = func(a, b Game) int { return compareDesc(intOrZero(a.Metacritic), intOrZero(b.Metacritic)) }
	case SortRelease:
		cmp = func(a, b Game) int { return ReleaseTime(b).Compare(ReleaseTime(a)) }
	case SortPoints:
		cmp = func(a, b Game) int { return compareDesc(Points(a), Points(b)) }
	default:
		return out
	}

	slices.SortStableFunc(out, cmp)
	return out
}

// Points is the blended score used by the points ordering: 101 minus
// the rank for every ranking source the game appears in, plus its raw
// metacritic score.
func Points(g Game) int {
	total := 0
	for _, src := range RankingSources {
		if r := g.Rank(src); r > 0 {
			total += 101 - r
		}
	}
	return total + intOrZero(g.Metacritic)
}

var releaseLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"Jan 2, 2006",
	"2 Jan, 2006",
	"January 2, 2006",
	"2006",
}

// ParseReleaseDate parses the release date of a game. ok is false when
// the date is missing or in an unknown layout.
func ParseReleaseDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range releaseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReleaseTime is the release date of g, or the Unix epoch when it is
// missing or invalid.
func ReleaseTime(g Game) time.Time {
	if t, ok := ParseReleaseDate(g.ReleaseDate); ok {
		return t
	}
	return time.Unix(0, 0).UTC()
}

func rankOrMissing(g Game, source string) int {
	if r := g.Rank(source); r > 0 {
		return r
	}
	return missingRank
}

func compareDesc[T int | float64](a, b T) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func floatOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
