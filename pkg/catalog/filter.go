package catalog

import "strings"

// Criteria is the filter and sort state selected by the user.
type Criteria struct {
	Platforms     []Platform
	Stores        []string
	Search        string
	MinMetacritic int
	Sort          SortKey
}

// Filter returns the games matching every rule in c, in their original
// order. Unset rules match everything.
func Filter(games []Game, c Criteria) []Game {
	search := strings.ToLower(c.Search)
	stores := make([]string, 0, len(c.Stores))
	for _, s := range c.Stores {
		stores = append(stores, strings.ToLower(s))
	}

	out := make([]Game, 0, len(games))
	for _, g := range games {
		if matchPlatforms(g, c.Platforms) &&
			matchStores(g, stores) &&
			matchMetacritic(g, c.MinMetacritic) &&
			matchSearch(g, search) {
			out = append(out, g)
		}
	}
	return out
}

// Apply filters games and sorts the result by c.Sort.
func Apply(games []Game, c Criteria) []Game {
	return Sort(Filter(games, c), c.Sort)
}

func matchPlatforms(g Game, platforms []Platform) bool {
	for _, p := range platforms {
		if !g.Platforms.Has(p) {
			return false
		}
	}
	return true
}

// matchStores expects lowercased store names.
func matchStores(g Game, stores []string) bool {
	for _, want := range stores {
		found := false
		for _, have := range g.Stores {
			if strings.Contains(strings.ToLower(have), want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func matchMetacritic(g Game, min int) bool {
	if min <= 0 {
		return true
	}
	return g.Metacritic != nil && *g.Metacritic >= min
}

// matchSearch expects a lowercased search string.
func matchSearch(g Game, search string) bool {
	return search == "" || strings.Contains(strings.ToLower(g.Title), search)
}
