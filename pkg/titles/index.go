package titles

import "strings"

// Match is the result of an Index lookup.
type Match struct {
	ID    int
	Name  string
	Score float64
	// Fuzzy is false for exact name hits.
	Fuzzy bool
}

type entry struct {
	key      string
	clean    string
	numerals []int
}

// Index maps normalized store names to ids. It is read-only after
// construction and safe for concurrent lookups.
type Index struct {
	norm      *Normalizer
	threshold float64
	ids       map[string]int
	entries   []entry
}

// NewIndex builds an index. Names are normalized with n; when two names
// collide the later id wins while the first position is kept.
func NewIndex(n *Normalizer, threshold float64, names []string, ids []int) *Index {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	idx := &Index{norm: n, threshold: threshold, ids: make(map[string]int, len(names))}
	for i, name := range names {
		if i >= len(ids) {
			break
		}
		key := strings.ToLower(n.Normalize(name))
		if _, seen := idx.ids[key]; !seen {
			c := Clean(key)
			idx.entries = append(idx.entries, entry{key: key, clean: c, numerals: numerals(c)})
		}
		idx.ids[key] = ids[i]
	}
	return idx
}

func (idx *Index) Len() int { return len(idx.entries) }

// Lookup tries the raw title, then its normalized form, then the most
// similar name at or above the threshold.
func (idx *Index) Lookup(title string) (Match, bool) {
	if id, ok := idx.ids[strings.ToLower(title)]; ok {
		return Match{ID: id, Name: strings.ToLower(title), Score: 1}, true
	}
	normalized := strings.ToLower(idx.norm.Normalize(title))
	if id, ok := idx.ids[normalized]; ok {
		return Match{ID: id, Name: normalized, Score: 1}, true
	}

	key, score, ok := idx.best(normalized)
	if !ok {
		return Match{}, false
	}
	return Match{ID: idx.ids[key], Name: key, Score: score, Fuzzy: true}, true
}

// best returns the first name with the highest score.
func (idx *Index) best(title string) (string, float64, bool) {
	c := Clean(title)
	nc := numerals(c)

	bestScore := 0.0
	bestKey := ""
	for _, e := range idx.entries {
		// 2*min/(la+lb) bounds the ratio from above.
		total := len(c) + len(e.clean)
		if total > 0 {
			bound := 2 * float64(min(len(c), len(e.clean))) / float64(total)
			if bound < idx.threshold || bound <= bestScore {
				continue
			}
		}
		score := cleanSimilarity(c, nc, e.clean, e.numerals)
		if score > bestScore {
			bestScore, bestKey = score, e.key
		}
	}
	if bestKey == "" || bestScore < idx.threshold {
		return "", 0, false
	}
	return bestKey, bestScore, true
}

// BestMatch returns the candidate most similar to title when its score
// reaches threshold. Ties keep the earliest candidate.
func BestMatch(title string, candidates []string, threshold float64) (string, float64, bool) {
	bestScore := 0.0
	best := ""
	for _, cand := range candidates {
		score := Similarity(title, cand)
		if score > bestScore {
			bestScore, best = score, cand
		}
	}
	if best == "" || bestScore < threshold {
		return "", 0, false
	}
	return best, bestScore, true
}
