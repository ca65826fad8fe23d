package titles

import "slices"

// DefaultThreshold is the minimum similarity for a fuzzy match.
const DefaultThreshold = 0.90

// Similarity compares two titles after Clean. Titles whose sequel
// numbers disagree score 0. Otherwise the score is 2*M/T where M is the
// number of characters in matching blocks and T the combined length.
func Similarity(a, b string) float64 {
	ca, cb := Clean(a), Clean(b)
	return cleanSimilarity(ca, numerals(ca), cb, numerals(cb))
}

func cleanSimilarity(a string, na []int, b string, nb []int) float64 {
	if len(na) > 0 && len(nb) > 0 && !slices.Equal(na, nb) {
		return 0
	}
	return Ratio(a, b)
}

// Ratio is the Ratcliff/Obershelp similarity of two byte strings.
func Ratio(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	return 2 * float64(newMatcher(a, b).matches(0, len(a), 0, len(b))) / float64(total)
}

type matcher struct {
	a, b string
	b2j  [256][]int
	// j2len rows indexed by j+1, reused between searches.
	cur, next []int
	touched   []int
}

func newMatcher(a, b string) *matcher {
	m := &matcher{a: a, b: b, cur: make([]int, len(b)+1), next: make([]int, len(b)+1)}
	for j := 0; j < len(b); j++ {
		m.b2j[b[j]] = append(m.b2j[b[j]], j)
	}
	return m
}

// matches sums the sizes of all matching blocks in a[alo:ahi] and
// b[blo:bhi], splitting around the longest block.
func (m *matcher) matches(alo, ahi, blo, bhi int) int {
	i, j, k := m.longest(alo, ahi, blo, bhi)
	if k == 0 {
		return 0
	}
	return k + m.matches(alo, i, blo, j) + m.matches(i+k, ahi, j+k, bhi)
}

// longest finds the longest common block, preferring the earliest one
// in a and then in b.
func (m *matcher) longest(alo, ahi, blo, bhi int) (int, int, int) {
	besti, bestj, best := alo, blo, 0
	var prevTouched []int
	for i := alo; i < ahi; i++ {
		m.touched = m.touched[:0]
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := m.cur[j] + 1
			m.next[j+1] = k
			m.touched = append(m.touched, j+1)
			if k > best {
				besti, bestj, best = i-k+1, j-k+1, k
			}
		}
		for _, idx := range prevTouched {
			m.cur[idx] = 0
		}
		m.cur, m.next = m.next, m.cur
		prevTouched = append(prevTouched[:0], m.touched...)
	}
	for _, idx := range prevTouched {
		m.cur[idx] = 0
	}
	return besti, bestj, best
}
