// Package titles normalizes game titles and matches them against a
// catalog of store names.
package titles

import (
	"regexp"
	"strings"
	"unicode"
)

var yearSuffix = regexp.MustCompile(`\s*\(\d{4}\)`)

var arabicToRoman = map[string]string{
	"1": "I", "2": "II", "3": "III", "4": "IV", "5": "V",
	"6": "VI", "7": "VII", "8": "VIII", "9": "IX", "10": "X",
}

var romanValues = map[string]int{
	"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5,
	"VI": 6, "VII": 7, "VIII": 8, "IX": 9, "X": 10,
}

// Series that number their entries with digits on every store.
var keepDigits = []string{"titanfall", "mass effect", "battlefield", "call of duty"}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
}

// Normalizer canonicalizes titles. The zero value has no special cases.
type Normalizer struct {
	special map[string]string
}

// NewNormalizer takes a title -> canonical title map. Keys are matched
// case-insensitively after cleanup.
func NewNormalizer(specialCases map[string]string) *Normalizer {
	n := &Normalizer{special: make(map[string]string, len(specialCases))}
	for k, v := range specialCases {
		n.special[strings.ToLower(k)] = v
	}
	return n
}

// Normalize strips trademark symbols and "(YYYY)" suffixes, applies the
// special cases and writes sequel numbers 1-10 as roman numerals.
func (n *Normalizer) Normalize(title string) string {
	title = strings.NewReplacer("®", "", "™", "").Replace(title)
	title = yearSuffix.ReplaceAllString(title, "")
	title = strings.Trim(strings.Trim(strings.TrimSpace(title), ":"), "-")

	lower := strings.ToLower(title)
	if n != nil {
		if canon, ok := n.special[lower]; ok {
			return canon
		}
	}

	keep := false
	for _, series := range keepDigits {
		if strings.Contains(lower, series) {
			keep = true
			break
		}
	}

	words := strings.Fields(title)
	for i, w := range words {
		if roman, ok := arabicToRoman[w]; ok {
			if !keep {
				words[i] = roman
			}
			continue
		}
		words[i] = strings.TrimSpace(strings.Trim(w, ":"))
	}
	return strings.Join(words, " ")
}

// Clean lowercases the title, drops punctuation, non-ASCII characters
// and stop words. The result is what similarity is computed on.
func Clean(title string) string {
	var b strings.Builder
	for _, r := range title {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r)) {
			continue
		}
		if r > unicode.MaxASCII {
			continue
		}
		b.WriteRune(r)
	}

	words := strings.Fields(strings.ToLower(b.String()))
	kept := words[:0]
	for _, w := range words {
		if !stopWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// IsRoman reports whether s is one of the numerals I to X.
func IsRoman(s string) bool {
	_, ok := romanValues[strings.ToUpper(s)]
	return ok
}

// NumeralValue converts an ASCII digit string or a roman numeral up to X.
func NumeralValue(s string) (int, bool) {
	if isDigits(s) {
		v := 0
		for _, c := range s {
			v = v*10 + int(c-'0')
			if v > 1<<30 {
				return 0, false
			}
		}
		return v, true
	}
	v, ok := romanValues[strings.ToUpper(s)]
	return v, ok
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func numerals(clean string) []int {
	var out []int
	for _, w := range strings.Fields(clean) {
		if v, ok := NumeralValue(w); ok {
			out = append(out, v)
		}
	}
	return out
}
