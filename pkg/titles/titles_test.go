package titles

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer(map[string]string{"GTA V": "Grand Theft Auto V"})
	tests := []struct {
		in, want string
	}{
		{"Half-Life 2", "Half-Life II"},
		{"Portal™ 2 (2011)", "Portal II"},
		{"  : The Witcher 3: Wild Hunt", "The Witcher 3 Wild Hunt"},
		{"Witcher 3", "Witcher III"},
		{"Doom (1993)", "Doom"},
		{"Mass Effect 2", "Mass Effect 2"},
		{"Titanfall 2", "Titanfall 2"},
		{"gta v", "Grand Theft Auto V"},
		{"Civilization 11", "Civilization 11"},
		{"Disco Elysium®", "Disco Elysium"},
	}
	for _, tt := range tests {
		if got := n.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"The Legend of Zelda: Breath of the Wild", "legend of zelda breath of wild"},
		{"Pokémon Red", "pokmon red"},
		{"Half-Life II", "halflife ii"},
		{"A", ""},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNumerals(t *testing.T) {
	if !IsRoman("iv") || IsRoman("XI") || IsRoman("4") {
		t.Fatalf("IsRoman mismatch")
	}
	for in, want := range map[string]int{"3": 3, "III": 3, "x": 10, "2077": 2077} {
		if got, ok := NumeralValue(in); !ok || got != want {
			t.Errorf("NumeralValue(%q) = %d,%v want %d", in, got, ok, want)
		}
	}
	if _, ok := NumeralValue("zelda"); ok {
		t.Fatalf("zelda is not a numeral")
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"abcd", "abcd", 1},
		{"abcd", "wxyz", 0},
		// blocks "a", "b", "d"
		{"abcd", "acbd", 0.75},
		{"portal", "portal ii", 2 * 6.0 / 15},
	}
	for _, tt := range tests {
		if got := Ratio(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarity_NumeralMismatch(t *testing.T) {
	if got := Similarity("Portal 2", "Portal 3"); got != 0 {
		t.Fatalf("numeral mismatch should score 0, got %v", got)
	}
	if got := Similarity("Half-Life II", "Half-Life 2"); got >= 1 || got <= 0 {
		t.Fatalf("II vs 2 share a value and should be compared by text, got %v", got)
	}
	if got := Similarity("Portal 2", "portal 2"); got != 1 {
		t.Fatalf("case should not matter, got %v", got)
	}
}

func TestBestMatch(t *testing.T) {
	cands := []string{"Portal", "Portal 2", "Portal II: Reloaded"}
	got, score, ok := BestMatch("Portal 2", cands, DefaultThreshold)
	if !ok || got != "Portal 2" || score != 1 {
		t.Fatalf("got %q %v %v", got, score, ok)
	}
	if _, _, ok := BestMatch("Stardew Valley", cands, DefaultThreshold); ok {
		t.Fatalf("unexpected match")
	}
}

func TestIndexLookup(t *testing.T) {
	n := NewNormalizer(nil)
	idx := NewIndex(n, DefaultThreshold,
		[]string{"Portal 2", "Half-Life 2", "Disco Elysium - The Final Cut", "Portal 2"},
		[]int{620, 220, 632470, 621})

	if idx.Len() != 3 {
		t.Fatalf("Len = %d, want 3", idx.Len())
	}

	m, ok := idx.Lookup("Portal 2")
	if !ok || m.ID != 621 || m.Fuzzy {
		t.Fatalf("exact lookup: %+v %v", m, ok)
	}
	m, ok = idx.Lookup("Half-Life II")
	if !ok || m.ID != 220 {
		t.Fatalf("normalized lookup: %+v %v", m, ok)
	}
	m, ok = idx.Lookup("Disco Elysium: The Final Cut")
	if !ok || m.ID != 632470 || !m.Fuzzy || m.Score < DefaultThreshold {
		t.Fatalf("fuzzy lookup: %+v %v", m, ok)
	}
	if _, ok := idx.Lookup("Half-Life 3"); ok {
		t.Fatalf("sequel number mismatch must not match")
	}
}
