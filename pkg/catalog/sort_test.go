package catalog

import (
	"reflect"
	"testing"
)

func TestSort_Title(t *testing.T) {
	games := []Game{{Title: "portal 2"}, {Title: "Anthem"}, {Title: "Élite"}, {Title: "disco Elysium"}}
	got := titles(Sort(games, SortTitle))
	want := []string{"Anthem", "disco Elysium", "Élite", "portal 2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}

	again := titles(Sort(Sort(games, SortTitle), SortTitle))
	if !reflect.DeepEqual(again, got) {
		t.Fatalf("sorting twice changed the order: %v vs %v", got, again)
	}
}

func TestSort_DoesNotModifyInput(t *testing.T) {
	games := sampleGames()
	before := titles(games)
	_ = Sort(games, SortTitle)
	if !reflect.DeepEqual(titles(games), before) {
		t.Fatalf("input reordered: %v", titles(games))
	}
}

func TestSort_Rankings(t *testing.T) {
	got := titles(Sort(sampleGames(), SortIGN))
	want := []string{"The Legend of Zelda", "Portal 2", "Disco Elysium", "Anthem"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}

	got = titles(Sort(sampleGames(), SortPCGamer))
	want = []string{"Portal 2", "The Legend of Zelda", "Disco Elysium", "Anthem"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unranked games should keep their order at the bottom, want %v, got %v", want, got)
	}
}

func TestSort_UserScoreAndMetacritic(t *testing.T) {
	games := []Game{
		{Title: "a", UserScore: floatp(0.5), Metacritic: intp(70)},
		{Title: "b"},
		{Title: "c", UserScore: floatp(0.9), Metacritic: intp(90)},
	}
	if got := titles(Sort(games, SortUserScore)); !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Fatalf("score: got %v", got)
	}
	if got := titles(Sort(games, SortMetacritic)); !reflect.DeepEqual(got, []string{"c", "a", "b"}) {
		t.Fatalf("metacritic: got %v", got)
	}
}

func TestSort_Release(t *testing.T) {
	games := []Game{
		{Title: "old", ReleaseDate: "1998-11-19"},
		{Title: "missing"},
		{Title: "new", ReleaseDate: "2023-05-12"},
		{Title: "garbage", ReleaseDate: "someday"},
		{Title: "mid", ReleaseDate: "Oct 10, 2011"},
	}
	got := titles(Sort(games, SortRelease))
	want := []string{"new", "mid", "old", "missing", "garbage"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestPoints(t *testing.T) {
	top := Game{Title: "top", Rankings: map[string]int{SourceRPS: 1, SourceIGN: 1, SourcePCGamer: 1}, Metacritic: intp(100)}
	mid := Game{Title: "mid", Rankings: map[string]int{SourceRPS: 50, SourceIGN: 50, SourcePCGamer: 50}, Metacritic: intp(50)}

	if got := Points(top); got != 400 {
		t.Fatalf("top: want 400, got %d", got)
	}
	if got := Points(mid); got != 203 {
		t.Fatalf("mid: want 203, got %d", got)
	}
	if got := Points(Game{Rankings: map[string]int{SourceRPS: 100}}); got != 1 {
		t.Fatalf("single rank: want 1, got %d", got)
	}
	if got := Points(Game{}); got != 0 {
		t.Fatalf("empty: want 0, got %d", got)
	}

	got := titles(Sort([]Game{mid, top}, SortPoints))
	if !reflect.DeepEqual(got, []string{"top", "mid"}) {
		t.Fatalf("points order: got %v", got)
	}
}

func TestSort_UnknownKeyIsIdentity(t *testing.T) {
	games := sampleGames()
	got := Sort(games, SortKey("popularity"))
	if !reflect.DeepEqual(titles(got), titles(games)) {
		t.Fatalf("unknown key reordered: %v", titles(got))
	}
	if got := Sort(nil, SortTitle); got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %#v", got)
	}
}

func TestSortKeyValid(t *testing.T) {
	for _, k := range SortKeys {
		if !k.Valid() {
			t.Fatalf("%s should be valid", k)
		}
	}
	if SortKey("nope").Valid() {
		t.Fatalf("nope should not be valid")
	}
}
