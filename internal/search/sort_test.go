package search

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/runger/trove/internal/query"
)

type scoredItem struct {
	id    string
	ts    int64
	score float64
}

func itemTS(i scoredItem) int64      { return i.ts }
func itemScore(i scoredItem) float64 { return i.score }

func TestSortSearchResults_NewestOldest(t *testing.T) {
	t.Parallel()

	items := []scoredItem{
		{id: "a", ts: 100},
		{id: "b", ts: 300},
		{id: "c", ts: 200},
	}
	q := query.NormalizeQuery("x")

	newest := SortSearchResults(items, SortNewest, q, itemTS, itemScore)
	if ids(newest) != "b,c,a" {
		t.Errorf("newest = %v", ids(newest))
	}
	oldest := SortSearchResults(items, SortOldest, q, itemTS, itemScore)
	if ids(oldest) != "a,c,b" {
		t.Errorf("oldest = %v", ids(oldest))
	}
	if ids2 := ids(items); ids2 != "a,b,c" {
		t.Errorf("input reordered: %v", ids2)
	}
}

func TestSortSearchResults_StableOnTies(t *testing.T) {
	t.Parallel()

	items := []scoredItem{
		{id: "a", ts: 100, score: 5},
		{id: "b", ts: 100, score: 5},
		{id: "c", ts: 100, score: 5},
		{id: "d", ts: 100, score: 5},
	}
	for _, mode := range []SortMode{SortNewest, SortOldest, SortRelevance} {
		got := SortSearchResults(items, mode, query.NormalizeQuery("x"), itemTS, itemScore)
		if ids(got) != "a,b,c,d" {
			t.Errorf("mode %s: ties must preserve input order, got %v", mode, ids(got))
		}
	}
}

func TestSortSearchResults_Relevance(t *testing.T) {
	t.Parallel()

	items := []scoredItem{
		{id: "low", ts: 900, score: 1},
		{id: "high", ts: 100, score: 9},
		{id: "mid-new", ts: 500, score: 5},
		{id: "mid-old", ts: 400, score: 5},
	}
	got := SortSearchResults(items, SortRelevance, query.NormalizeQuery("x"), itemTS, itemScore)
	if ids(got) != "high,mid-new,mid-old,low" {
		t.Errorf("relevance = %v", ids(got))
	}
}

func TestSortSearchResults_RelevanceWithEmptyQueryFallsBackToNewest(t *testing.T) {
	t.Parallel()

	items := []scoredItem{
		{id: "a", ts: 100, score: 99},
		{id: "b", ts: 300, score: 1},
	}
	got := SortSearchResults(items, SortRelevance, query.NormalizeQuery(""), itemTS, itemScore)
	if ids(got) != "b,a" {
		t.Errorf("empty-query relevance = %v, want newest order", ids(got))
	}
}

func TestTopKSearchResults_LimitZero(t *testing.T) {
	t.Parallel()

	items := []scoredItem{{id: "a", ts: 1}}
	got := TopKSearchResults(items, SortNewest, query.NormalizeQuery(""), 0, itemTS, itemScore)
	if len(got) != 0 {
		t.Errorf("limit 0 must return an empty list, got %v", got)
	}
}

// TopKSearchResults must return exactly sortSearchResults(...)[:k] for
// every mode and every k, including heavy score/timestamp duplication.
func TestTopKSearchResults_MatchesFullSortPrefix(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	modes := []SortMode{SortNewest, SortOldest, SortRelevance}
	queries := []query.NormalizedQuery{query.NormalizeQuery("x"), query.NormalizeQuery("")}

	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(30)
		items := make([]scoredItem, n)
		for i := range items {
			items[i] = scoredItem{
				id:    string(rune('a' + i%26)),
				ts:    int64(rng.Intn(5)), // few distinct values forces ties
				score: float64(rng.Intn(4)),
			}
		}

		for _, mode := range modes {
			for _, q := range queries {
				full := SortSearchResults(items, mode, q, itemTS, itemScore)
				for k := 0; k <= n+5; k++ {
					got := TopKSearchResults(items, mode, q, k, itemTS, itemScore)
					want := full
					if k < len(full) {
						want = full[:k]
					}
					if len(got) != len(want) {
						t.Fatalf("trial %d mode %s k %d: len %d, want %d", trial, mode, k, len(got), len(want))
					}
					for i := range got {
						if !reflect.DeepEqual(got[i], want[i]) {
							t.Fatalf("trial %d mode %s k %d idx %d: %+v, want %+v", trial, mode, k, i, got[i], want[i])
						}
					}
				}
			}
		}
	}
}

func ids(items []scoredItem) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ","
		}
		out += it.id
	}
	return out
}
