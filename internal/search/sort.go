package search

import (
	"sort"

	"github.com/runger/trove/internal/query"
)

// SortMode selects the result ordering.
type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortNewest    SortMode = "newest"
	SortOldest    SortMode = "oldest"
)

// ranked pairs an item with its sort keys. The original index makes
// the comparison a total order, which is what guarantees stability:
// we never rely on the sort algorithm itself being stable.
type ranked[T any] struct {
	item  T
	ts    int64
	score float64
	idx   int
}

// SortSearchResults orders items by sortBy and returns a new slice;
// the input is never reordered. Ties preserve original input order.
// Relevance sorting uses descending score, then descending timestamp;
// with an empty query relevance degrades to newest, since every score
// would be zero.
func SortSearchResults[T any](items []T, sortBy SortMode, q query.NormalizedQuery, timestampOf func(T) int64, scoreOf func(T) float64) []T {
	entries := rankItems(items, sortBy, q, timestampOf, scoreOf)
	less := rankedLess[T](effectiveMode(sortBy, q))
	sort.Slice(entries, func(i, j int) bool { return less(entries[i], entries[j]) })

	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = e.item
	}
	return out
}

// TopKSearchResults returns the first limit results of
// SortSearchResults without sorting the full input when limit is
// small: a bounded heap keeps the best limit entries seen so far.
// Because the comparison is a total order, the selection reproduces
// the full sort's tie-breaks exactly.
func TopKSearchResults[T any](items []T, sortBy SortMode, q query.NormalizedQuery, limit int, timestampOf func(T) int64, scoreOf func(T) float64) []T {
	if limit <= 0 {
		return []T{}
	}
	if limit >= len(items) {
		return SortSearchResults(items, sortBy, q, timestampOf, scoreOf)
	}

	entries := rankItems(items, sortBy, q, timestampOf, scoreOf)
	less := rankedLess[T](effectiveMode(sortBy, q))

	// Max-heap on "worst of the kept": the root is the entry that
	// loses first when a better one arrives.
	h := boundedHeap[T]{worse: func(a, b ranked[T]) bool { return less(b, a) }}
	for _, e := range entries {
		if len(h.entries) < limit {
			h.push(e)
			continue
		}
		if less(e, h.entries[0]) {
			h.entries[0] = e
			h.siftDown(0)
		}
	}

	kept := h.entries
	sort.Slice(kept, func(i, j int) bool { return less(kept[i], kept[j]) })
	out := make([]T, len(kept))
	for i, e := range kept {
		out[i] = e.item
	}
	return out
}

func rankItems[T any](items []T, sortBy SortMode, q query.NormalizedQuery, timestampOf func(T) int64, scoreOf func(T) float64) []ranked[T] {
	needScore := effectiveMode(sortBy, q) == SortRelevance
	entries := make([]ranked[T], len(items))
	for i, item := range items {
		e := ranked[T]{item: item, ts: timestampOf(item), idx: i}
		if needScore {
			e.score = scoreOf(item)
		}
		entries[i] = e
	}
	return entries
}

// effectiveMode maps relevance with an empty query onto newest.
func effectiveMode(sortBy SortMode, q query.NormalizedQuery) SortMode {
	if sortBy == SortRelevance && q.IsEmpty() {
		return SortNewest
	}
	return sortBy
}

// rankedLess returns the total-order comparison for a mode. Every
// branch falls through to ascending original index, so equal keys
// keep input order.
func rankedLess[T any](mode SortMode) func(a, b ranked[T]) bool {
	switch mode {
	case SortOldest:
		return func(a, b ranked[T]) bool {
			if a.ts != b.ts {
				return a.ts < b.ts
			}
			return a.idx < b.idx
		}
	case SortRelevance:
		return func(a, b ranked[T]) bool {
			if a.score != b.score {
				return a.score > b.score
			}
			if a.ts != b.ts {
				return a.ts > b.ts
			}
			return a.idx < b.idx
		}
	default: // SortNewest
		return func(a, b ranked[T]) bool {
			if a.ts != b.ts {
				return a.ts > b.ts
			}
			return a.idx < b.idx
		}
	}
}

// boundedHeap is a minimal binary heap ordered by worse: the root is
// the least-preferred entry currently kept.
type boundedHeap[T any] struct {
	entries []ranked[T]
	worse   func(a, b ranked[T]) bool
}

func (h *boundedHeap[T]) push(e ranked[T]) {
	h.entries = append(h.entries, e)
	i := len(h.entries) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !h.worse(h.entries[i], h.entries[parent]) {
			break
		}
		h.entries[i], h.entries[parent] = h.entries[parent], h.entries[i]
		i = parent
	}
}

func (h *boundedHeap[T]) siftDown(i int) {
	n := len(h.entries)
	for {
		left, right := 2*i+1, 2*i+2
		worst := i
		if left < n && h.worse(h.entries[left], h.entries[worst]) {
			worst = left
		}
		if right < n && h.worse(h.entries[right], h.entries[worst]) {
			worst = right
		}
		if worst == i {
			return
		}
		h.entries[i], h.entries[worst] = h.entries[worst], h.entries[i]
		i = worst
	}
}
