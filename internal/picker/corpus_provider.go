package picker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runger/trove/internal/search"
	"github.com/runger/trove/internal/storage"
)

// CorpusProvider implements Provider by searching the local corpus.
// The corpus is loaded once on first fetch and reused for the life of
// the picker session; a picker run is short enough that staleness is
// not a concern.
type CorpusProvider struct {
	store  storage.Store
	window search.TimelineWindow
	sortBy search.SortMode

	corpus       search.Corpus
	corpusLoaded bool
}

// Compile-time check that CorpusProvider implements Provider.
var _ Provider = (*CorpusProvider)(nil)

// NewCorpusProvider creates a provider over the given store.
func NewCorpusProvider(store storage.Store, window search.TimelineWindow, sortBy search.SortMode) *CorpusProvider {
	return &CorpusProvider{store: store, window: window, sortBy: sortBy}
}

// Fetch searches the corpus and returns one page of results.
func (p *CorpusProvider) Fetch(ctx context.Context, req Request) (Response, error) {
	if !p.corpusLoaded {
		c, err := storage.LoadCorpus(ctx, p.store)
		if err != nil {
			return Response{}, fmt.Errorf("corpus provider: %w", err)
		}
		p.corpus = c
		p.corpusLoaded = true
	}

	raw := req.Query
	if req.Type != "" {
		raw = "type:" + req.Type + " " + raw
	}
	raw = strings.TrimSpace(raw)

	// Rank the whole corpus, then slice out the requested page. The
	// corpus lives in memory; ranking it fully keeps pagination exact.
	results := search.UnifiedSearch(p.corpus, raw, p.window, p.sortBy, 0, time.Now().UnixMilli())

	start := req.Offset
	if start > len(results) {
		start = len(results)
	}
	end := len(results)
	if req.Limit > 0 && start+req.Limit < end {
		end = start + req.Limit
	}

	return Response{
		RequestID: req.RequestID,
		Items:     results[start:end],
		AtEnd:     end == len(results),
	}, nil
}
