package picker

import (
	"context"

	"github.com/runger/trove/internal/search"
)

// Provider is the interface for data sources that supply results to
// the picker. The CLI uses the local corpus; tests use fakes.
type Provider interface {
	Fetch(ctx context.Context, req Request) (Response, error)
}

// Request describes what results the picker wants from a Provider.
type Request struct {
	RequestID uint64 // Monotonically increasing, for stale response detection
	Query     string // Raw search query (operators included)
	TabID     string // Active tab identifier
	Type      string // Entity kind filter from the tab ("" = all kinds)
	Limit     int
	Offset    int
}

// Response carries results back from a Provider.
type Response struct {
	RequestID uint64 // Must match Request.RequestID to be accepted
	Items     []search.UnifiedResult
	AtEnd     bool // No more pages available
}
