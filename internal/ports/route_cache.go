package ports

import "context"

// Port: a cache of resolved route results keyed by the coordinate sequence.
// Only distance and duration are cached; geometry is never stored.
type RouteCache interface {
	// Get returns the cached result and whether the key was present.
	Get(ctx context.Context, key string) (RouteResult, bool, error)

	// Put stores a result. Implementations may expire entries.
	Put(ctx context.Context, key string, result RouteResult) error
}
