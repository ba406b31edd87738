package domain

import (
	"context"
	"time"
)

// NeighbourSearcher answers nearest-neighbour queries over one immutable
// catalog snapshot. Implementations must be safe for concurrent readers.
type NeighbourSearcher interface {
	// Neighbours returns the top-k records most similar to name, ordered by
	// descending similarity with ties broken by catalog insertion order.
	// k <= 0 selects the searcher's default. An empty catalog yields an
	// empty list, not an error.
	Neighbours(name string, k int) []Neighbour

	// Categories returns the sorted distinct categories in the snapshot.
	Categories() []string
}

// IndexProvider hands out the current catalog index. A refresh replaces
// the whole index atomically; in-flight calls keep the snapshot they
// started with.
type IndexProvider interface {
	Index() NeighbourSearcher
}

// SubmissionStore persists submissions for the head-office review workflow.
type SubmissionStore interface {
	Create(ctx context.Context, sub *StoredSubmission) error
	List(ctx context.Context) (pending, decided []*StoredSubmission, err error)
	Approve(ctx context.Context, id string) error
	Deny(ctx context.Context, id, reason string) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
