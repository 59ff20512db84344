package repositories

import "context"

// SequenceRepository hands out strictly increasing values per scope.
// Implementations must be atomic: concurrent callers never observe the same value.
type SequenceRepository interface {
	// NextValue increments the sequence of scopeKey and returns the new value, starting at 1.
	NextValue(ctx context.Context, scopeKey string) (int64, error)
}
