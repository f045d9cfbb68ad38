// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import "sort"

// CounterStore keeps the per-user "said the phrase" counters.
// The matcher never touches it: the app increments a user's counter only
// after a message matched. Implementations must make Increment atomic per
// user so concurrent messages never lose a count.
type CounterStore interface {
	// Increment adds one to the user's counter and returns the new value.
	// A user with no counter starts at zero.
	Increment(userID string) (uint64, error)

	// Count returns the user's counter, or 0 if the user was never counted.
	Count(userID string) (uint64, error)

	// Counts returns every known counter.
	Counts() ([]UserCount, error)

	// Reset removes the user's counter.
	// Idempotent: resetting an unknown user is not an error.
	Reset(userID string) error

	// Close releases the underlying resources.
	Close() error
}

// UserCount is one user's counter value.
type UserCount struct {
	UserID string `json:"user"`
	Count  uint64 `json:"count"`
}

// SortCounts orders counters highest first, ties by user ID.
func SortCounts(counts []UserCount) {
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].UserID < counts[j].UserID
	})
}
