// Package memory implements ports.CounterStore in process memory.
// Counts vanish when the process exits; it backs dry runs and tests.
package memory

import (
	"errors"
	"sync"

	"github.com/corey/latebot/internal/ports"
)

// Store is a mutex-guarded map of user ID to count.
type Store struct {
	mu     sync.Mutex
	counts map[string]uint64
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{counts: make(map[string]uint64)}
}

// Increment adds one to the user's counter and returns the new value.
func (s *Store) Increment(userID string) (uint64, error) {
	if userID == "" {
		return 0, errors.New("empty user id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[userID]++
	return s.counts[userID], nil
}

// Count returns the user's counter, 0 if the user was never counted.
func (s *Store) Count(userID string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[userID], nil
}

// Counts returns every counter, highest first, ties by user ID.
func (s *Store) Counts() ([]ports.UserCount, error) {
	s.mu.Lock()
	out := make([]ports.UserCount, 0, len(s.counts))
	for u, n := range s.counts {
		out = append(out, ports.UserCount{UserID: u, Count: n})
	}
	s.mu.Unlock()
	ports.SortCounts(out)
	return out, nil
}

// Reset removes the user's counter. Idempotent.
func (s *Store) Reset(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counts, userID)
	return nil
}

// Close is a no-op; counts stay readable afterwards.
func (s *Store) Close() error { return nil }
