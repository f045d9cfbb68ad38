// Package bbolt implements the ports.CounterStore interface using bbolt
// (embedded B+ tree). All counters live in one "counters" bucket keyed by
// user ID. Writes are transactional: a crash mid-write cannot corrupt
// previously committed counts.
package bbolt

import (
	"errors"
	"fmt"
	"time"

	"github.com/corey/latebot/internal/ports"
	bolt "go.etcd.io/bbolt"
)

var bucketCounters = []byte("counters")

// Store implements ports.CounterStore backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
// Another process holding the file lock makes it fail after one second
// with an error mentioning "timeout".
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCounters)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Increment adds one to the user's counter in a single write transaction.
func (s *Store) Increment(userID string) (uint64, error) {
	if userID == "" {
		return 0, errors.New("empty user id")
	}

	var n uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCounters)
		cur, err := decodeCount(b.Get([]byte(userID)))
		if err != nil {
			return fmt.Errorf("user %q: %w", userID, err)
		}
		n = cur + 1
		return b.Put([]byte(userID), encodeCount(n))
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Count returns the user's counter, 0 if the user was never counted.
func (s *Store) Count(userID string) (uint64, error) {
	var n uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		n, err = decodeCount(tx.Bucket(bucketCounters).Get([]byte(userID)))
		return err
	})
	return n, err
}

// Counts returns every counter, highest first, ties by user ID.
func (s *Store) Counts() ([]ports.UserCount, error) {
	var counts []ports.UserCount
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCounters).ForEach(func(k, v []byte) error {
			n, err := decodeCount(v)
			if err != nil {
				return fmt.Errorf("user %q: %w", k, err)
			}
			// Copy the key out: bbolt slices are only valid within tx.
			counts = append(counts, ports.UserCount{UserID: string(k), Count: n})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	ports.SortCounts(counts)
	return counts, nil
}

// Reset removes the user's counter. Idempotent.
func (s *Store) Reset(userID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCounters).Delete([]byte(userID))
	})
}
