package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/corey/latebot/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.CounterStore = (*Store)(nil)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "latebot.sqlite")
	s, err := NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestStore_IncrementAndCount(t *testing.T) {
	s, _ := openTestStore(t)

	n, err := s.Increment("alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	n, err = s.Increment("alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)

	got, err := s.Count("alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got)

	got, err = s.Count("nobody")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestStore_RejectsEmptyUser(t *testing.T) {
	s, _ := openTestStore(t)
	_, err := s.Increment("")
	assert.Error(t, err)
}

func TestStore_CountsSorted(t *testing.T) {
	s, _ := openTestStore(t)
	for _, u := range []string{"bob", "alice", "carol", "alice", "carol"} {
		_, err := s.Increment(u)
		require.NoError(t, err)
	}

	counts, err := s.Counts()
	require.NoError(t, err)
	assert.Equal(t, []ports.UserCount{
		{UserID: "alice", Count: 2},
		{UserID: "carol", Count: 2},
		{UserID: "bob", Count: 1},
	}, counts)
}

func TestStore_CountsEmpty(t *testing.T) {
	s, _ := openTestStore(t)
	counts, err := s.Counts()
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestStore_ResetIsIdempotent(t *testing.T) {
	s, _ := openTestStore(t)
	_, err := s.Increment("alice")
	require.NoError(t, err)

	require.NoError(t, s.Reset("alice"))
	require.NoError(t, s.Reset("alice"))

	got, err := s.Count("alice")
	require.NoError(t, err)
	assert.Zero(t, got)

	n, err := s.Increment("alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n, "counter restarts after reset")
}

func TestStore_DurableAcrossReopen(t *testing.T) {
	s, path := openTestStore(t)
	for i := 0; i < 3; i++ {
		_, err := s.Increment("bob")
		require.NoError(t, err)
	}
	require.NoError(t, s.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Count("bob")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got)
}

func TestStore_ConcurrentIncrements(t *testing.T) {
	s, _ := openTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_, err := s.Increment("carol")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	got, err := s.Count("carol")
	require.NoError(t, err)
	assert.Equal(t, uint64(200), got)
}

func TestStore_ReadsWhileAnotherHandleWrites(t *testing.T) {
	writer, path := openTestStore(t)
	reader, err := NewStore(path)
	require.NoError(t, err)
	defer reader.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_, err := writer.Increment("alice")
			assert.NoError(t, err)
		}
	}()

	for {
		_, err := reader.Count("alice")
		require.NoError(t, err)
		_, err = reader.Counts()
		require.NoError(t, err)

		select {
		case <-done:
			n, err := reader.Count("alice")
			require.NoError(t, err)
			assert.Equal(t, uint64(100), n)
			return
		default:
		}
	}
}

// ============================================================================
// Busy retry
// ============================================================================

func TestRetryOnBusy_RetriesLockedDatabase(t *testing.T) {
	calls := 0
	err := retryOnBusy(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked (5) (SQLITE_BUSY)")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryOnBusy_GivesUpAfterAttempts(t *testing.T) {
	calls := 0
	err := retryOnBusy(context.Background(), func() error {
		calls++
		return errors.New("database is locked")
	})
	require.Error(t, err)
	assert.Equal(t, busyRetryAttempts, calls)
}

func TestRetryOnBusy_OtherErrorsFailFast(t *testing.T) {
	calls := 0
	err := retryOnBusy(context.Background(), func() error {
		calls++
		return errors.New("no such table: counters")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
