package fsnotify

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/corey/latebot/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Config watcher: detect edits to the config file, trigger a reload
// =============================================================================

var _ ports.Watcher = (*Watcher)(nil)

// waitForCallback waits up to timeout for the callback channel to receive a value.
func waitForCallback(ch <-chan string, timeout time.Duration) (string, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return "", false
	}
}

func startWatcher(t *testing.T, path string) <-chan string {
	t.Helper()
	w, err := NewWatcherWithDebounce(20 * time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	changed := make(chan string, 10)
	require.NoError(t, w.Watch(path, func(p string) { changed <- p }))

	// Give watcher time to start
	time.Sleep(50 * time.Millisecond)
	return changed
}

func TestWatcher_DetectsWrite(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("# original"), 0644))

	changed := startWatcher(t, cfg)
	require.NoError(t, os.WriteFile(cfg, []byte("# modified"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for config change")
	assert.Equal(t, cfg, path)
}

func TestWatcher_DetectsCreate(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")

	changed := startWatcher(t, cfg)
	require.NoError(t, os.WriteFile(cfg, []byte("# new"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for created config")
	assert.Equal(t, cfg, path)
}

func TestWatcher_DetectsRenameOver(t *testing.T) {
	// Editors often save via temp file + rename.
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("# original"), 0644))

	changed := startWatcher(t, cfg)

	tmp := filepath.Join(dir, ".config.toml.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("# saved"), 0644))
	require.NoError(t, os.Rename(tmp, cfg))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for rename over config")
	assert.Equal(t, cfg, path)
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("# original"), 0644))

	changed := startWatcher(t, cfg)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "latebot.db"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0644))

	_, ok := waitForCallback(changed, 300*time.Millisecond)
	assert.False(t, ok, "sibling files should not trigger a reload")
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("# 0"), 0644))

	w, err := NewWatcherWithDebounce(150 * time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	var calls atomic.Int32
	require.NoError(t, w.Watch(cfg, func(string) { calls.Add(1) }))
	time.Sleep(50 * time.Millisecond)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(cfg, []byte("# burst"), 0644))
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond)

	assert.Equal(t, int32(1), calls.Load(), "a burst of writes should fire once")
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	require.NoError(t, w.Watch(filepath.Join(t.TempDir(), "config.toml"), func(string) {}))
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()
	err = w.Watch(filepath.Join(t.TempDir(), "nope", "config.toml"), func(string) {})
	assert.Error(t, err)
}
