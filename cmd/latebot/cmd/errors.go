package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/corey/latebot/internal/adapters/socket"
	"github.com/corey/latebot/internal/app"
	"github.com/corey/latebot/internal/ports"
)

// isDBLockError returns true if the error chain contains a bbolt lock timeout.
// bbolt returns the string "timeout" when it cannot acquire the file lock
// within the configured deadline.
func isDBLockError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "timeout")
}

// diagnoseDBLock checks the daemon state and returns actionable guidance
// when a bbolt open fails due to lock contention. It distinguishes three
// scenarios: daemon running, stale socket, and unknown lock holder.
func diagnoseDBLock(root string) string {
	sockPath := socket.SocketPath(root)
	client := socket.NewClient(sockPath)

	if client.Ping() {
		return "database is locked by the running daemon\n" +
			"  → stop it first:  latebot daemon stop\n" +
			"  → then retry your command"
	}

	if _, err := os.Stat(sockPath); err == nil {
		return fmt.Sprintf("database is locked, daemon socket exists but is not responding\n"+
			"  → a previous daemon may have crashed\n"+
			"  → find the process:  ps aux | grep 'latebot daemon'\n"+
			"  → kill it:           kill <PID>\n"+
			"  → clean up socket:   rm %s", sockPath)
	}

	return "database is locked by another process\n" +
		"  → find the process:  ps aux | grep 'latebot'\n" +
		"  → kill it:           kill <PID>\n" +
		"  → then retry your command"
}

// openStore opens the configured counter store directly, for commands
// that run without a daemon.
func openStore(root string) (ports.CounterStore, error) {
	cfg, err := loadConfig(root)
	if err != nil {
		return nil, err
	}
	store, err := app.OpenStore(app.NewPaths(root), cfg.Store.Backend)
	if err != nil {
		if isDBLockError(err) {
			return nil, fmt.Errorf("cannot open counters: %s", diagnoseDBLock(root))
		}
		return nil, fmt.Errorf("open database: %w", err)
	}
	return store, nil
}
