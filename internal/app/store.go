package app

import (
	"fmt"

	"github.com/corey/latebot/internal/adapters/bbolt"
	"github.com/corey/latebot/internal/adapters/sqlite"
	"github.com/corey/latebot/internal/config"
	"github.com/corey/latebot/internal/ports"
)

// OpenStore opens the counter store for backend under paths.
// The .latebot/ directories are created first.
func OpenStore(paths *Paths, backend string) (ports.CounterStore, error) {
	if err := paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("create .latebot dirs: %w", err)
	}
	switch backend {
	case config.BackendBbolt, "":
		s, err := bbolt.NewStore(paths.DB)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendSQLite:
		s, err := sqlite.NewStore(paths.SQLite)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
