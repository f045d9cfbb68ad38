// Package app wires together all adapters and domain logic.
// It provides lifecycle management for the latebot daemon: create, start, stop.
package app

import (
	"fmt"
	"sync"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"

	fsw "github.com/corey/latebot/internal/adapters/fsnotify"
	"github.com/corey/latebot/internal/adapters/socket"
	"github.com/corey/latebot/internal/config"
	"github.com/corey/latebot/internal/domain/fuzzy"
	"github.com/corey/latebot/internal/logging"
	"github.com/corey/latebot/internal/ports"
)

// App is the top-level container wiring all components together.
type App struct {
	Root    string
	Paths   *Paths
	Store   ports.CounterStore
	Watcher ports.Watcher
	Server  *socket.Server

	configPath string
	backend    string
	lock       *flock.Flock
	log        zerolog.Logger

	mu      sync.RWMutex // guards cfg and matcher; swapped together on reload
	cfg     *config.Config
	matcher *fuzzy.Matcher
}

// Config holds initialization parameters for the App.
type Config struct {
	Root       string
	ConfigPath string             // default: .latebot/config.toml
	SocketPath string             // default: socket.SocketPath(Root)
	Store      ports.CounterStore // optional: overrides store.backend
	Watcher    ports.Watcher      // optional: overrides the fsnotify watcher
}

// New creates an App with all dependencies wired. Does not start services.
// The configuration is loaded and validated here so a bad file fails fast.
func New(cfg Config) (*App, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("root required")
	}
	paths := NewPaths(cfg.Root)
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = paths.Config
	}
	if cfg.SocketPath == "" {
		cfg.SocketPath = socket.SocketPath(cfg.Root)
	}

	a := &App{
		Root:       cfg.Root,
		Paths:      paths,
		configPath: cfg.ConfigPath,
		lock:       flock.New(paths.LockFile),
		log:        logging.GetLogger("app"),
	}
	settings, err := a.load()
	if err != nil {
		return nil, err
	}
	a.backend = settings.Store.Backend

	store := cfg.Store
	if store == nil {
		s, err := OpenStore(paths, a.backend)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		store = s
	}
	a.Store = store

	watcher := cfg.Watcher
	if watcher == nil {
		w, err := fsw.NewWatcher()
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("create watcher: %w", err)
		}
		watcher = w
	}
	a.Watcher = watcher

	a.Server = socket.NewServer(a, cfg.SocketPath)
	return a, nil
}

// Start takes the daemon lock, then serves the socket and watches the
// config file. Only one daemon may run per root.
func (a *App) Start() error {
	if err := a.Paths.EnsureDirs(); err != nil {
		return fmt.Errorf("create .latebot dirs: %w", err)
	}
	ok, err := a.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another latebot daemon is already running for %s", a.Root)
	}

	if err := a.Server.Start(); err != nil {
		a.lock.Unlock()
		return fmt.Errorf("start server: %w", err)
	}
	// Hot reload is a convenience; run without it if the watch fails.
	if err := a.Watcher.Watch(a.configPath, a.onConfigChanged); err != nil {
		a.log.Warn().Err(err).Str("path", a.configPath).Msg("Config watcher unavailable")
	}
	phrases, scorer := a.MatcherInfo()
	a.log.Info().
		Str("socket", a.Server.Addr()).
		Int("phrases", phrases).
		Str("scorer", scorer).
		Msg("Daemon started")
	return nil
}

// Stop shuts down all services and closes the store.
func (a *App) Stop() error {
	a.Watcher.Stop()
	a.Server.Stop()
	if a.lock.Locked() {
		if err := a.lock.Unlock(); err != nil {
			a.log.Warn().Err(err).Msg("Failed to release daemon lock")
		}
	}
	if err := a.Store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// Close releases the store of an App whose Start failed.
func (a *App) Close() error {
	if err := a.Store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// Settings returns a copy of the active configuration.
func (a *App) Settings() config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return *a.cfg
}

// load reads the config file and swaps in a new matcher. On error the
// previous configuration stays active.
func (a *App) load() (*config.Config, error) {
	cfg, exists, err := config.Load(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	m, err := cfg.Matcher()
	if err != nil {
		return nil, fmt.Errorf("build matcher: %w", err)
	}
	if !exists {
		a.log.Debug().Str("path", a.configPath).Msg("No config file, using defaults")
	}
	a.warnBackendChange(cfg)

	a.mu.Lock()
	a.cfg = cfg
	a.matcher = m
	a.mu.Unlock()
	return cfg, nil
}

func (a *App) onConfigChanged(path string) {
	res, err := a.Reload()
	if err != nil {
		a.log.Error().Err(err).Str("path", path).Msg("Config reload failed, keeping previous settings")
		return
	}
	a.log.Info().Int("phrases", res.PhraseCount).Str("scorer", res.Scorer).Msg("Config reloaded")
}

// warnBackendChange flags a store.backend edit, which only applies on restart.
func (a *App) warnBackendChange(cfg *config.Config) {
	if a.backend != "" && cfg.Store.Backend != a.backend {
		a.log.Warn().
			Str("active", a.backend).
			Str("configured", cfg.Store.Backend).
			Msg("store.backend changed; restart the daemon to switch stores")
	}
}
