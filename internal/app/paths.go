package app

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths for the .latebot/ directory.
type Paths struct {
	Root   string // .latebot/
	Config string // .latebot/config.toml
	DB     string // .latebot/latebot.db
	SQLite string // .latebot/latebot.sqlite

	LogDir    string // .latebot/log/
	DaemonLog string // .latebot/log/daemon.log

	RunDir   string // .latebot/run/
	PIDFile  string // .latebot/run/daemon.pid
	LockFile string // .latebot/run/daemon.lock
}

// NewPaths constructs all resolved paths from a root directory.
func NewPaths(root string) *Paths {
	dir := filepath.Join(root, ".latebot")
	return &Paths{
		Root:   dir,
		Config: filepath.Join(dir, "config.toml"),
		DB:     filepath.Join(dir, "latebot.db"),
		SQLite: filepath.Join(dir, "latebot.sqlite"),

		LogDir:    filepath.Join(dir, "log"),
		DaemonLog: filepath.Join(dir, "log", "daemon.log"),

		RunDir:   filepath.Join(dir, "run"),
		PIDFile:  filepath.Join(dir, "run", "daemon.pid"),
		LockFile: filepath.Join(dir, "run", "daemon.lock"),
	}
}

// EnsureDirs creates all subdirectories under .latebot/. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.LogDir, p.RunDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}

// CleanEphemeral removes runtime files. Called on clean daemon shutdown.
func (p *Paths) CleanEphemeral() {
	os.Remove(p.PIDFile)
}
