package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Match configures the phrase matcher.
type Match struct {
	SimilarityThreshold float64  `toml:"similarity_threshold"`
	InterruptThreshold  int      `toml:"interrupt_threshold"`
	Scorer              string   `toml:"scorer"`
	Phrases             []string `toml:"phrases"`
}

// Bot configures the replies sent back to chat.
// CommandPrefix marks chat commands such as "!print_count"; empty disables them.
type Bot struct {
	Reply         string `toml:"reply"`
	CountReply    string `toml:"count_reply"`
	CommandPrefix string `toml:"command_prefix"`
}

// Store selects where counters are persisted.
type Store struct {
	Backend string `toml:"backend"`
}

// Config is the full latebot configuration.
type Config struct {
	Match Match `toml:"match"`
	Bot   Bot   `toml:"bot"`
	Store Store `toml:"store"`
}

// Load reads the TOML file at path on top of Default, applies environment
// overrides, and validates the result. A missing file is not an error: the
// defaults are used and exists is false.
func Load(path string) (cfg *Config, exists bool, err error) {
	c := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		exists = true
		c.Match.Phrases = nil
		if err := toml.Unmarshal(data, &c); err != nil {
			return nil, true, fmt.Errorf("parse config: %w", err)
		}
		if c.Match.Phrases == nil {
			c.Match.Phrases = append([]string(nil), defaultPhrases...)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, false, fmt.Errorf("read config: %w", err)
	}

	if err := c.normalize(); err != nil {
		return nil, exists, err
	}
	if err := c.Validate(); err != nil {
		return nil, exists, err
	}
	return &c, exists, nil
}

// CreateSample writes the commented sample configuration to path.
// An existing file is left alone unless force is set.
func CreateSample(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Marshal renders the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
