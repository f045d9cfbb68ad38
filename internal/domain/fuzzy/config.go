package fuzzy

import (
	"errors"
	"fmt"
	"math"

	"github.com/corey/latebot/internal/ports"
)

// Defaults used when a Config is built with DefaultConfig.
const (
	DefaultSimilarityThreshold = 0.8
	DefaultInterruptThreshold  = 1
)

// ErrInvalidConfig is matched by every *ConfigError via errors.Is.
var ErrInvalidConfig = errors.New("invalid match configuration")

// ConfigError reports a configuration rejected before matching began.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Config controls how near a match has to be.
//
// SimilarityThreshold is the minimum Scorer result for an input word to count
// as a phrase word; a score exactly at the threshold matches.
// InterruptThreshold is how many consecutive non-matching input words may
// separate two matched phrase words before the attempt is abandoned.
// A nil Scorer means Levenshtein.
type Config struct {
	SimilarityThreshold float64
	InterruptThreshold  int
	Scorer              ports.Scorer
}

// DefaultConfig returns threshold 0.8, interrupt 1, Levenshtein scoring.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: DefaultSimilarityThreshold,
		InterruptThreshold:  DefaultInterruptThreshold,
		Scorer:              Levenshtein,
	}
}

// Validate checks the thresholds.
func (c Config) Validate() error {
	if math.IsNaN(c.SimilarityThreshold) || c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return &ConfigError{
			Field:  "similarity_threshold",
			Reason: fmt.Sprintf("must be between 0 and 1, got %v", c.SimilarityThreshold),
		}
	}
	if c.InterruptThreshold < 0 {
		return &ConfigError{
			Field:  "interrupt_threshold",
			Reason: fmt.Sprintf("must not be negative, got %d", c.InterruptThreshold),
		}
	}
	return nil
}

func (c Config) scorer() ports.Scorer {
	if c.Scorer == nil {
		return Levenshtein
	}
	return c.Scorer
}
