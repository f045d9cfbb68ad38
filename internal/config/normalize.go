package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment overrides, applied after the file is read.
const (
	EnvSimilarityThreshold = "LATEBOT_SIMILARITY_THRESHOLD"
	EnvInterruptThreshold  = "LATEBOT_INTERRUPT_THRESHOLD"
	EnvScorer              = "LATEBOT_SCORER"
	EnvStoreBackend        = "LATEBOT_STORE"
)

func (c *Config) normalize() error {
	if err := c.applyEnv(); err != nil {
		return err
	}

	c.Match.Scorer = strings.ToLower(strings.TrimSpace(c.Match.Scorer))
	if c.Match.Scorer == "" {
		c.Match.Scorer = defaultScorer
	}

	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if c.Store.Backend == "" {
		c.Store.Backend = defaultBackend
	}

	phrases := c.Match.Phrases[:0]
	for _, p := range c.Match.Phrases {
		if p = strings.TrimSpace(p); p != "" {
			phrases = append(phrases, p)
		}
	}
	c.Match.Phrases = phrases

	if strings.TrimSpace(c.Bot.Reply) == "" {
		c.Bot.Reply = defaultReply
	}
	if strings.TrimSpace(c.Bot.CountReply) == "" {
		c.Bot.CountReply = defaultCountReply
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvSimilarityThreshold)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSimilarityThreshold, err)
		}
		c.Match.SimilarityThreshold = f
	}
	if v := strings.TrimSpace(os.Getenv(EnvInterruptThreshold)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvInterruptThreshold, err)
		}
		c.Match.InterruptThreshold = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvScorer)); v != "" {
		c.Match.Scorer = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStoreBackend)); v != "" {
		c.Store.Backend = v
	}
	return nil
}
