package config

import (
	"errors"
	"fmt"

	"github.com/corey/latebot/internal/domain/fuzzy"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatch(); err != nil {
		return err
	}
	if err := c.validateBot(); err != nil {
		return err
	}
	return c.validateStore()
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case BackendBbolt, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("store.backend %q is not one of %s, %s", c.Store.Backend, BackendBbolt, BackendSQLite)
	}
}

func (c *Config) validateMatch() error {
	if err := c.fuzzyConfig().Validate(); err != nil {
		return fmt.Errorf("match.%w", err)
	}
	if _, err := ScorerByName(c.Match.Scorer); err != nil {
		return err
	}
	if len(c.Match.Phrases) == 0 {
		return errors.New("match.phrases must list at least one phrase")
	}
	for i, p := range c.Match.Phrases {
		if len(fuzzy.ParsePhrase(p)) == 0 {
			return fmt.Errorf("match.phrases[%d] %q has no words after removing punctuation", i, p)
		}
	}
	return nil
}

func (c *Config) validateBot() error {
	if c.Bot.Reply == "" {
		return errors.New("bot.reply must be set")
	}
	if c.Bot.CountReply == "" {
		return errors.New("bot.count_reply must be set")
	}
	return nil
}
