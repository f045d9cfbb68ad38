package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corey/latebot/internal/adapters/phonetic"
	"github.com/corey/latebot/internal/domain/fuzzy"
	"github.com/corey/latebot/internal/ports"
)

// Scorer names accepted in match.scorer.
const (
	ScorerLevenshtein = "levenshtein"
	ScorerJaroWinkler = "jaro-winkler"
	ScorerMetaphone   = "metaphone"
)

// ScorerNames lists the accepted match.scorer values.
var ScorerNames = []string{ScorerLevenshtein, ScorerJaroWinkler, ScorerMetaphone}

// ScorerByName resolves a match.scorer value.
func ScorerByName(name string) (ports.Scorer, error) {
	switch name {
	case ScorerLevenshtein, "":
		return fuzzy.Levenshtein, nil
	case ScorerJaroWinkler:
		return phonetic.JaroWinkler{}, nil
	case ScorerMetaphone:
		return phonetic.Metaphone{}, nil
	default:
		return nil, fmt.Errorf("match.scorer %q is not one of %s", name, strings.Join(ScorerNames, ", "))
	}
}

func (c *Config) fuzzyConfig() fuzzy.Config {
	return fuzzy.Config{
		SimilarityThreshold: c.Match.SimilarityThreshold,
		InterruptThreshold:  c.Match.InterruptThreshold,
	}
}

// Phrases parses match.phrases.
func (c *Config) Phrases() []fuzzy.Phrase {
	out := make([]fuzzy.Phrase, 0, len(c.Match.Phrases))
	for _, p := range c.Match.Phrases {
		out = append(out, fuzzy.ParsePhrase(p))
	}
	return out
}

// Matcher builds the phrase matcher described by the [match] section.
func (c *Config) Matcher() (*fuzzy.Matcher, error) {
	scorer, err := ScorerByName(c.Match.Scorer)
	if err != nil {
		return nil, err
	}
	fc := c.fuzzyConfig()
	fc.Scorer = scorer
	return fuzzy.NewMatcher(c.Phrases(), fc)
}

// RenderReply fills {user} and {count} in a reply template.
func RenderReply(template, user string, count uint64) string {
	return strings.NewReplacer(
		"{user}", user,
		"{count}", strconv.FormatUint(count, 10),
	).Replace(template)
}
