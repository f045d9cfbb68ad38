package config

import "github.com/corey/latebot/internal/domain/fuzzy"

// Counter store backends accepted in store.backend.
const (
	BackendBbolt  = "bbolt"
	BackendSQLite = "sqlite"
)

const (
	defaultScorer     = ScorerLevenshtein
	defaultBackend    = BackendBbolt
	defaultReply      = "bro fr?? you gonna be late again?! You've been late {count} times."
	defaultCountReply = "This user {user} has been late {count} times"
	defaultPrefix     = "!"
)

var defaultPhrases = []string{
	"I'll be late",
	"im gonna be late",
	"running late",
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Match: Match{
			SimilarityThreshold: fuzzy.DefaultSimilarityThreshold,
			InterruptThreshold:  fuzzy.DefaultInterruptThreshold,
			Scorer:              defaultScorer,
			Phrases:             append([]string(nil), defaultPhrases...),
		},
		Bot: Bot{
			Reply:         defaultReply,
			CountReply:    defaultCountReply,
			CommandPrefix: defaultPrefix,
		},
		Store: Store{Backend: defaultBackend},
	}
}
