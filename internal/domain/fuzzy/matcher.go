package fuzzy

// AnyMatch tokenizes text once and reports whether any phrase matches it.
// Phrases are tried in order and the first match wins. The configuration and
// phrases are validated first; an invalid one returns a *ConfigError.
func AnyMatch(text string, phrases []Phrase, cfg Config) (bool, error) {
	m, err := NewMatcher(phrases, cfg)
	if err != nil {
		return false, err
	}
	return m.Matches(text), nil
}

// Matcher binds a validated phrase set and configuration for reuse across
// many inputs.
type Matcher struct {
	phrases []Phrase
	cfg     Config
}

// NewMatcher validates cfg and phrases and returns a Matcher.
// At least one phrase is required.
func NewMatcher(phrases []Phrase, cfg Config) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(phrases) == 0 {
		return nil, &ConfigError{Field: "phrases", Reason: "at least one phrase is required"}
	}

	owned := make([]Phrase, len(phrases))
	for i, p := range phrases {
		if err := validatePhrase(i, p); err != nil {
			return nil, err
		}
		owned[i] = append(Phrase(nil), p...)
	}

	cfg.Scorer = cfg.scorer()
	return &Matcher{phrases: owned, cfg: cfg}, nil
}

// Matches reports whether text contains a near-match of any phrase.
func (m *Matcher) Matches(text string) bool {
	_, ok := m.Find(text)
	return ok
}

// Find returns the first phrase that matches text.
func (m *Matcher) Find(text string) (Phrase, bool) {
	words := Tokenize(text)
	for _, p := range m.phrases {
		if MatchPhrase(words, p, m.cfg) {
			return p, true
		}
	}
	return nil, false
}

// Phrases returns a copy of the bound phrases.
func (m *Matcher) Phrases() []Phrase {
	out := make([]Phrase, len(m.phrases))
	for i, p := range m.phrases {
		out[i] = append(Phrase(nil), p...)
	}
	return out
}

// Config returns the bound configuration. Its Scorer is never nil.
func (m *Matcher) Config() Config {
	return m.cfg
}
