package fuzzy

import "fmt"

// Phrase is an ordered, non-empty sequence of Words to detect.
type Phrase []Word

// String renders the phrase with single spaces.
func (p Phrase) String() string { return Join(p) }

// ParsePhrase tokenizes text into a Phrase. Empty words (tokens made only
// of punctuation) are dropped, so the result may be empty.
func ParsePhrase(text string) Phrase {
	words := Tokenize(text)
	phrase := make(Phrase, 0, len(words))
	for _, w := range words {
		if w != "" {
			phrase = append(phrase, w)
		}
	}
	return phrase
}

// validatePhrase rejects an empty phrase or one holding an empty word.
func validatePhrase(i int, p Phrase) error {
	if len(p) == 0 {
		return &ConfigError{Field: phraseField(i), Reason: "phrase is empty"}
	}
	for _, w := range p {
		if w == "" {
			return &ConfigError{Field: phraseField(i), Reason: "phrase contains an empty word"}
		}
	}
	return nil
}

func phraseField(i int) string {
	return fmt.Sprintf("phrases[%d]", i)
}

// MatchPhrase reports whether phrase occurs, in order, inside words.
//
// It is a greedy single pass. Each input word is compared with the next
// unmatched phrase word; a score >= cfg.SimilarityThreshold advances the
// phrase. When more than cfg.InterruptThreshold words pass since the last
// hit, the attempt restarts at the word after that hit, which is compared
// with the first phrase word again.
//
// phrase must be non-empty and cfg must be valid; Matcher and AnyMatch
// check both before calling.
func MatchPhrase(words []Word, phrase Phrase, cfg Config) bool {
	scorer := cfg.scorer()
	wordIdx := 0
	phraseIdx := 0
	lastHit := -1

	for wordIdx < len(words) {
		if scorer.Score(words[wordIdx], phrase[phraseIdx]) >= cfg.SimilarityThreshold {
			lastHit = wordIdx
			phraseIdx++
		}

		if lastHit > -1 && lastHit+cfg.InterruptThreshold < wordIdx {
			wordIdx = lastHit
			phraseIdx = 0
			lastHit = -1
		}

		if phraseIdx == len(phrase) {
			return true
		}

		wordIdx++
	}

	return false
}
