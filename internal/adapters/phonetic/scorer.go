// Package phonetic provides alternative word scorers built on
// github.com/antzucaro/matchr: plain Jaro-Winkler similarity, and a
// Double Metaphone variant that boosts words which sound alike
// ("smith" / "smyth", "late" / "layte").
//
// Both implement ports.Scorer and can replace the default Levenshtein
// scorer without touching the phrase engine.
package phonetic

import (
	"math"

	"github.com/antzucaro/matchr"
)

// JaroWinkler scores words with Jaro-Winkler similarity.
type JaroWinkler struct {
	// LongTolerance enables matchr's adjustment for long strings.
	LongTolerance bool
}

// Score returns the Jaro-Winkler similarity of a and b in [0,1].
// Two empty words score 1.0, one empty word scores 0.
func (s JaroWinkler) Score(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return emptyScore(a, b)
	}
	a, b = ordered(a, b)
	return clamp(matchr.JaroWinkler(a, b, s.LongTolerance))
}

// Metaphone scores words by sound first and spelling second. When the Double
// Metaphone codes of a and b overlap, the Jaro-Winkler score is pulled
// halfway towards 1.0; otherwise it is returned unchanged.
type Metaphone struct {
	JaroWinkler
}

// Score returns the sound-weighted similarity of a and b in [0,1].
func (s Metaphone) Score(a, b string) float64 {
	if a == "" || b == "" {
		return emptyScore(a, b)
	}
	jw := s.JaroWinkler.Score(a, b)
	if SoundAlike(a, b) {
		return (1 + jw) / 2
	}
	return jw
}

// SoundAlike reports whether any Double Metaphone code of a equals any code
// of b. Words without a code never sound alike.
func SoundAlike(a, b string) bool {
	ap, as := matchr.DoubleMetaphone(a)
	bp, bs := matchr.DoubleMetaphone(b)
	for _, x := range []string{ap, as} {
		if x == "" {
			continue
		}
		if x == bp || x == bs {
			return true
		}
	}
	return false
}

func emptyScore(a, b string) float64 {
	if a == b {
		return 1.0
	}
	return 0
}

// ordered sorts the pair so Score is symmetric even if the underlying
// similarity is not.
func ordered(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
