package phonetic

import (
	"testing"

	"github.com/corey/latebot/internal/domain/fuzzy"
	"github.com/corey/latebot/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.Scorer = JaroWinkler{}
	_ ports.Scorer = Metaphone{}
)

func TestJaroWinkler_Identity(t *testing.T) {
	s := JaroWinkler{}
	for _, w := range []string{"late", "crying", "a", ""} {
		assert.Equal(t, 1.0, s.Score(w, w), "word %q", w)
	}
}

func TestJaroWinkler_EmptyWord(t *testing.T) {
	assert.Equal(t, 0.0, JaroWinkler{}.Score("", "late"))
	assert.Equal(t, 0.0, JaroWinkler{}.Score("late", ""))
}

func TestJaroWinkler_SharedPrefixScoresHigh(t *testing.T) {
	s := JaroWinkler{}
	assert.Greater(t, s.Score("crying", "cryjing"), 0.9)
	assert.Less(t, s.Score("crying", "books"), 0.6)
}

func TestScorers_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"crying", "cryjing"},
		{"late", "layte"},
		{"smith", "smyth"},
		{"abc", "xyz"},
	}
	for _, s := range []ports.Scorer{JaroWinkler{}, Metaphone{}} {
		for _, p := range pairs {
			assert.Equal(t, s.Score(p[0], p[1]), s.Score(p[1], p[0]), "%T %v", s, p)
		}
	}
}

func TestScorers_Range(t *testing.T) {
	words := []string{"", "a", "late", "lait", "crying", "smith", "xyzzy"}
	for _, s := range []ports.Scorer{JaroWinkler{}, Metaphone{}} {
		for _, a := range words {
			for _, b := range words {
				v := s.Score(a, b)
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		}
	}
}

func TestSoundAlike(t *testing.T) {
	assert.True(t, SoundAlike("smith", "smyth"))
	assert.False(t, SoundAlike("late", "crying"))
}

func TestMetaphone_BoostsSoundAlikes(t *testing.T) {
	jw := JaroWinkler{}.Score("smith", "smyth")
	mp := Metaphone{}.Score("smith", "smyth")
	assert.Greater(t, mp, jw)

	assert.Equal(t, JaroWinkler{}.Score("late", "crying"), Metaphone{}.Score("late", "crying"))
}

func TestMetaphone_DrivesPhraseEngine(t *testing.T) {
	cfg := fuzzy.Config{SimilarityThreshold: 0.9, InterruptThreshold: 1, Scorer: Metaphone{}}
	m, err := fuzzy.NewMatcher([]fuzzy.Phrase{{"mr", "smith"}}, cfg)
	require.NoError(t, err)

	assert.True(t, m.Matches("hello mr smyth"))
	assert.False(t, m.Matches("hello mr jones"))
}
