package fuzzy

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatcher_Bound(t *testing.T) {
	m, err := NewMatcher(cryingPhrases, DefaultConfig())
	require.NoError(t, err)

	assert.True(t, m.Matches("im crying"))
	assert.True(t, m.Matches("i am crying"))
	assert.False(t, m.Matches("crying am i"))
}

func TestMatcher_FindReturnsFirstMatchingPhrase(t *testing.T) {
	m, err := NewMatcher(cryingPhrases, DefaultConfig())
	require.NoError(t, err)

	p, ok := m.Find("well i am crying")
	require.True(t, ok)
	assert.Equal(t, Phrase{"i", "am", "crying"}, p)

	p, ok = m.Find("red books")
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestMatcher_CopiesPhrases(t *testing.T) {
	phrases := []Phrase{{"im", "crying"}}
	m, err := NewMatcher(phrases, DefaultConfig())
	require.NoError(t, err)

	phrases[0][0] = "zzz"
	assert.True(t, m.Matches("im crying"))

	out := m.Phrases()
	out[0][1] = "zzz"
	assert.True(t, m.Matches("im crying"))
}

func TestMatcher_ConfigFillsScorer(t *testing.T) {
	m, err := NewMatcher(cryingPhrases, Config{SimilarityThreshold: 0.8})
	require.NoError(t, err)
	assert.NotNil(t, m.Config().Scorer)
}

func TestMatcher_ConcurrentUse(t *testing.T) {
	m, err := NewMatcher(cryingPhrases, DefaultConfig())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if !m.Matches("im literally crying") || m.Matches("crying am i") {
					t.Error("unexpected result under concurrency")
					return
				}
			}
		}()
	}
	wg.Wait()
}

// =============================================================================
// Configuration errors are raised before any matching.
// =============================================================================

func TestNewMatcher_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		phrases []Phrase
		cfg     Config
		field   string
	}{
		{"threshold above one", cryingPhrases, Config{SimilarityThreshold: 1.1}, "similarity_threshold"},
		{"threshold below zero", cryingPhrases, Config{SimilarityThreshold: -0.1}, "similarity_threshold"},
		{"threshold NaN", cryingPhrases, Config{SimilarityThreshold: math.NaN()}, "similarity_threshold"},
		{"negative interrupt", cryingPhrases, Config{SimilarityThreshold: 0.8, InterruptThreshold: -1}, "interrupt_threshold"},
		{"no phrases", nil, DefaultConfig(), "phrases"},
		{"empty phrase", []Phrase{{"im"}, {}}, DefaultConfig(), "phrases[1]"},
		{"empty word", []Phrase{{"im", ""}}, DefaultConfig(), "phrases[0]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewMatcher(tc.phrases, tc.cfg)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, ErrInvalidConfig))

			var ce *ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.field, ce.Field)
		})
	}
}

func TestAnyMatch_RejectsBadConfig(t *testing.T) {
	ok, err := AnyMatch("im crying", cryingPhrases, Config{SimilarityThreshold: 2})
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_BoundariesAreValid(t *testing.T) {
	assert.NoError(t, Config{SimilarityThreshold: 0}.Validate())
	assert.NoError(t, Config{SimilarityThreshold: 1}.Validate())
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfigError_Message(t *testing.T) {
	err := &ConfigError{Field: "interrupt_threshold", Reason: "must not be negative, got -1"}
	assert.Equal(t, "interrupt_threshold: must not be negative, got -1", err.Error())
}
