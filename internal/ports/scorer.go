package ports

// Scorer rates how similar two normalized words are.
// Scores are in [0,1]; 1.0 means the words are interchangeable.
// Implementations must be safe for concurrent use and symmetric
// (Score(a, b) == Score(b, a)).
type Scorer interface {
	Score(a, b string) float64
}
