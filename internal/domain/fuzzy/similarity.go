package fuzzy

import "github.com/corey/latebot/internal/ports"

// ScorerFunc adapts a plain function to ports.Scorer.
type ScorerFunc func(a, b Word) float64

// Score calls f(a, b).
func (f ScorerFunc) Score(a, b Word) float64 { return f(a, b) }

// Levenshtein is the default scorer: 1 - distance / max(len(a), len(b)),
// with lengths counted in runes. Two empty words score 1.0.
var Levenshtein ports.Scorer = ScorerFunc(Similarity)

// Similarity returns the normalized Levenshtein similarity of a and b.
func Similarity(a, b Word) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(distance(ra, rb))/float64(longest)
}

// Distance returns the Levenshtein edit distance between a and b in runes.
func Distance(a, b Word) int {
	return distance([]rune(a), []rune(b))
}

// distance fills the full (m+1) x (n+1) table. Row 0 and column 0 hold the
// insert/delete costs; an interior cell copies its diagonal when the runes
// are equal and is 1 + min(left, up, diagonal) otherwise.
func distance(a, b []rune) int {
	m, n := len(a), len(b)
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
		dp[i][0] = i
	}
	for j := 0; j <= n; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1]
				continue
			}
			dp[i][j] = 1 + min(dp[i-1][j], dp[i][j-1], dp[i-1][j-1])
		}
	}
	return dp[m][n]
}
