// Package fuzzy decides whether free-form text contains a near-match of a
// target phrase. Words are compared with a pluggable similarity score, and a
// bounded number of extra words may sit between two matched phrase words.
//
// Everything here is pure: no I/O, no shared state. A Matcher is read-only
// after construction and safe for concurrent use.
package fuzzy

import "strings"

// Word is a normalized token: lowercase, ASCII punctuation removed.
// A token made only of punctuation normalizes to the empty Word.
type Word = string

// punctuation is the ASCII punctuation set stripped from every token.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Tokenize splits text on whitespace and normalizes each token.
// Rules:
//  1. Split on Unicode whitespace
//  2. Drop every ASCII punctuation character
//  3. Lowercase
//
// Tokens that were entirely punctuation become empty Words and keep their
// position, so "i'm - late" yields ["im", "", "late"].
func Tokenize(text string) []Word {
	fields := strings.Fields(text)
	words := make([]Word, len(fields))
	for i, f := range fields {
		words[i] = normalize(f)
	}
	return words
}

// Join renders words back into text, separated by single spaces.
// Tokenize(Join(words)) == words for any words without empty entries.
func Join(words []Word) string {
	return strings.Join(words, " ")
}

func normalize(token string) Word {
	var b strings.Builder
	b.Grow(len(token))
	for _, r := range token {
		if r < 0x80 && strings.ContainsRune(punctuation, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
