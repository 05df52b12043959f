// Package text holds the tokenizer and sentence splitter shared by the
// TF-IDF embedder and the summarizer.
package text

import (
	"regexp"
	"strings"
)

var (
	wordPattern     = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
	sentencePattern = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

// Tokens returns the lowercased word tokens of s, stopwords included.
func Tokens(s string) []string {
	return wordPattern.FindAllString(strings.ToLower(s), -1)
}

// ContentTokens returns the lowercased word tokens of s with stopwords removed.
func ContentTokens(s string) []string {
	raw := Tokens(s)
	out := raw[:0]
	for _, t := range raw {
		if IsStopword(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Sentences splits s into sentence-like segments ending in '.', '!' or '?'.
// Returns nil when s contains no such segment.
func Sentences(s string) []string {
	return sentencePattern.FindAllString(s, -1)
}

// IsStopword reports whether tok is a common English stopword.
func IsStopword(tok string) bool {
	_, ok := stopwords[tok]
	return ok
}

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
