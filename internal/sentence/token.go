package sentence

import (
	"regexp"
	"strings"
)

var (
	tokenPattern = regexp.MustCompile(`[A-Za-z]+(?:'[A-Za-z]+)?|[.,?!]`)
	wordPattern  = regexp.MustCompile(`^[A-Za-z]+(?:'[A-Za-z]+)?$`)
)

// Tokenize splits text into word tokens (letters with an optional internal
// apostrophe) and single punctuation tokens. Everything else is a separator.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// IsWord reports whether a token is a word rather than punctuation.
func IsWord(token string) bool {
	return wordPattern.MatchString(token)
}

// Normalize lowercases, tokenizes, and rejoins with single spaces. All
// equality comparisons (answer matching, dedup keys) go through this.
func Normalize(text string) string {
	return strings.Join(Tokenize(strings.ToLower(text)), " ")
}
