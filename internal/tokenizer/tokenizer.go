// Package tokenizer turns raw document text into the normalised terms the
// index is keyed by. It lower-cases input and extracts maximal runs of
// word characters; everything else separates tokens.
package tokenizer

import (
	"strings"
	"unicode"
)

// Tokenize splits text into lowercased word tokens. A token is a maximal
// run of Unicode letters, digits, and underscore. A token's position in the
// returned slice is its offset for positional indexing. Tokenize never
// fails: text with no word characters yields an empty sequence.
//
// Build-time and query-time tokenization must agree for any term to match,
// so both paths call this one function.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
