// Package textclean normalizes free-text cells and splits them into tokens.
package textclean

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalization regexes compiled once at package init.
var (
	reLineBreaks = regexp.MustCompile(`[\r\n\t]+`)
	reWhitespace = regexp.MustCompile(`[\s\v\x{1c}-\x{1f}\p{Z}\x{85}]+`)
)

// IsSpace reports whether r separates words. It accepts the Unicode
// separators plus the ASCII file, group, record and unit separators.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.In(r, unicode.Z) || (r >= 0x1c && r <= 0x1f)
}

var lower = cases.Lower(language.Und)

// Clean replaces NUL bytes with spaces, collapses line breaks, tabs and
// whitespace runs into single spaces, and trims the result.
// Clean is idempotent and never fails.
func Clean(s string) string {
	s = strings.ReplaceAll(s, "\x00", " ")
	s = reLineBreaks.ReplaceAllString(s, " ")
	s = reWhitespace.ReplaceAllString(s, " ")
	return strings.TrimFunc(s, IsSpace)
}

// Tokenize cleans s, lowercases it and splits it on whitespace.
// Empty tokens are discarded.
func Tokenize(s string) []string {
	return strings.FieldsFunc(lower.String(Clean(s)), IsSpace)
}
