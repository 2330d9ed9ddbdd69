package extract

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	percentRe    = regexp.MustCompile(`(?i)\bper\s?cent\b`)
)

var symbolReplacer = strings.NewReplacer(
	"US$", "USD",
	"$US", "USD",
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
)

// Preprocess normalizes raw document text before pattern matching. It is pure
// and total: any input string yields a string, possibly empty.
//
// In order: collapse whitespace runs to single spaces, fix two narrowly
// scoped OCR confusions (a standalone "0" is the letter O, a standalone "l"
// is the letter I; only single-character tokens are touched so numbers are
// never corrupted), normalize "US$"/"$US" to "USD", normalize "per cent" and
// "percent" to "%", straighten curly quotes, trim.
func Preprocess(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")

	tokens := strings.Split(text, " ")
	for i, tok := range tokens {
		switch tok {
		case "0":
			tokens[i] = "O"
		case "l":
			tokens[i] = "I"
		}
	}
	text = strings.Join(tokens, " ")

	text = symbolReplacer.Replace(text)
	text = percentRe.ReplaceAllString(text, "%")

	return strings.TrimSpace(text)
}
