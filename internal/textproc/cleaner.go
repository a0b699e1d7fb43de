package textproc

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// "docu-\nment" style line-wrap hyphenation; rejoined before newlines
	// are collapsed away.
	hyphenWrapRe = regexp.MustCompile(`(\p{L})-[ \t]*\r?\n[ \t]*(\p{L})`)

	// Standalone page-number artifacts left by extraction.
	pageNumberRe = regexp.MustCompile(`\bPage \d+\b`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Curly quote replacements for speech-friendly ASCII equivalents.
var quoteReplacer = strings.NewReplacer(
	"“", `"`, // left double
	"”", `"`, // right double
	"‘", "'", // left single
	"’", "'", // right single
)

// Clean normalizes extracted PDF text for synthesis: rejoins hyphenated
// line-wrapped words, strips page-number artifacts and control characters,
// normalizes curly quotes, and collapses all whitespace runs to single
// spaces. Empty input yields empty output. Cleaning already-clean text is a
// no-op.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = hyphenWrapRe.ReplaceAllString(text, "$1$2")
	text = quoteReplacer.Replace(text)
	text = pageNumberRe.ReplaceAllString(text, " ")
	text = stripNonSpeakable(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// stripNonSpeakable replaces control and invisible-format characters with
// spaces. Newlines are kept here so later rules still see line structure;
// the final whitespace collapse removes them.
func stripNonSpeakable(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if unicode.IsControl(r) || unicode.In(r, unicode.Cf) || r == '�' {
			return ' '
		}
		return r
	}, text)
}
