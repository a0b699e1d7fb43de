package textproc

import (
	"strings"
	"unicode"
)

// Sentence-ending runes used as preferred chunk boundaries. Includes CJK
// full-width punctuation for languages like zh-CN and ja.
var sentenceBoundaries = map[rune]bool{
	'.': true, '!': true, '?': true, ';': true, '\n': true,
	'。': true, '！': true, '？': true, '；': true,
}

// Split divides text into chunks of at most maxChars runes each, preserving
// order. Boundaries are chosen at the last sentence end inside the window,
// falling back to the last word break, then to a hard cut for unbroken runs.
// Chunks are trimmed; empty chunks are dropped.
func Split(text string, maxChars int) []string {
	text = strings.TrimSpace(text)
	if text == "" || maxChars <= 0 {
		return nil
	}

	var chunks []string
	runes := []rune(text)

	for len(runes) > 0 {
		if len(runes) <= maxChars {
			if chunk := strings.TrimSpace(string(runes)); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		window := runes[:maxChars]
		split := lastBoundary(window)
		if split <= 0 {
			split = lastSpace(window)
		}
		if split <= 0 {
			split = maxChars
		}

		if chunk := strings.TrimSpace(string(runes[:split])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		runes = []rune(strings.TrimSpace(string(runes[split:])))
	}

	return chunks
}

// lastBoundary returns the index just after the last sentence boundary in
// window, or -1 if there is none.
func lastBoundary(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if sentenceBoundaries[window[i]] {
			return i + 1
		}
	}
	return -1
}

// lastSpace returns the index just after the last whitespace rune in window,
// or -1 if there is none.
func lastSpace(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if unicode.IsSpace(window[i]) {
			return i + 1
		}
	}
	return -1
}
