// Package textx provides small text utilities used across the project.
package textx

import (
	"strings"
	"unicode"
)

// SanitizeText removes control characters except tab/newline/CR and trims spaces.
func SanitizeText(s string) string {
	// strip control chars outside tab/newline/carriage return
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// CleanDocumentText prepares extracted document text for analysis: drops
// Unicode private-use glyphs (common PDF bullet artifacts), collapses all
// whitespace runs to single spaces, and trims. Returns "" for blank input.
func CleanDocumentText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0xE000 && r <= 0xF8FF {
			continue
		}
		b.WriteRune(r)
	}
	return CollapseSpaces(b.String())
}

// CollapseSpaces replaces every whitespace run with a single space and trims.
func CollapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int { return len(strings.Fields(s)) }
