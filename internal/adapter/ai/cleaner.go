package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Cleaner strips the markdown scaffolding that chat models wrap around JSON
// payloads and extracts the first complete object or array.
type Cleaner struct{}

func NewCleaner() *Cleaner { return &Cleaner{} }

var trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

// CleanJSON returns the embedded JSON document from a model response, or an
// empty string when none can be recovered.
func (c *Cleaner) CleanJSON(response string) string {
	s := stripFences(response)
	s = extractDocument(s)
	if s == "" {
		return ""
	}
	if json.Valid([]byte(s)) {
		return s
	}
	// trailing commas before } or ] are the common failure mode
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	if json.Valid([]byte(s)) {
		return s
	}
	return ""
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
	} else if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// extractDocument finds the first balanced {...} or [...] in s.
func extractDocument(s string) string {
	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')
	start, open, closing := objStart, byte('{'), byte('}')
	if objStart == -1 || (arrStart != -1 && arrStart < objStart) {
		start, open, closing = arrStart, '[', ']'
	}
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
