package keywords

import (
	"regexp"
	"strings"
	"unicode"
)

// parseWindow caps how much text the linguistic rules (entities and noun
// phrases) look at. The pattern rules always scan the full document.
const parseWindow = 5000

// Entity labels accepted as keyword candidates.
var entityLabels = map[string]struct{}{
	"ORG":         {},
	"PRODUCT":     {},
	"GPE":         {},
	"WORK_OF_ART": {},
	"LAW":         {},
	"EVENT":       {},
	"FAC":         {},
}

var (
	// "5+ years of experience", "3 yrs exp"
	experienceRe = regexp.MustCompile(`(?i)\b\d+\+?\s*(?:years?|yrs?)\s+(?:of\s+)?(?:experience|exp)\b`)

	// "AWS certified", "PMP certification"
	certAcronymRe = regexp.MustCompile(`\b([A-Z]{2,}(?:\s+[A-Z]{2,})?)\s+(?i:certified|certification|certificate)\b`)

	// "certified Kubernetes", captures the word after the qualifier
	certNameRe = regexp.MustCompile(`(?i)\b(?:certified|certification)\s+(?:in\s+)?([A-Za-z][\w+#.\-]*)`)

	// "Terraform tool", "Salesforce platform"
	toolRe = regexp.MustCompile(`(?i)\b([A-Za-z][A-Za-z0-9+#.\-]{2,})\s+(?:software|tool|platform|suite|system)\b`)

	// "proficient in Python", "experienced with React and Node"
	proficiencyRe = regexp.MustCompile(`(?i)\b(?:proficient|proficiency|experienced?|skilled|expertise|expert|knowledge)\s+(?:in|with|of|at)\s+([A-Za-z][A-Za-z0-9 +#.\-]*?)(?:\.|,|;|\n| and |$)`)

	// "JSON format", "HTTP protocol"
	formatRe = regexp.MustCompile(`\b([A-Z]{3,5})\s+(?i:format|file|standard|protocol)\b`)

	// "Bachelor's degree in Computer Science", "MS in Data Science"
	degreeRe = regexp.MustCompile(`(?i)\b(associate'?s?|bachelor'?s?|master'?s?|phd|doctorate|b\.?s\.?c?|m\.?s\.?c?|b\.?a\.?|m\.?a\.?|m\.?b\.?a\.?|b\.?tech|m\.?tech)\s*(?:degree\s*)?(?:in\s+)([A-Za-z][A-Za-z ]*?)(?:\.|,|;|\n| or | and |$)`)

	// "Machine Learning", "Product Management Office" (2-4 capitalized words)
	capPhraseRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3})\b`)

	// standalone acronyms
	acronymRe = regexp.MustCompile(`\b([A-Z]{2,6})\b`)

	// cleanup keeps word chars, whitespace and + # . -
	cleanupRe    = regexp.MustCompile(`[^\w\s+#.\-]`)
	multiSpaceRe = regexp.MustCompile(`\s+`)
)

// Extract pulls keyword candidates out of a document and returns them in
// first-seen order, capped at max (a non-positive max means no cap). Each
// candidate is cleaned of stray punctuation and filtered against length,
// numeric-only and function-word checks. Duplicates after cleanup keep their
// earliest position.
func (e *Engine) Extract(text string, max int) []string {
	acc := newOrderedSet()

	window := text
	if r := []rune(window); len(r) > parseWindow {
		window = string(r[:parseWindow])
	}
	if doc, err := e.nlp.Parse(window); err == nil {
		for _, ent := range doc.Entities {
			if _, ok := entityLabels[ent.Label]; !ok {
				continue
			}
			if s := strings.TrimSpace(ent.Text); len(s) > 2 {
				acc.add(s)
			}
		}
		for _, np := range doc.NounPhrases {
			np = strings.TrimSpace(np)
			words := len(strings.Fields(np))
			if words < 1 || words > 4 || len(np) <= 2 {
				continue
			}
			if _, stop := e.phraseStop[strings.ToLower(np)]; stop {
				continue
			}
			acc.add(np)
		}
	}

	for _, m := range experienceRe.FindAllString(text, -1) {
		acc.add(strings.TrimSpace(m))
	}
	addGroup(acc, certAcronymRe.FindAllStringSubmatch(text, -1))
	addGroup(acc, certNameRe.FindAllStringSubmatch(text, -1))
	addGroup(acc, toolRe.FindAllStringSubmatch(text, -1))
	addGroup(acc, proficiencyRe.FindAllStringSubmatch(text, -1))
	addGroup(acc, formatRe.FindAllStringSubmatch(text, -1))

	for _, m := range degreeRe.FindAllStringSubmatch(text, -1) {
		degree := strings.TrimSpace(m[1] + " " + m[2])
		if len(degree) > 3 {
			acc.add(degree)
		}
	}
	for _, m := range capPhraseRe.FindAllStringSubmatch(text, -1) {
		phrase := strings.TrimSpace(m[1])
		if len(phrase) <= 5 {
			continue
		}
		if _, stop := e.phraseStop[strings.ToLower(phrase)]; stop {
			continue
		}
		acc.add(phrase)
	}
	for _, m := range acronymRe.FindAllStringSubmatch(text, -1) {
		if _, stop := e.stopAcronyms[m[1]]; stop {
			continue
		}
		acc.add(m[1])
	}

	return e.finalize(acc.items, max)
}

func addGroup(acc *orderedSet, matches [][]string) {
	for _, m := range matches {
		if s := strings.TrimSpace(m[1]); len(s) > 2 {
			acc.add(s)
		}
	}
}

// finalize cleans each candidate and applies the shared filters, deduping
// again on the cleaned form.
func (e *Engine) finalize(candidates []string, max int) []string {
	out := make([]string, 0, len(candidates))
	seen := map[string]struct{}{}
	for _, kw := range candidates {
		cleaned := cleanupRe.ReplaceAllString(kw, " ")
		cleaned = strings.TrimSpace(multiSpaceRe.ReplaceAllString(cleaned, " "))
		if len(cleaned) <= 2 || numericOnly(cleaned) {
			continue
		}
		if _, fn := e.functionWords[strings.ToLower(cleaned)]; fn {
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

func numericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// orderedSet is an insertion-ordered string set; the first occurrence wins.
type orderedSet struct {
	items []string
	index map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: map[string]struct{}{}}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.index[v]; ok {
		return
	}
	s.index[v] = struct{}{}
	s.items = append(s.items, v)
}
