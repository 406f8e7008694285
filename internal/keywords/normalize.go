package keywords

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sarensabesk/HireAI/internal/nlp"
)

// Engine normalizes individual skill strings and extracts keyword candidates
// from documents. It is safe for concurrent use once constructed.
type Engine struct {
	nlp *nlp.Pipeline
	tab *tables

	stopWords     map[string]struct{}
	phraseStop    map[string]struct{}
	stopAcronyms  map[string]struct{}
	functionWords map[string]struct{}
}

// NewEngine builds an Engine from the embedded tables.
func NewEngine(p *nlp.Pipeline) (*Engine, error) {
	tab, err := loadTables()
	if err != nil {
		return nil, err
	}
	return &Engine{
		nlp:           p,
		tab:           tab,
		stopWords:     toSet(tab.StopWords),
		phraseStop:    toSet(tab.PhraseStoplist),
		stopAcronyms:  toSet(tab.StopAcronyms),
		functionWords: toSet(tab.FunctionWords),
	}, nil
}

// StopWords returns the engine's stop-word list for reuse by other stages.
func (e *Engine) StopWords() []string {
	out := make([]string, len(e.tab.StopWords))
	copy(out, e.tab.StopWords)
	return out
}

var extSuffixRe = regexp.MustCompile(`\.(js|py|tsx|jsx|ts)$`)

const trimPunct = `.,;:!?'"()[]{}`

// Normalize maps a raw skill string to its canonical lowercase form:
// extension suffixes are stripped, synonyms folded in table order, stop words
// dropped and the remaining tokens lemmatized. Tokens written fully in
// uppercase in the input are treated as acronyms and kept as-is (lowercased
// but not lemmatized), so "AWS" never collapses into a dictionary lemma.
// Normalize(x) is a fixed point: Normalize(Normalize(x)) == Normalize(x).
func (e *Engine) Normalize(skill string) string {
	lower := strings.ToLower(strings.TrimSpace(skill))
	lower = extSuffixRe.ReplaceAllString(lower, "")
	for _, syn := range e.tab.Synonyms {
		lower = strings.ReplaceAll(lower, syn.From, syn.To)
	}

	protected := acronymForms(skill)

	var out []string
	for _, tok := range strings.Fields(lower) {
		tok = strings.Trim(tok, trimPunct)
		if tok == "" || !hasLetterOrDigit(tok) {
			continue
		}
		if _, stop := e.stopWords[tok]; stop {
			continue
		}
		if _, ok := protected[tok]; ok {
			out = append(out, tok)
			continue
		}
		out = append(out, e.nlp.Lemma(tok))
	}
	if len(out) == 0 {
		return lower
	}
	return strings.Join(out, " ")
}

// acronymForms collects the lowercase forms of words that appear fully
// uppercase in the raw input. Single letters do not count.
func acronymForms(raw string) map[string]struct{} {
	forms := map[string]struct{}{}
	for _, w := range strings.Fields(raw) {
		w = strings.Trim(w, trimPunct)
		if len(w) < 2 || !hasUpper(w) {
			continue
		}
		if w == strings.ToUpper(w) {
			forms[strings.ToLower(w)] = struct{}{}
		}
	}
	return forms
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
