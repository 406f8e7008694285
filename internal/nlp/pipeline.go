// Package nlp wraps the linguistic toolkit the engine depends on: tokenization,
// part-of-speech tagging, named-entity recognition, noun-phrase chunking,
// sentence segmentation, and lemmatization.
package nlp

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	prose "github.com/jdkato/prose/v2"
)

// Token is one tokenized word with its Penn Treebank tag.
type Token struct {
	Text string
	Tag  string
}

// Entity is a named-entity span with its model label.
type Entity struct {
	Text  string
	Label string
}

// Doc is the parsed view of one text.
type Doc struct {
	Tokens      []Token
	Entities    []Entity
	NounPhrases []string
	Sentences   []string
}

// Pipeline is safe for concurrent use; the lemmatizer dictionary is read-only
// after construction and prose documents are per-call values.
type Pipeline struct {
	lem *golem.Lemmatizer
}

// New builds a Pipeline with the bundled English dictionary.
func New() (*Pipeline, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("op=nlp.New: %w", err)
	}
	return &Pipeline{lem: lem}, nil
}

// Lemma reduces a single lowercase word to its dictionary lemma. Words absent
// from the dictionary are returned unchanged.
func (p *Pipeline) Lemma(word string) string {
	if word == "" {
		return word
	}
	return p.lem.Lemma(word)
}

// Parse runs the full pipeline over text.
func (p *Pipeline) Parse(text string) (*Doc, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("op=nlp.Parse: %w", err)
	}
	d := &Doc{}
	for _, tok := range doc.Tokens() {
		d.Tokens = append(d.Tokens, Token{Text: tok.Text, Tag: tok.Tag})
	}
	for _, ent := range doc.Entities() {
		d.Entities = append(d.Entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	for _, sent := range doc.Sentences() {
		d.Sentences = append(d.Sentences, sent.Text)
	}
	d.NounPhrases = chunkNounPhrases(d.Tokens)
	return d, nil
}

// Sentences segments text without running the heavier tagging passes.
func (p *Pipeline) Sentences(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		return nil
	}
	out := make([]string, 0, 4)
	for _, s := range doc.Sentences() {
		out = append(out, s.Text)
	}
	return out
}

// chunk tags: tokens that may participate in a noun phrase. A phrase is a
// maximal run of these that ends with a noun tag.
func isChunkTag(tag string) bool {
	switch tag {
	case "DT", "PDT", "PRP$", "POS", "JJ", "JJR", "JJS", "CD":
		return true
	}
	return strings.HasPrefix(tag, "NN")
}

func isNounTag(tag string) bool { return strings.HasPrefix(tag, "NN") }

func chunkNounPhrases(tokens []Token) []string {
	var phrases []string
	var run []Token
	flush := func() {
		// trim non-noun tail so runs like "great and" never survive
		end := len(run)
		for end > 0 && !isNounTag(run[end-1].Tag) {
			end--
		}
		if end > 0 {
			words := make([]string, end)
			for i := 0; i < end; i++ {
				words[i] = run[i].Text
			}
			phrases = append(phrases, strings.Join(words, " "))
		}
		run = run[:0]
	}
	for _, tok := range tokens {
		if isChunkTag(tok.Tag) {
			// a fresh determiner after a noun starts a new phrase
			if tok.Tag == "DT" && len(run) > 0 {
				flush()
			}
			run = append(run, tok)
			continue
		}
		flush()
	}
	flush()
	return phrases
}
