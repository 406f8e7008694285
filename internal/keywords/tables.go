// Package keywords implements skill normalization and keyword candidate
// extraction over free-form resume and job description text.
package keywords

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var tablesYAML []byte

type synonym struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// tables holds the fixed vocabulary the engine is configured with. Synonym
// order is significant and preserved from the YAML document.
type tables struct {
	Synonyms       []synonym `yaml:"synonyms"`
	StopWords      []string  `yaml:"stop_words"`
	PhraseStoplist []string  `yaml:"phrase_stoplist"`
	StopAcronyms   []string  `yaml:"stop_acronyms"`
	FunctionWords  []string  `yaml:"function_words"`
}

func loadTables() (*tables, error) {
	var t tables
	if err := yaml.Unmarshal(tablesYAML, &t); err != nil {
		return nil, fmt.Errorf("keywords: parse tables: %w", err)
	}
	if len(t.Synonyms) == 0 || len(t.StopWords) == 0 {
		return nil, fmt.Errorf("keywords: tables incomplete")
	}
	return &t, nil
}

func toSet(words []string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}
