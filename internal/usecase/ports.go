// Package usecase implements the application services: session state,
// analysis scoring, and generator-backed artifacts.
package usecase

// KeywordEngine normalizes skills and extracts keyword candidates.
type KeywordEngine interface {
	Normalize(skill string) string
	Extract(text string, max int) []string
	StopWords() []string
}

// SentenceSplitter yields the sentences of a document in order.
type SentenceSplitter interface {
	Sentences(text string) []string
}

// ResponseCleaner recovers a JSON document from a raw model response,
// returning "" when none can be found.
type ResponseCleaner interface {
	CleanJSON(response string) string
}
