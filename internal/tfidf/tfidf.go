// Package tfidf scores document similarity with a term-frequency /
// inverse-document-frequency model over unigrams and bigrams.
package tfidf

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyVocabulary is returned when no terms survive tokenization and
// stop-word removal for one of the documents.
var ErrEmptyVocabulary = errors.New("tfidf: empty vocabulary")

var tokenRe = regexp.MustCompile(`\w+`)

// Vectorizer turns documents into l2-normalized tf-idf vectors. Terms are
// lowercase unigrams and bigrams built after stop-word removal; when the
// corpus holds more than MaxFeatures distinct terms, the most frequent ones
// are kept (ties broken alphabetically). The zero value is not usable;
// construct with NewVectorizer.
type Vectorizer struct {
	stop        map[string]struct{}
	maxFeatures int
}

func NewVectorizer(stopWords []string, maxFeatures int) *Vectorizer {
	stop := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &Vectorizer{stop: stop, maxFeatures: maxFeatures}
}

// Similarity fits the vectorizer on the two documents and returns the cosine
// similarity of their tf-idf vectors, in [0, 1] for non-negative weights.
func (v *Vectorizer) Similarity(a, b string) (float64, error) {
	ta := v.terms(a)
	tb := v.terms(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0, ErrEmptyVocabulary
	}

	vocab := v.buildVocabulary(ta, tb)
	va := vectorize(ta, vocab)
	vb := vectorize(tb, vocab)

	// smooth idf over the two-document corpus
	for _, idx := range vocab {
		df := 0
		if va[idx] > 0 {
			df++
		}
		if vb[idx] > 0 {
			df++
		}
		idf := math.Log(float64(1+2)/float64(1+df)) + 1
		va[idx] *= idf
		vb[idx] *= idf
	}
	l2Normalize(va)
	l2Normalize(vb)

	return dot(va, vb), nil
}

// terms tokenizes, filters stop words and emits unigrams plus bigrams.
func (v *Vectorizer) terms(doc string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(doc), -1)
	tokens := raw[:0]
	for _, t := range raw {
		if _, stop := v.stop[t]; !stop {
			tokens = append(tokens, t)
		}
	}
	out := make([]string, 0, 2*len(tokens))
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

func (v *Vectorizer) buildVocabulary(docs ...[]string) map[string]int {
	counts := map[string]int{}
	for _, d := range docs {
		for _, t := range d {
			counts[t]++
		}
	}
	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}
	if v.maxFeatures > 0 && len(terms) > v.maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if counts[terms[i]] != counts[terms[j]] {
				return counts[terms[i]] > counts[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.maxFeatures]
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		vocab[t] = i
	}
	return vocab
}

func vectorize(terms []string, vocab map[string]int) []float64 {
	vec := make([]float64, len(vocab))
	for _, t := range terms {
		if idx, ok := vocab[t]; ok {
			vec[idx]++
		}
	}
	return vec
}

func l2Normalize(vec []float64) {
	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
