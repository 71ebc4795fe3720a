package recommendations

import (
	"math"
	"regexp"
	"strings"
)

// Course ranking scores the overlap of term names, not their weights, so
// it runs on TF-IDF vectors of the whitespace-joined term text instead
// of the numeric weight maps.

var tfidfTokenPattern = regexp.MustCompile(`\w\w+`)

// tfidfTokenize lowercases the text and keeps tokens of two or more
// word characters, matching the vectorizer the ranking was tuned on.
func tfidfTokenize(text string) []string {
	return tfidfTokenPattern.FindAllString(strings.ToLower(text), -1)
}

// tfidfVectorizer is fitted once per request on the candidate corpus and
// then transforms both the student text and each course text with the
// same vocabulary and document frequencies.
type tfidfVectorizer struct {
	docFrequencies map[string]int
	totalDocuments int
}

func newTfidfVectorizer() *tfidfVectorizer {
	return &tfidfVectorizer{docFrequencies: make(map[string]int)}
}

// Fit records document frequencies for every term in the corpus.
func (v *tfidfVectorizer) Fit(documents []string) {
	v.totalDocuments = len(documents)
	for _, doc := range documents {
		seen := make(map[string]bool)
		for _, token := range tfidfTokenize(doc) {
			if !seen[token] {
				seen[token] = true
				v.docFrequencies[token]++
			}
		}
	}
}

// idf uses the smoothed formulation ln((1+n)/(1+df)) + 1, so terms
// outside the fitted vocabulary still get a finite weight of ln(1+n)+1
// but are dropped by Transform anyway.
func (v *tfidfVectorizer) idf(term string) float64 {
	df := v.docFrequencies[term]
	return math.Log(float64(1+v.totalDocuments)/float64(1+df)) + 1
}

// Transform maps a document to its l2-normalized TF-IDF vector over the
// fitted vocabulary. Terms never seen during Fit are ignored.
func (v *tfidfVectorizer) Transform(document string) map[string]float64 {
	counts := make(map[string]int)
	for _, token := range tfidfTokenize(document) {
		if _, ok := v.docFrequencies[token]; ok {
			counts[token]++
		}
	}

	vector := make(map[string]float64, len(counts))
	norm := 0.0
	for term, count := range counts {
		weight := float64(count) * v.idf(term)
		vector[term] = weight
		norm += weight * weight
	}
	if norm == 0 {
		return vector
	}
	norm = math.Sqrt(norm)
	for term := range vector {
		vector[term] /= norm
	}
	return vector
}

// linearKernel is the dot product of two sparse vectors. On two
// l2-normalized TF-IDF vectors it equals their cosine similarity.
func linearKernel(v1, v2 map[string]float64) float64 {
	dot := 0.0
	for term, weight := range v1 {
		dot += weight * v2[term]
	}
	return dot
}
