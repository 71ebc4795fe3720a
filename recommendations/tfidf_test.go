package recommendations

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTfidfTokenizeLowercasesAndDropsShortTokens(t *testing.T) {
	tokens := tfidfTokenize("Data-Analysis and Go a C python3")
	assert.Equal(t, []string{"data", "analysis", "and", "go", "python3"}, tokens)
}

func TestTfidfTransformIsL2Normalized(t *testing.T) {
	vectorizer := newTfidfVectorizer()
	vectorizer.Fit([]string{"python graphs", "python law", "history law"})

	vector := vectorizer.Transform("python graphs graphs")

	norm := 0.0
	for _, weight := range vector {
		norm += weight * weight
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestTfidfTransformDropsUnfittedTerms(t *testing.T) {
	vectorizer := newTfidfVectorizer()
	vectorizer.Fit([]string{"python graphs"})

	assert.Empty(t, vectorizer.Transform("law history"))
}

func TestTfidfIdfSmoothing(t *testing.T) {
	vectorizer := newTfidfVectorizer()
	vectorizer.Fit([]string{"python", "python", "graphs"})

	// ln((1+3)/(1+2)) + 1 for a term in two of three documents.
	assert.InDelta(t, math.Log(4.0/3.0)+1, vectorizer.idf("python"), 1e-12)
	// Terms in every document still carry positive weight.
	assert.Greater(t, vectorizer.idf("python"), 1.0)
}

func TestLinearKernelOfIdenticalDocuments(t *testing.T) {
	vectorizer := newTfidfVectorizer()
	vectorizer.Fit([]string{"python graphs", "law"})

	v1 := vectorizer.Transform("python graphs")
	v2 := vectorizer.Transform("python graphs")
	assert.InDelta(t, 1.0, linearKernel(v1, v2), 1e-9)

	assert.Equal(t, 0.0, linearKernel(v1, vectorizer.Transform("law")))
}
