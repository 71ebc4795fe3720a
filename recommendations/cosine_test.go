package recommendations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSelfSimilarityIsMaximal(t *testing.T) {
	v := WeightMap{"python": 50, "graphs": 25, "essay writing": 70}
	assert.InDelta(t, 1.0, Cosine(v, v), 1e-9)
}

func TestCosineIsSymmetric(t *testing.T) {
	v1 := WeightMap{"python": 50, "graphs": 25}
	v2 := WeightMap{"python": 10, "c++": 40}
	assert.InDelta(t, Cosine(v1, v2), Cosine(v2, v1), 1e-12)
}

func TestCosineZeroVectorContract(t *testing.T) {
	v := WeightMap{"python": 50}
	assert.Equal(t, 0.0, Cosine(WeightMap{}, v))
	assert.Equal(t, 0.0, Cosine(v, WeightMap{}))
	assert.Equal(t, 0.0, Cosine(WeightMap{}, WeightMap{}))
	// Present keys with zero weights also have zero magnitude.
	assert.Equal(t, 0.0, Cosine(WeightMap{"python": 0}, v))
}

func TestCosineDisjointVocabularies(t *testing.T) {
	v1 := WeightMap{"python": 50}
	v2 := WeightMap{"graphs": 50}
	assert.Equal(t, 0.0, Cosine(v1, v2))
}

func TestCommonFeatureCosine(t *testing.T) {
	v1 := WeightMap{"python": 50, "graphs": 25}
	v2 := WeightMap{"python": 10, "c++": 40}

	score, shared := commonFeatureCosine(v1, v2)
	assert.True(t, shared)
	// Projection onto the shared vocabulary is one-dimensional, so the
	// similarity is exactly 1 regardless of the weights.
	assert.InDelta(t, 1.0, score, 1e-9)

	_, shared = commonFeatureCosine(v1, WeightMap{"law": 5})
	assert.False(t, shared)

	score, shared = commonFeatureCosine(WeightMap{"python": 0}, WeightMap{"python": 10})
	assert.True(t, shared)
	assert.Equal(t, 0.0, score)
}
