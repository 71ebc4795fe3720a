package embeddings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEncoder struct {
	vectors map[string][]float32
	calls   map[string]int
}

func newStubEncoder(vectors map[string][]float32) *stubEncoder {
	return &stubEncoder{vectors: vectors, calls: make(map[string]int)}
}

func (s *stubEncoder) Encode(text string) ([]float32, error) {
	s.calls[text]++
	vec, ok := s.vectors[text]
	if !ok {
		return nil, errors.New("unexpected phrase: " + text)
	}
	return vec, nil
}

func TestSimilarityOfIdenticalVectors(t *testing.T) {
	enc := newStubEncoder(map[string][]float32{
		"python":  {1, 0, 0},
		"c++":     {1, 0, 0},
		"history": {0, 1, 0},
	})
	model := NewModel(enc)

	score, err := model.Similarity("python", "c++")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)

	score, err = model.Similarity("python", "history")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, score, 1e-9)
}

func TestSimilarityZeroMagnitudeVector(t *testing.T) {
	enc := newStubEncoder(map[string][]float32{
		"python": {1, 0},
		"blank":  {0, 0},
	})
	model := NewModel(enc)

	score, err := model.Similarity("python", "blank")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestVectorCacheEncodesEachPhraseOnce(t *testing.T) {
	enc := newStubEncoder(map[string][]float32{
		"python": {1, 0},
		"graphs": {0, 1},
	})
	model := NewModel(enc)

	for i := 0; i < 3; i++ {
		_, err := model.Similarity("python", "graphs")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, enc.calls["python"])
	assert.Equal(t, 1, enc.calls["graphs"])
}

func TestCacheKeyNormalizesSpelling(t *testing.T) {
	enc := newStubEncoder(map[string][]float32{
		"python": {1, 0},
	})
	model := NewModel(enc)

	// Surrounding whitespace collapses onto the same cache entry.
	_, err := model.Similarity("  python ", "python")
	require.NoError(t, err)
	assert.Equal(t, 1, enc.calls["python"])
}

func TestSimilarityPropagatesEncoderError(t *testing.T) {
	model := NewModel(newStubEncoder(nil))
	_, err := model.Similarity("python", "graphs")
	assert.Error(t, err)
}

func TestNormalizeScalesToUnitLength(t *testing.T) {
	vec := []float32{3, 4}
	normalize(vec)
	assert.InDelta(t, 0.6, float64(vec[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(vec[1]), 1e-6)

	zero := []float32{0, 0}
	normalize(zero)
	assert.Equal(t, []float32{0, 0}, zero)
}
