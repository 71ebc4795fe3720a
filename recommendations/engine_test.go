package recommendations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeEmbedder scores phrase pairs from a fixed table. Identical phrases
// always score 1 and unknown pairs score 0, which keeps every test free
// of a real embedding model.
type fakeEmbedder struct {
	pairs map[string]float64
}

func pairKey(phrase1, phrase2 string) string {
	if phrase1 > phrase2 {
		phrase1, phrase2 = phrase2, phrase1
	}
	return phrase1 + "|" + phrase2
}

func (f fakeEmbedder) Similarity(phrase1, phrase2 string) (float64, error) {
	if phrase1 == phrase2 {
		return 1, nil
	}
	return f.pairs[pairKey(phrase1, phrase2)], nil
}

func newTestEngine(pairs map[string]float64) *Engine {
	return NewEngine(fakeEmbedder{pairs: pairs}, DefaultConfig())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 0.8, cfg.SimilarityThreshold)
	assert.Equal(t, 10, cfg.CourseTopN)
	assert.Equal(t, 10, cfg.ProjectTopN)
	assert.False(t, cfg.NormalizeCourseTerms)
	assert.True(t, cfg.NormalizeProjectTerms)
	assert.Equal(t, 19, cfg.ProfileTopTerms)
	assert.Equal(t, 9, cfg.CourseTopTerms)
}

func TestNewEngineFillsZeroFields(t *testing.T) {
	engine := NewEngine(fakeEmbedder{}, Config{ProjectTopN: 3})

	cfg := engine.Config()
	assert.Equal(t, 0.8, cfg.SimilarityThreshold)
	assert.Equal(t, 10, cfg.CourseTopN)
	assert.Equal(t, 3, cfg.ProjectTopN)
	assert.Equal(t, 19, cfg.ProfileTopTerms)
	assert.Equal(t, 9, cfg.CourseTopTerms)
}
