package recommendations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCommonWord(t *testing.T) {
	assert.True(t, hasCommonWord("essay writing", "writing essays"))
	assert.False(t, hasCommonWord("fast", "quick"))
	assert.False(t, hasCommonWord("", "python"))
}

func TestReplaceableTermsMergesOnSimilarityAndCommonWord(t *testing.T) {
	engine := newTestEngine(map[string]float64{
		pairKey("essay writing", "writing essays"): 0.9,
	})

	shortlist, err := engine.ReplaceableTerms([]string{"essay writing", "writing essays", "public speaking"})
	require.NoError(t, err)
	assert.Equal(t, []string{"essay writing"}, shortlist)
}

func TestReplaceableTermsRequiresLiteralOverlap(t *testing.T) {
	// High embedding similarity alone is not enough without a shared
	// literal word.
	engine := newTestEngine(map[string]float64{
		pairKey("fast", "quick"): 0.95,
	})

	shortlist, err := engine.ReplaceableTerms([]string{"fast", "quick"})
	require.NoError(t, err)
	assert.Empty(t, shortlist)
}

func TestReplaceableTermsDropsLongerOfConflictingCanonicals(t *testing.T) {
	engine := newTestEngine(map[string]float64{
		pairKey("data analysis", "data analytics"):              0.9,
		pairKey("statistical analysis", "statistical modelling"): 0.85,
		pairKey("data analysis", "statistical analysis"):         0.82,
	})

	shortlist, err := engine.ReplaceableTerms([]string{
		"data analysis", "data analytics", "statistical analysis", "statistical modelling",
	})
	require.NoError(t, err)
	// Both pairs produce a canonical term, but the two canonicals are
	// themselves near-synonyms, so the longer spelling is dropped.
	assert.Equal(t, []string{"data analysis"}, shortlist)
}

func TestReplaceSimilarTermsSumsCollapsedWeights(t *testing.T) {
	engine := newTestEngine(map[string]float64{
		pairKey("essay writing", "writing essays"): 0.9,
	})

	rewritten, err := engine.ReplaceSimilarTerms(
		WeightMap{"essay writing": 40, "writing essays": 30, "python": 20},
		[]string{"essay writing"},
	)
	require.NoError(t, err)
	assert.Equal(t, WeightMap{"essay writing": 70, "python": 20}, rewritten)
}

func TestReplaceSimilarTermsEmptyShortlistIsIdentity(t *testing.T) {
	engine := newTestEngine(nil)
	m := WeightMap{"python": 50, "graphs": 25}

	rewritten, err := engine.ReplaceSimilarTerms(m, nil)
	require.NoError(t, err)
	assert.Equal(t, m, rewritten)
}

func TestNormalizeVocabulary(t *testing.T) {
	engine := newTestEngine(map[string]float64{
		pairKey("essay writing", "writing essays"): 0.9,
	})

	normalized, err := engine.NormalizeVocabulary(
		WeightMap{"essay writing": 40, "writing essays": 30, "python": 20},
	)
	require.NoError(t, err)
	assert.Equal(t, WeightMap{"essay writing": 70, "python": 20}, normalized)
}

func TestUniqueTermsPreservesFirstAppearance(t *testing.T) {
	unique := uniqueTerms([]string{"b", "a", "b", "c", "a"})
	assert.Equal(t, []string{"b", "a", "c"}, unique)
}
