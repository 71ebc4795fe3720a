package recommendations

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineKnowledgeAbsentIdentity(t *testing.T) {
	m := WeightMap{"python": 50, "graphs": 25}
	combined := Combine(m, WeightMap{})
	assert.Equal(t, m, combined)
}

func TestCombineSumsUnionOfKeys(t *testing.T) {
	skills := WeightMap{"python": 40, "writing": 10}
	knowledge := WeightMap{"python": 60, "graphs": 5}

	combined := Combine(skills, knowledge)

	assert.Equal(t, WeightMap{"python": 100, "writing": 10, "graphs": 5}, combined)
	// Inputs stay untouched.
	assert.Equal(t, WeightMap{"python": 40, "writing": 10}, skills)
}

func TestValidateRejectsNegativeWeight(t *testing.T) {
	err := Validate(WeightMap{"python": -1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWeight)
}

func TestValidateRejectsNaN(t *testing.T) {
	err := Validate(WeightMap{"python": math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidWeight)
}

func TestValidateAcceptsZeroAndPositive(t *testing.T) {
	assert.NoError(t, Validate(WeightMap{"python": 0, "graphs": 12.5}))
	assert.NoError(t, Validate(WeightMap{}))
}

func TestTopKKeepsHighestAndBucketsRest(t *testing.T) {
	m := WeightMap{"a": 50, "b": 40, "c": 30, "d": 20, "e": 10}

	top := TopK(m, 2)

	assert.Equal(t, WeightMap{"a": 50, "b": 40, OtherBucket: 60}, top)
}

func TestTopKOtherBucketPresentEvenWhenEmpty(t *testing.T) {
	top := TopK(WeightMap{"a": 5}, 9)
	assert.Equal(t, WeightMap{"a": 5, OtherBucket: 0}, top)
}

func TestNormalizeToPercentSumsToRoughly100(t *testing.T) {
	m := WeightMap{"a": 3, "b": 3, "c": 3}

	normalized := NormalizeToPercent(m)

	sum := 0.0
	for _, v := range normalized {
		assert.Equal(t, math.Trunc(v), v, "weights must be whole percentages")
		sum += v
	}
	// Truncation can lose at most one unit per entry.
	assert.InDelta(t, 100, sum, float64(len(m)))
}

func TestNormalizeToPercentZeroSumUnchanged(t *testing.T) {
	m := WeightMap{"a": 0, "b": 0}
	assert.Equal(t, m, NormalizeToPercent(m))
}

func TestParseWeightMap(t *testing.T) {
	m, err := ParseWeightMap(`{"python": 50, "c++": 25}`)
	require.NoError(t, err)
	assert.Equal(t, WeightMap{"python": 50, "c++": 25}, m)

	m, err = ParseWeightMap("")
	require.NoError(t, err)
	assert.Empty(t, m)

	_, err = ParseWeightMap("not json")
	assert.Error(t, err)

	_, err = ParseWeightMap(`{"python": -5}`)
	assert.ErrorIs(t, err, ErrInvalidWeight)
}
