package recommendations

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestVersionsKeepsNewestPerCode(t *testing.T) {
	rows := []CourseCandidate{
		{Code: "COMP1511", YearDate: 2023, Term: 1, Skills: WeightMap{"c": 100}},
		{Code: "COMP2521", YearDate: 2024, Term: 2},
		{Code: "COMP1511", YearDate: 2024, Term: 2, Skills: WeightMap{"python": 100}},
		{Code: "COMP1511", YearDate: 2024, Term: 1},
	}

	deduped := LatestVersions(rows)

	require.Len(t, deduped, 2)
	// First-appearance code order survives the dedup.
	assert.Equal(t, "COMP1511", deduped[0].Code)
	assert.Equal(t, 2024, deduped[0].YearDate)
	assert.Equal(t, 2, deduped[0].Term)
	assert.Equal(t, WeightMap{"python": 100}, deduped[0].Skills)
	assert.Equal(t, "COMP2521", deduped[1].Code)
}

func TestRecommendCoursesRanksByTermOverlap(t *testing.T) {
	engine := newTestEngine(nil)
	student := WeightMap{"python": 1, "graphs": 1}
	candidates := []CourseCandidate{
		{Code: "LAWS1001", YearDate: 2024, Term: 1, Skills: WeightMap{"law": 1, "history": 1}},
		{Code: "COMP2521", YearDate: 2024, Term: 1, Skills: WeightMap{"python": 1, "graphs": 1}},
		{Code: "COMP1531", YearDate: 2024, Term: 1, Skills: WeightMap{"python": 1, "law": 1}},
	}

	ranked, err := engine.RecommendCourses(student, candidates, nil)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "COMP2521", ranked[0].Code)
	assert.InDelta(t, 1.0, ranked[0].Score, 1e-9)
	assert.Equal(t, "COMP1531", ranked[1].Code)
	assert.Greater(t, ranked[1].Score, 0.0)
	assert.Equal(t, "LAWS1001", ranked[2].Code)
	assert.Equal(t, 0.0, ranked[2].Score)
}

func TestRecommendCoursesIgnoresWeights(t *testing.T) {
	engine := newTestEngine(nil)
	candidates := []CourseCandidate{
		{Code: "COMP2521", YearDate: 2024, Term: 1, Skills: WeightMap{"python": 1, "graphs": 1}},
		{Code: "LAWS1001", YearDate: 2024, Term: 1, Skills: WeightMap{"law": 1}},
	}

	weak, err := engine.RecommendCourses(WeightMap{"python": 1, "graphs": 1}, candidates, nil)
	require.NoError(t, err)
	strong, err := engine.RecommendCourses(WeightMap{"python": 90, "graphs": 10}, candidates, nil)
	require.NoError(t, err)

	// Only term presence matters for course matching.
	assert.Equal(t, weak, strong)
}

func TestRecommendCoursesExcludesCompletedCodes(t *testing.T) {
	engine := newTestEngine(nil)
	candidates := []CourseCandidate{
		{Code: "COMP2521", YearDate: 2024, Term: 1, Skills: WeightMap{"python": 1}},
		{Code: "COMP1531", YearDate: 2024, Term: 1, Skills: WeightMap{"python": 1}},
	}

	ranked, err := engine.RecommendCourses(WeightMap{"python": 1}, candidates, map[string]bool{"COMP2521": true})
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "COMP1531", ranked[0].Code)
}

func TestRecommendCoursesEmptyStudentKeepsInputOrder(t *testing.T) {
	engine := newTestEngine(nil)
	candidates := []CourseCandidate{
		{Code: "COMP1511", YearDate: 2024, Term: 1, Skills: WeightMap{"c": 1}},
		{Code: "COMP2521", YearDate: 2024, Term: 1, Skills: WeightMap{"graphs": 1}},
		{Code: "COMP1531", YearDate: 2024, Term: 1, Skills: WeightMap{"python": 1}},
	}

	ranked, err := engine.RecommendCourses(WeightMap{}, candidates, nil)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	for i, entry := range ranked {
		assert.Equal(t, candidates[i].Code, entry.Code)
		assert.Equal(t, 0.0, entry.Score)
	}
}

func TestRecommendCoursesCapsAtTopN(t *testing.T) {
	engine := newTestEngine(nil)
	candidates := make([]CourseCandidate, 0, 12)
	for i := 0; i < 12; i++ {
		candidates = append(candidates, CourseCandidate{
			Code:     fmt.Sprintf("COMP%04d", 1000+i),
			YearDate: 2024,
			Term:     1,
			Skills:   WeightMap{"python": 1},
		})
	}

	ranked, err := engine.RecommendCourses(WeightMap{"python": 1}, candidates, nil)
	require.NoError(t, err)
	assert.Len(t, ranked, 10)
}

func TestRecommendCoursesRejectsInvalidWeights(t *testing.T) {
	engine := newTestEngine(nil)

	_, err := engine.RecommendCourses(WeightMap{"python": -1}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidWeight)

	_, err = engine.RecommendCourses(WeightMap{}, []CourseCandidate{
		{Code: "COMP1511", Skills: WeightMap{"c": -5}},
	}, nil)
	assert.ErrorIs(t, err, ErrInvalidWeight)
}
