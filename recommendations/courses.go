package recommendations

import (
	"sort"
	"strings"
)

// CourseCandidate is one archived version of a course eligible for
// ranking. Multiple rows may share a Code; only the latest (YearDate,
// then Term, descending) represents the code as a candidate.
type CourseCandidate struct {
	Code      string
	YearDate  int
	Term      int
	Skills    WeightMap
	Knowledge WeightMap
}

// RankedCourse is one entry of the ranked course list.
type RankedCourse struct {
	Code  string
	Score float64
}

// LatestVersions keeps the most recent (YearDate, then Term) row per
// course code. Codes keep their first-appearance order.
func LatestVersions(rows []CourseCandidate) []CourseCandidate {
	order := []string{}
	latest := make(map[string]CourseCandidate)
	for _, row := range rows {
		current, ok := latest[row.Code]
		if !ok {
			order = append(order, row.Code)
			latest[row.Code] = row
			continue
		}
		if row.YearDate > current.YearDate ||
			(row.YearDate == current.YearDate && row.Term > current.Term) {
			latest[row.Code] = row
		}
	}

	deduped := make([]CourseCandidate, 0, len(order))
	for _, code := range order {
		deduped = append(deduped, latest[code])
	}
	return deduped
}

// RecommendCourses ranks candidate courses against a student's combined
// skills-and-knowledge vector. Course matching scores which terms a
// course mentions rather than how strongly: each candidate becomes a
// text document of its term names, a TF-IDF vectorizer is fitted on the
// candidate corpus, and similarity is the linear kernel between the
// student's and the course's TF-IDF vectors. A student with no declared
// terms scores 0 everywhere and the candidates keep their input order.
func (e *Engine) RecommendCourses(student WeightMap, candidates []CourseCandidate, exclude map[string]bool) ([]RankedCourse, error) {
	if err := Validate(student); err != nil {
		return nil, err
	}

	eligible := make([]CourseCandidate, 0, len(candidates))
	for _, candidate := range LatestVersions(candidates) {
		if exclude[candidate.Code] {
			continue
		}
		if err := Validate(candidate.Skills); err != nil {
			return nil, err
		}
		if err := Validate(candidate.Knowledge); err != nil {
			return nil, err
		}
		eligible = append(eligible, candidate)
	}
	if len(eligible) == 0 {
		return []RankedCourse{}, nil
	}

	student = Combine(student, nil)
	vectors := make([]WeightMap, len(eligible))
	for i, candidate := range eligible {
		vectors[i] = Combine(candidate.Skills, candidate.Knowledge)
	}

	if e.cfg.NormalizeCourseTerms {
		vocabulary := sortedTerms(student)
		for _, vector := range vectors {
			vocabulary = append(vocabulary, sortedTerms(vector)...)
		}
		canonical, err := e.ReplaceableTerms(uniqueTerms(vocabulary))
		if err != nil {
			return nil, err
		}
		if student, err = e.ReplaceSimilarTerms(student, canonical); err != nil {
			return nil, err
		}
		for i, vector := range vectors {
			if vectors[i], err = e.ReplaceSimilarTerms(vector, canonical); err != nil {
				return nil, err
			}
		}
	}

	corpus := make([]string, len(vectors))
	for i, vector := range vectors {
		corpus[i] = termText(vector)
	}
	vectorizer := newTfidfVectorizer()
	vectorizer.Fit(corpus)

	studentVector := vectorizer.Transform(termText(student))
	ranked := make([]RankedCourse, len(eligible))
	for i, candidate := range eligible {
		ranked[i] = RankedCourse{
			Code:  candidate.Code,
			Score: linearKernel(studentVector, vectorizer.Transform(corpus[i])),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > e.cfg.CourseTopN {
		ranked = ranked[:e.cfg.CourseTopN]
	}
	return ranked, nil
}

// termText joins a vector's term names into the document scored by the
// TF-IDF path. Weights are deliberately discarded here.
func termText(m WeightMap) string {
	return strings.Join(sortedTerms(m), " ")
}
