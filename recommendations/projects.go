package recommendations

import (
	"errors"
	"math"
	"sort"
)

// ErrNoRequiredTerms is returned when a percentage match is requested
// for a project with no required terms at all. The ratio is undefined
// there; callers must not present it as 0% or 100%.
var ErrNoRequiredTerms = errors.New("project has no required terms")

// ProjectCandidate is one project eligible for ranking, carrying its
// required skills and knowledge maps.
type ProjectCandidate struct {
	ID        uint
	Skills    WeightMap
	Knowledge WeightMap
}

// RankedProject is one entry of the ranked project list.
type RankedProject struct {
	ProjectID uint
	Score     float64
}

// MatchReport is the gap analysis for one student against one project.
type MatchReport struct {
	MissingSkills    []string
	MissingKnowledge []string
	PercentageMatch  int
}

// RecommendProjects ranks projects by the weighted cosine similarity of
// their required skills and knowledge against the student's combined
// vector. Unlike course matching, this path weights by numeric
// strength, and it first runs the term normalizer across the shared
// vocabulary so near-synonymous terms line up before scoring.
func (e *Engine) RecommendProjects(studentSkills, studentKnowledge WeightMap, candidates []ProjectCandidate, exclude map[uint]bool) ([]RankedProject, error) {
	if err := Validate(studentSkills); err != nil {
		return nil, err
	}
	if err := Validate(studentKnowledge); err != nil {
		return nil, err
	}

	eligible := make([]ProjectCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if exclude[candidate.ID] {
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
		return []RankedProject{}, nil
	}

	student := Combine(studentSkills, studentKnowledge)
	vectors := make([]WeightMap, len(eligible))
	for i, candidate := range eligible {
		vectors[i] = Combine(candidate.Skills, candidate.Knowledge)
	}

	if e.cfg.NormalizeProjectTerms {
		vocabulary := []string{}
		for _, vector := range vectors {
			vocabulary = append(vocabulary, sortedTerms(vector)...)
		}
		vocabulary = append(vocabulary, sortedTerms(student)...)
		canonical, err := e.ReplaceableTerms(uniqueTerms(vocabulary))
		if err != nil {
			return nil, err
		}
		if student, err = e.ReplaceSimilarTerms(student, canonical); err != nil {
			return nil, err
		}
		for i := range vectors {
			if vectors[i], err = e.ReplaceSimilarTerms(vectors[i], canonical); err != nil {
				return nil, err
			}
		}
	}

	ranked := make([]RankedProject, len(eligible))
	for i, candidate := range eligible {
		ranked[i] = RankedProject{
			ProjectID: candidate.ID,
			Score:     Cosine(student, vectors[i]),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > e.cfg.ProjectTopN {
		ranked = ranked[:e.cfg.ProjectTopN]
	}
	return ranked, nil
}

// MissingSkillsAndKnowledge reports which of a project's required terms
// the student does not possess. The whole vocabulary is normalized
// first, so "essay writing" satisfies a requirement spelled "written
// essay". A possessed skill satisfies a knowledge requirement and vice
// versa; cross-category credit is intentional.
func (e *Engine) MissingSkillsAndKnowledge(project ProjectCandidate, studentSkills, studentKnowledge WeightMap) (missingSkills, missingKnowledge []string, err error) {
	for _, m := range []WeightMap{project.Skills, project.Knowledge, studentSkills, studentKnowledge} {
		if err := Validate(m); err != nil {
			return nil, nil, err
		}
	}

	vocabulary := append(sortedTerms(project.Skills), sortedTerms(project.Knowledge)...)
	vocabulary = append(vocabulary, sortedTerms(Combine(studentSkills, studentKnowledge))...)
	canonical, err := e.ReplaceableTerms(uniqueTerms(vocabulary))
	if err != nil {
		return nil, nil, err
	}

	requiredSkills, err := e.ReplaceSimilarTerms(project.Skills, canonical)
	if err != nil {
		return nil, nil, err
	}
	requiredKnowledge, err := e.ReplaceSimilarTerms(project.Knowledge, canonical)
	if err != nil {
		return nil, nil, err
	}
	possessedSkills, err := e.ReplaceSimilarTerms(studentSkills, canonical)
	if err != nil {
		return nil, nil, err
	}
	possessedKnowledge, err := e.ReplaceSimilarTerms(studentKnowledge, canonical)
	if err != nil {
		return nil, nil, err
	}

	possessed := make(map[string]bool, len(possessedSkills)+len(possessedKnowledge))
	for term := range possessedSkills {
		possessed[term] = true
	}
	for term := range possessedKnowledge {
		possessed[term] = true
	}

	missingSkills = []string{}
	for term := range requiredSkills {
		if !possessed[term] {
			missingSkills = append(missingSkills, term)
		}
	}
	missingKnowledge = []string{}
	for term := range requiredKnowledge {
		if !possessed[term] {
			missingKnowledge = append(missingKnowledge, term)
		}
	}
	sort.Strings(missingSkills)
	sort.Strings(missingKnowledge)
	return missingSkills, missingKnowledge, nil
}

// Match runs the full gap analysis for one project: the missing terms
// plus the covered percentage. The percentage denominator counts the raw
// required terms, before the normalizer collapses near-duplicates, so a
// project whose requirements all merge away still divides by what its
// creator wrote down.
func (e *Engine) Match(project ProjectCandidate, studentSkills, studentKnowledge WeightMap) (MatchReport, error) {
	missingSkills, missingKnowledge, err := e.MissingSkillsAndKnowledge(project, studentSkills, studentKnowledge)
	if err != nil {
		return MatchReport{}, err
	}
	totalRequired := len(project.Skills) + len(project.Knowledge)
	percentage, err := PercentageMatch(totalRequired, len(missingSkills)+len(missingKnowledge))
	if err != nil {
		return MatchReport{}, err
	}
	return MatchReport{
		MissingSkills:    missingSkills,
		MissingKnowledge: missingKnowledge,
		PercentageMatch:  percentage,
	}, nil
}

// PercentageMatch expresses how much of a project's required vocabulary
// the student covers, rounded to the nearest integer percentage.
// totalRequired must be positive.
func PercentageMatch(totalRequired, missing int) (int, error) {
	if totalRequired <= 0 {
		return 0, ErrNoRequiredTerms
	}
	return int(math.Round(100 * (1 - float64(missing)/float64(totalRequired)))), nil
}
