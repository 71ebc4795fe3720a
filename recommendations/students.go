package recommendations

import (
	"fmt"
	"sort"
)

// StudentProfile is one student eligible for peer matching, with the
// combined skills-and-knowledge vector of their student role.
type StudentProfile struct {
	ZID    string
	Vector WeightMap
}

// RankedStudent is one entry of the ranked peer list.
type RankedStudent struct {
	ZID   string
	Score float64
}

// RecommendStudents ranks every other student by similarity to the
// target. Only the vocabulary two students share is compared; a
// candidate with no shared terms cannot be scored at all.
//
// The result always contains every other student exactly once: scored
// candidates first, descending, then the unscorable ones in their
// original order. When nobody shares any vocabulary the full population
// is returned in input order — "no similarity signal" is deliberately
// not "no recommendations". The list is uncapped.
func (e *Engine) RecommendStudents(targetZID string, profiles []StudentProfile) ([]RankedStudent, error) {
	var target *StudentProfile
	for i := range profiles {
		if profiles[i].ZID == targetZID {
			target = &profiles[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("student %s has no profile in the candidate population", targetZID)
	}
	if err := Validate(target.Vector); err != nil {
		return nil, err
	}

	scored := []RankedStudent{}
	unscored := []RankedStudent{}
	for _, profile := range profiles {
		if profile.ZID == targetZID {
			continue
		}
		if err := Validate(profile.Vector); err != nil {
			return nil, err
		}
		similarity, shared := commonFeatureCosine(target.Vector, profile.Vector)
		if shared {
			scored = append(scored, RankedStudent{ZID: profile.ZID, Score: similarity})
		} else {
			unscored = append(unscored, RankedStudent{ZID: profile.ZID})
		}
	}

	if len(scored) == 0 {
		return unscored, nil
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return append(scored, unscored...), nil
}
