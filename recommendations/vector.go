package recommendations

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
)

// WeightMap maps a free-form skill or knowledge term to its accumulated
// weight. A term absent from the map counts as weight 0.
type WeightMap map[string]float64

// OtherBucket is the synthetic key the remainder collapses into when a
// map is truncated to its top entries.
const OtherBucket = "other"

var ErrInvalidWeight = errors.New("invalid weight")

// Validate rejects malformed weight maps. Weights must be real numbers
// and non-negative; the engine never coerces bad input.
func Validate(m WeightMap) error {
	for term, weight := range m {
		if math.IsNaN(weight) || math.IsInf(weight, 0) {
			return fmt.Errorf("%w: %q is not a finite number", ErrInvalidWeight, term)
		}
		if weight < 0 {
			return fmt.Errorf("%w: %q has negative weight %v", ErrInvalidWeight, term, weight)
		}
	}
	return nil
}

// ParseWeightMap decodes a persisted JSON weight map and validates it.
// Weight maps are stored as JSON text columns and rebuilt fresh on every
// request; an empty blob decodes to an empty map.
func ParseWeightMap(blob string) (WeightMap, error) {
	if blob == "" {
		return WeightMap{}, nil
	}
	var m WeightMap
	if err := json.Unmarshal([]byte(blob), &m); err != nil {
		return nil, fmt.Errorf("decode weight map: %w", err)
	}
	if m == nil {
		m = WeightMap{}
	}
	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Combine sums a skills map and a knowledge map key-wise over the union
// of their terms, producing the single vector used for scoring.
func Combine(skills, knowledge WeightMap) WeightMap {
	combined := make(WeightMap, len(skills)+len(knowledge))
	for term, weight := range skills {
		combined[term] += weight
	}
	for term, weight := range knowledge {
		combined[term] += weight
	}
	return combined
}

// TopK keeps the k highest-weighted terms and collapses everything else
// into the "other" bucket. The bucket is present even when nothing was
// collapsed. Ties are broken by term so the selection is deterministic.
func TopK(m WeightMap, k int) WeightMap {
	type entry struct {
		term   string
		weight float64
	}
	entries := make([]entry, 0, len(m))
	for term, weight := range m {
		entries = append(entries, entry{term, weight})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].weight != entries[j].weight {
			return entries[i].weight > entries[j].weight
		}
		return entries[i].term < entries[j].term
	})

	if k < 0 {
		k = 0
	}
	if k > len(entries) {
		k = len(entries)
	}

	top := make(WeightMap, k+1)
	for _, e := range entries[:k] {
		top[e.term] = e.weight
	}
	other := 0.0
	for _, e := range entries[k:] {
		other += e.weight
	}
	top[OtherBucket] = other
	return top
}

// NormalizeToPercent scales weights so they sum to 100, truncating each
// scaled weight to an integer. An all-zero map is returned unchanged to
// avoid dividing by zero.
func NormalizeToPercent(m WeightMap) WeightMap {
	total := 0.0
	for _, weight := range m {
		total += weight
	}
	if total == 0 {
		return m
	}

	factor := 100 / total
	normalized := make(WeightMap, len(m))
	for term, weight := range m {
		normalized[term] = math.Trunc(weight * factor)
	}
	return normalized
}
