package recommendations

import "math"

// Cosine computes the weighted cosine similarity of two term vectors
// over the union of their keys. A missing key contributes 0. When either
// vector has zero magnitude the result is 0 by contract, not an error.
func Cosine(v1, v2 WeightMap) float64 {
	dot := 0.0
	for term, weight := range v1 {
		dot += weight * v2[term]
	}

	magnitude1 := 0.0
	for _, weight := range v1 {
		magnitude1 += weight * weight
	}
	magnitude2 := 0.0
	for _, weight := range v2 {
		magnitude2 += weight * weight
	}

	if magnitude1 == 0 || magnitude2 == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(magnitude1) * math.Sqrt(magnitude2))
}

// commonFeatureCosine projects both vectors onto their shared terms and
// takes the cosine of the projections. Peer ranking only compares the
// vocabulary two students have in common; the second return value
// reports whether any shared term existed at all.
func commonFeatureCosine(v1, v2 WeightMap) (float64, bool) {
	dot := 0.0
	magnitude1 := 0.0
	magnitude2 := 0.0
	shared := false
	for term, w1 := range v1 {
		w2, ok := v2[term]
		if !ok {
			continue
		}
		shared = true
		dot += w1 * w2
		magnitude1 += w1 * w1
		magnitude2 += w2 * w2
	}
	if !shared {
		return 0.0, false
	}
	if magnitude1 == 0 || magnitude2 == 0 {
		return 0.0, true
	}
	return dot / (math.Sqrt(magnitude1) * math.Sqrt(magnitude2)), true
}
