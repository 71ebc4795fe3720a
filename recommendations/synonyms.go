package recommendations

import (
	"sort"
	"strings"
)

// Term normalization merges near-duplicate vocabulary ("essay writing"
// vs "written communication") before vectors are compared, so that the
// same competency spelled two ways is not scored as two competencies.
// Synonymy depends on the candidate pool in play, so the shortlist is
// recomputed per request and never persisted.

// hasCommonWord reports whether two phrases share at least one literal
// whitespace-delimited token. It guards the embedding score against
// false positives: single-word phrases with high embedding similarity
// but no literal overlap are not merged.
func hasCommonWord(phrase1, phrase2 string) bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(phrase1) {
		words[w] = true
	}
	for _, w := range strings.Fields(phrase2) {
		if words[w] {
			return true
		}
	}
	return false
}

// checkDuplicates compares a newly accepted canonical term against the
// terms already on the shortlist. When two canonical terms are
// themselves near-synonyms, the longer spelling is marked for removal
// so transitively-similar replacements do not collide.
func (e *Engine) checkDuplicates(shortlist []string, candidate string, removals map[string]bool) (map[string]bool, error) {
	for _, accepted := range shortlist {
		similarity, err := e.embedder.Similarity(accepted, candidate)
		if err != nil {
			return nil, err
		}
		if similarity > e.cfg.SimilarityThreshold {
			if len(accepted) > len(candidate) {
				removals[accepted] = true
			} else {
				removals[candidate] = true
			}
		}
	}
	return removals, nil
}

// ReplaceableTerms scans the vocabulary pairwise and returns the
// canonical replacement terms. Order is insertion order from the scan
// and matters downstream: rewriting uses first-match-wins against this
// shortlist. Cost is O(V²) embedding calls.
func (e *Engine) ReplaceableTerms(vocabulary []string) ([]string, error) {
	shortlist := []string{}
	removals := make(map[string]bool)
	onShortlist := make(map[string]bool)

	for _, word1 := range vocabulary {
		for _, word2 := range vocabulary {
			if word1 == word2 {
				continue
			}
			if onShortlist[word1] || onShortlist[word2] {
				continue
			}
			if !hasCommonWord(word1, word2) {
				continue
			}
			similarity, err := e.embedder.Similarity(word1, word2)
			if err != nil {
				return nil, err
			}
			if similarity <= e.cfg.SimilarityThreshold {
				continue
			}
			removals, err = e.checkDuplicates(shortlist, word1, removals)
			if err != nil {
				return nil, err
			}
			shortlist = append(shortlist, word1)
			onShortlist[word1] = true
		}
	}

	kept := make([]string, 0, len(shortlist))
	for _, word := range shortlist {
		if !removals[word] {
			kept = append(kept, word)
		}
	}
	return kept, nil
}

// ReplaceSimilarTerms rewrites a weight map against a canonical
// shortlist: each term is replaced by the first canonical term whose
// similarity exceeds the threshold, and weights of terms that collapse
// onto the same canonical term are summed. Terms with no match keep
// their original spelling. The input map is never mutated.
func (e *Engine) ReplaceSimilarTerms(m WeightMap, canonical []string) (WeightMap, error) {
	rewritten := make(WeightMap, len(m))
	for term, weight := range m {
		replacement := term
		for _, candidate := range canonical {
			similarity, err := e.embedder.Similarity(term, candidate)
			if err != nil {
				return nil, err
			}
			if similarity > e.cfg.SimilarityThreshold {
				replacement = candidate
				break
			}
		}
		rewritten[replacement] += weight
	}
	return rewritten, nil
}

// NormalizeVocabulary merges a map's own near-synonymous terms: the
// canonical shortlist is derived from the map's vocabulary alone and the
// map rewritten against it. Used by the profile knowledge endpoint to
// clean a single profile before display.
func (e *Engine) NormalizeVocabulary(m WeightMap) (WeightMap, error) {
	canonical, err := e.ReplaceableTerms(sortedTerms(m))
	if err != nil {
		return nil, err
	}
	return e.ReplaceSimilarTerms(m, canonical)
}

// uniqueTerms deduplicates while preserving first appearance, keeping
// the pairwise scan deterministic for a given input ordering.
func uniqueTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	unique := make([]string, 0, len(terms))
	for _, term := range terms {
		if !seen[term] {
			seen[term] = true
			unique = append(unique, term)
		}
	}
	return unique
}

// sortedTerms returns the keys of a weight map in sorted order so the
// vocabulary fed into the pairwise scan does not depend on map
// iteration order.
func sortedTerms(m WeightMap) []string {
	terms := make([]string, 0, len(m))
	for term := range m {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
