package embeddings

import (
	"math"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// phraseEncoder is the surface the similarity model needs from the
// underlying encoder; tests substitute a stub.
type phraseEncoder interface {
	Encode(text string) ([]float32, error)
}

// Model scores the semantic similarity of two phrases with cached
// sentence embeddings. Vocabulary repeats heavily across the pairwise
// synonym scan, so caching the vectors turns O(V²) encoder calls into
// O(V). The cache only grows; entries are never invalidated because the
// model never changes after load.
type Model struct {
	enc   phraseEncoder
	mu    sync.RWMutex
	cache map[string][]float32
}

func NewModel(enc phraseEncoder) *Model {
	return &Model{enc: enc, cache: make(map[string][]float32)}
}

// Similarity implements recommendations.Embedder: the cosine similarity
// of the two phrase embeddings, 0 when either embedding has no
// magnitude.
func (m *Model) Similarity(phrase1, phrase2 string) (float64, error) {
	v1, err := m.vector(phrase1)
	if err != nil {
		return 0, err
	}
	v2, err := m.vector(phrase2)
	if err != nil {
		return 0, err
	}
	return cosine32(v1, v2), nil
}

func (m *Model) vector(phrase string) ([]float32, error) {
	key := normalizePhrase(phrase)

	m.mu.RLock()
	vec, ok := m.cache[key]
	m.mu.RUnlock()
	if ok {
		return vec, nil
	}

	vec, err := m.enc.Encode(key)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.cache[key] = vec
	m.mu.Unlock()
	return vec, nil
}

// normalizePhrase applies NFKC normalization and collapses surrounding
// whitespace so cache keys are stable across input spellings.
func normalizePhrase(phrase string) string {
	return strings.TrimSpace(norm.NFKC.String(phrase))
}

func cosine32(v1, v2 []float32) float64 {
	if len(v1) != len(v2) {
		return 0
	}
	var dot, n1, n2 float64
	for i := range v1 {
		dot += float64(v1[i]) * float64(v2[i])
		n1 += float64(v1[i]) * float64(v1[i])
		n2 += float64(v2[i]) * float64(v2[i])
	}
	if n1 == 0 || n2 == 0 {
		return 0
	}
	return dot / (math.Sqrt(n1) * math.Sqrt(n2))
}

// normalize scales a vector to unit length in place. Zero vectors are
// left untouched.
func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	length := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= length
	}
}
