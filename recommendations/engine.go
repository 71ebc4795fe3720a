package recommendations

// Embedder scores the semantic similarity of two phrases in [0, 1]. The
// production implementation wraps a pretrained sentence-embedding model
// loaded once at process start; tests inject a fake.
type Embedder interface {
	Similarity(phrase1, phrase2 string) (float64, error)
}

// Config carries the tunables of the recommendation engine. The zero
// value is not usable; start from DefaultConfig.
type Config struct {
	// SimilarityThreshold is the embedding-similarity cutoff above which
	// two terms are considered near-synonyms.
	SimilarityThreshold float64

	// CourseTopN and ProjectTopN cap the ranked course and project
	// lists. Peer ranking is deliberately uncapped.
	CourseTopN  int
	ProjectTopN int

	// NormalizeCourseTerms and NormalizeProjectTerms switch the O(V²)
	// synonym scan per ranking engine. The historical behavior is off
	// for courses and on for projects; gap analysis always normalizes.
	NormalizeCourseTerms  bool
	NormalizeProjectTerms bool

	// ProfileTopTerms and CourseTopTerms are the top-K bucket sizes used
	// by the profile endpoints (19 + "other") and the course skill and
	// knowledge endpoints (9 + "other").
	ProfileTopTerms int
	CourseTopTerms  int
}

func DefaultConfig() Config {
	return Config{
		SimilarityThreshold:   0.8,
		CourseTopN:            10,
		ProjectTopN:           10,
		NormalizeCourseTerms:  false,
		NormalizeProjectTerms: true,
		ProfileTopTerms:       19,
		CourseTopTerms:        9,
	}
}

// Engine computes course, project and peer recommendations plus the
// project gap analysis. It is stateless apart from the injected embedder
// and safe for concurrent use.
type Engine struct {
	embedder Embedder
	cfg      Config
}

func NewEngine(embedder Embedder, cfg Config) *Engine {
	if cfg.SimilarityThreshold == 0 {
		cfg.SimilarityThreshold = DefaultConfig().SimilarityThreshold
	}
	if cfg.CourseTopN == 0 {
		cfg.CourseTopN = DefaultConfig().CourseTopN
	}
	if cfg.ProjectTopN == 0 {
		cfg.ProjectTopN = DefaultConfig().ProjectTopN
	}
	if cfg.ProfileTopTerms == 0 {
		cfg.ProfileTopTerms = DefaultConfig().ProfileTopTerms
	}
	if cfg.CourseTopTerms == 0 {
		cfg.CourseTopTerms = DefaultConfig().CourseTopTerms
	}
	return &Engine{embedder: embedder, cfg: cfg}
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}
