package recommender

import (
	"unimatch-backend/recommendations"
)

// The engine is wired once at startup, like the database handle, and
// shared read-only by every controller.
var engine *recommendations.Engine

// Init builds the process-wide engine around the loaded embedding model.
func Init(embedder recommendations.Embedder, cfg recommendations.Config) {
	engine = recommendations.NewEngine(embedder, cfg)
}

// Engine returns the process-wide recommendation engine.
func Engine() *recommendations.Engine {
	return engine
}
