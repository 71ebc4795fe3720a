package httpcors

import (
	"os"
	"strings"

	"github.com/rs/cors"
)

// CorsSettings builds the CORS policy for the API. Origins come from
// CORS_ORIGINS (comma separated); the default is open for development.
func CorsSettings() *cors.Cors {
	origins := []string{"*"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	return cors.New(cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Authorization"},
	})
}
