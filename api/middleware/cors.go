package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:5173", // local dev frontend
	"http://localhost:3000",
}

// CORS returns middleware that applies the API's allowed origin policy.
// The configured client URL is appended to the local dev defaults.
func CORS(clientURL string) func(http.Handler) http.Handler {
	origins := append([]string{}, defaultCORSOrigins...)
	if trimmed := strings.TrimSpace(clientURL); trimmed != "" {
		known := false
		for _, origin := range origins {
			if origin == trimmed {
				known = true
				break
			}
		}
		if !known {
			origins = append(origins, trimmed)
		}
	}

	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
