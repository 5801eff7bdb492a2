package httpx

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// CORSConfig lists the browser origins allowed to call the API with
// credentials (cookies).
type CORSConfig struct {
	AllowedOrigins []string
	AllowedHeaders []string
	MaxAge         int
}

var defaultCORSHeaders = []string{"Content-Type", CSRFHeader, "X-Request-ID", "Authorization"}

// CORS answers preflight requests and tags responses for allowed origins.
// Wildcards are not supported because credentialed requests forbid them.
func CORS(cfg CORSConfig) Middleware {
	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || o == "*" {
			continue
		}
		origins = append(origins, o)
	}
	headers := cfg.AllowedHeaders
	if len(headers) == 0 {
		headers = defaultCORSHeaders
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete,
		},
		AllowedHeaders:   headers,
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           cfg.MaxAge,
	})
	return c.Handler
}
