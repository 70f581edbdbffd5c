package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS answers preflight requests and sets Access-Control headers for the
// configured comma-separated origins. "*" allows any origin; an empty list
// disables CORS.
func CORS(allowedOrigins string) func(http.Handler) http.Handler {
	var origins []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:       origins,
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type", RequestIDHeader},
		MaxAge:               600,
		OptionsSuccessStatus: http.StatusNoContent,
	})
}
