package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows any origin. The site is a static page served from a CDN
// whose origin is not known at deploy time.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Stripe-Signature", "X-Request-Id"},
		MaxAge:         300,
	})
}
