package middlewares

import (
	"net/http"
	"strings"

	"github.com/saulo-duarte/coursehub-lambda/internal/config"
)

const (
	allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	allowedHeaders = "Accept, Authorization, Content-Type, X-Request-Id"
)

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed := allowedOrigin(origin); allowed != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowed)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allowedOrigin echoes the request origin when it is configured. A wildcard
// still echoes the concrete origin because credentials are allowed.
func allowedOrigin(origin string) string {
	if origin == "" {
		return ""
	}
	for _, o := range config.AllowedOrigins() {
		if o == "*" || strings.EqualFold(o, origin) {
			return origin
		}
	}
	return ""
}
