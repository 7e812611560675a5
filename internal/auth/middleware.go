package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/saulo-duarte/coursehub-lambda/internal/apperror"
	"github.com/saulo-duarte/coursehub-lambda/internal/config"
)

type contextKey string

const principalKey contextKey = "principal"

var (
	ErrUnauthenticated = apperror.Unauthorized("authentication required")
	ErrForbidden       = apperror.Forbidden("insufficient permissions")
)

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie("jwt"); err == nil {
		return c.Value
	}
	return ""
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		tokenStr := tokenFromRequest(r)
		if tokenStr == "" {
			apperror.Write(w, r, ErrUnauthenticated)
			return
		}

		claims, err := ValidateJWT(tokenStr)
		if err != nil {
			log.WithError(err).Warn("Invalid JWT")
			apperror.Write(w, r, ErrUnauthenticated)
			return
		}

		principal, err := claims.Principal()
		if err != nil {
			log.WithError(err).Warn("JWT carries an invalid principal")
			apperror.Write(w, r, ErrUnauthenticated)
			return
		}

		ctx := WithPrincipal(r.Context(), principal)
		ctx = config.WithUserID(ctx, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects principals whose role is not listed. It must run after
// AuthMiddleware.
func RequireRole(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := PrincipalFromContext(r.Context())
			if err != nil {
				apperror.Write(w, r, err)
				return
			}
			if !p.HasRole(roles...) {
				config.WithContext(r.Context()).WithField("role", p.Role).Warn("Role not allowed for route")
				apperror.Write(w, r, ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalKey).(Principal)
	if !ok {
		return Principal{}, ErrUnauthenticated
	}
	return p, nil
}
