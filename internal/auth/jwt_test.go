package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
)

const testSecret = "uma-chave-secreta-para-testes-segura-e-longa"
const testEmail = "aluno@example.com"

func TestInit(t *testing.T) {
	t.Run("MissingSecret", func(t *testing.T) {
		os.Unsetenv("JWT_SECRET")
		assert.Panics(t, auth.Init)
	})

	t.Run("ValidSecret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", testSecret)
		assert.NotPanics(t, auth.Init)
	})
}

func TestGenerateAndValidateJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	auth.Init()
	userID := uuid.NewString()

	t.Run("ValidToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(userID, testEmail, auth.RoleStudent, 5*time.Minute)
		require.NoError(t, err)

		claims, err := auth.ValidateJWT(tokenStr)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, auth.RoleStudent, claims.Role)

		p, err := claims.Principal()
		require.NoError(t, err)
		assert.Equal(t, userID, p.ID.String())
		assert.Equal(t, testEmail, p.Email)
		assert.True(t, p.IsStudent())
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(userID, testEmail, auth.RoleStudent, -time.Minute)
		require.NoError(t, err)

		_, err = auth.ValidateJWT(tokenStr)
		require.Error(t, err)
		assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
	})

	t.Run("InvalidSignature", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(userID, testEmail, auth.RoleStudent, time.Minute)
		require.NoError(t, err)

		t.Setenv("JWT_SECRET", "chave-secreta-falsa-diferente")
		auth.Init()
		defer func() {
			os.Setenv("JWT_SECRET", testSecret)
			auth.Init()
		}()

		_, err = auth.ValidateJWT(tokenStr)
		require.Error(t, err)
		assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid))
	})

	t.Run("InvalidRole", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(userID, testEmail, auth.Role("superuser"), time.Minute)
		require.NoError(t, err)

		claims, err := auth.ValidateJWT(tokenStr)
		require.NoError(t, err)
		_, err = claims.Principal()
		assert.Error(t, err)
	})
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	userID := uuid.New()
	var seen auth.Principal
	protected := auth.AuthMiddleware(auth.RequireRole(auth.RoleAdmin, auth.RoleInstructor)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := auth.PrincipalFromContext(r.Context())
			require.NoError(t, err)
			seen = p
			w.WriteHeader(http.StatusNoContent)
		}),
	))

	tokenFor := func(role auth.Role) string {
		tok, err := auth.GenerateJWT(userID.String(), testEmail, role, time.Minute)
		require.NoError(t, err)
		return tok
	}

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bearer header with allowed role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(auth.RoleAdmin))
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, userID, seen.ID)
	})

	t.Run("cookie with forbidden role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: tokenFor(auth.RoleStudent)})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestLogout(t *testing.T) {
	rec := httptest.NewRecorder()
	auth.NewHandler().Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "jwt", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
