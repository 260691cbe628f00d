package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-applytrack-backend/config"
	"go-applytrack-backend/internal/delivery/http/middleware"
	"go-applytrack-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func signHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return token
}

func newAuthRouter(cfg *config.Config, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(nil, cfg))
	r.GET("/ping", handler)
	return r
}

func getWithToken(r *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareHS256(t *testing.T) {
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	t.Run("rejects missing credentials", func(t *testing.T) {
		r := newAuthRouter(&config.Config{SupabaseJWTSecret: "test-secret"}, ok)
		w := getWithToken(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects HS256 token when no shared secret is configured", func(t *testing.T) {
		token := signHS256(t, "whatever", jwt.MapClaims{"sub": "user-1"})
		r := newAuthRouter(&config.Config{}, ok)
		w := getWithToken(r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		token := signHS256(t, "wrong-secret", jwt.MapClaims{"sub": "user-1"})
		r := newAuthRouter(&config.Config{SupabaseJWTSecret: "test-secret"}, ok)
		w := getWithToken(r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token lands identity on both contexts", func(t *testing.T) {
		cfg := &config.Config{SupabaseJWTSecret: "test-secret"}
		token := signHS256(t, "test-secret", jwt.MapClaims{
			"sub":          "user-1",
			"email":        "user@example.com",
			"app_metadata": map[string]interface{}{"role": domain.RoleRecruiter},
			"exp":          time.Now().Add(time.Hour).Unix(),
		})

		var ginID, ctxID, role string
		r := newAuthRouter(cfg, func(c *gin.Context) {
			ginID = c.GetString(string(domain.KeyUserID))
			ctxID, _ = c.Request.Context().Value(domain.KeyUserID).(string)
			role = c.GetString(string(domain.KeyUserRole))
			c.Status(http.StatusOK)
		})
		w := getWithToken(r, token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", ginID)
		assert.Equal(t, "user-1", ctxID)
		assert.Equal(t, domain.RoleRecruiter, role)
	})

	t.Run("defaults role to candidate when app_metadata has none", func(t *testing.T) {
		cfg := &config.Config{SupabaseJWTSecret: "test-secret"}
		token := signHS256(t, "test-secret", jwt.MapClaims{"sub": "user-2"})

		var role string
		r := newAuthRouter(cfg, func(c *gin.Context) {
			role = c.GetString(string(domain.KeyUserRole))
			c.Status(http.StatusOK)
		})
		w := getWithToken(r, token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.RoleCandidate, role)
	})
}
