package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go-applytrack-backend/config"
	"go-applytrack-backend/internal/delivery/http/response"
	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates Supabase-issued JWTs. HS256 tokens verify
// against the shared secret, RS256 tokens against the project JWKS.
// Identity and role land in the request context for the layers below.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				if cfg.SupabaseJWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but SUPABASE_JWT_SECRET is not configured")
				}
				return []byte(cfg.SupabaseJWTSecret), nil
			}
			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
				return jwksProvider.KeyFunc(token)
			}
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)
		if sub == "" {
			response.Error(c, http.StatusUnauthorized, "Token missing subject", nil)
			c.Abort()
			return
		}

		role := roleFromClaims(claims)

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(string(domain.KeyUserRole), role)

		// Mirror onto the request context so usecases reading typed keys
		// see the same identity regardless of which context they get.
		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, sub)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, email)
		ctx = context.WithValue(ctx, domain.KeyUserRole, role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// roleFromClaims reads the application role Supabase stores in
// app_metadata (set server-side, not user-editable). Tokens without one
// default to candidate.
func roleFromClaims(claims jwt.MapClaims) string {
	if meta, ok := claims["app_metadata"].(map[string]interface{}); ok {
		if role, ok := meta["role"].(string); ok && role != "" {
			return role
		}
	}
	return domain.RoleCandidate
}
