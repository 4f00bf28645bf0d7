// Package bearer は不透明トークンによるBearer認証ミドルウェアを提供します。
package bearer

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"account_backend/internal/feature/auth/usecase"
)

// ContextUserID は認証済みユーザーIDを格納するgin.Contextのキーです。
const ContextUserID = "userID"

// Authenticator はトークンキーを所有ユーザーのIDに解決します。
type Authenticator interface {
	Authenticate(ctx context.Context, key string) (uint, error)
}

// AuthRequired returns a Gin middleware function that resolves the bearer key
// and restricts access to authenticated users only.
// Both "Bearer <key>" and "Token <key>" are accepted.
func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		key, ok := parseAuthorization(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		// 2. Resolve the key to its owner
		userID, err := auth.Authenticate(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, usecase.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			slog.Error("token authentication failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		// 3. Pass control to the next handler
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by AuthRequired.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// parseAuthorization extracts the key from "Bearer <key>" or "Token <key>".
// The scheme is case-sensitive and the key must be a single non-empty word.
func parseAuthorization(header string) (string, bool) {
	scheme, key, found := strings.Cut(header, " ")
	if !found || (scheme != "Bearer" && scheme != "Token") {
		return "", false
	}
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", false
	}
	return key, true
}
