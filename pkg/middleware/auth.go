package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/estately/estately/backend/go-services/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Token is the minimal interface for a verified session token that can
// expose claims.
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on.
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

const claimsKey = "claims"

// AuthMiddleware is the authenticate stage of the gate: it verifies the
// Bearer token with the identity provider's verifier and stores the claims
// map in context. Missing or invalid tokens are rejected with 401 before any
// later stage runs.
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			metrics.AuthDenied.WithLabelValues("authenticate").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing Authorization header"})
			return
		}
		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			metrics.AuthDenied.WithLabelValues("authenticate").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid Authorization header"})
			return
		}

		idToken, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			metrics.AuthDenied.WithLabelValues("authenticate").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			return
		}

		var claims map[string]interface{}
		if err := idToken.Claims(&claims); err != nil {
			metrics.AuthDenied.WithLabelValues("authenticate").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "failed to parse claims"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// TokenSubject returns the subject claim set by AuthMiddleware, if any.
func TokenSubject(c *gin.Context) (string, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return "", false
	}
	cm, ok := v.(map[string]interface{})
	if !ok {
		return "", false
	}
	sub, ok := cm["sub"].(string)
	return sub, ok && sub != ""
}
