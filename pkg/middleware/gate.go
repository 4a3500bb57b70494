package middleware

import (
	"context"
	"net/http"

	"github.com/estately/estately/backend/go-services/internal/models"
	"github.com/estately/estately/backend/go-services/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Directory resolves an identity-provider subject to the internal user
// record. A (nil, nil) return means the subject has never synced.
type Directory interface {
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
}

const userKey = "currentUser"

// ResolveUser is the second gate stage: it maps the verified token's subject
// to a directory record and stores it in context. A valid session for a user
// the directory has never seen is an authorization failure (403), not a
// server error.
func ResolveUser(dir Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, ok := TokenSubject(c)
		if !ok {
			metrics.AuthDenied.WithLabelValues("resolve").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "token has no subject"})
			return
		}
		u, err := dir.GetByExternalID(c.Request.Context(), sub)
		if err != nil {
			metrics.AuthDenied.WithLabelValues("resolve").Inc()
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to resolve user"})
			return
		}
		if u == nil {
			metrics.AuthDenied.WithLabelValues("resolve").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "account not provisioned"})
			return
		}
		c.Set(userKey, u)
		c.Next()
	}
}

// CurrentUser returns the directory record attached by ResolveUser. Handlers
// read it once and pass the identity explicitly into service calls.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}

// RequireAdmin is the admin-only policy stage: 403 unless the resolved user
// holds the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok || !u.IsAdmin() {
			metrics.AuthDenied.WithLabelValues("policy_admin").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied. Admin privileges required."})
			return
		}
		metrics.AuthAllowed.WithLabelValues("admin").Inc()
		c.Next()
	}
}

// RequireApproved is the approved-only policy stage: 403 unless the resolved
// user passed admin review.
func RequireApproved() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok || !u.IsApproved() {
			metrics.AuthDenied.WithLabelValues("policy_approved").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Account pending approval. Please wait for admin approval."})
			return
		}
		metrics.AuthAllowed.WithLabelValues("approved").Inc()
		c.Next()
	}
}
