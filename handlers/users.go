package handlers

import (
	"net/http"

	"github.com/estately/estately/backend/go-services/internal/users"
	"github.com/estately/estately/backend/go-services/pkg/logger"
	"github.com/estately/estately/backend/go-services/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// UserHandler exposes the /api/users surface: the provider sync webhook, the
// caller's profile, and the admin console operations.
type UserHandler struct {
	svc *users.Service
}

func NewUserHandler(svc *users.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Register(r *gin.Engine, ver middleware.Verifier, dir middleware.Directory) {
	// webhook: authenticated by the provider's signature at the edge, no user
	// session involved
	r.POST("/api/users/sync", h.Sync)

	authn := middleware.AuthMiddleware(ver)
	resolve := middleware.ResolveUser(dir)

	r.GET("/api/users/profile", authn, resolve, middleware.RequireApproved(), h.Profile)

	admin := r.Group("/api/users", authn, resolve, middleware.RequireAdmin())
	admin.GET("", h.List)
	admin.PATCH("/:id/status", h.SetStatus)
	admin.PATCH("/:id/role", h.SetRole)
}

// Sync serves the identity provider's user-change webhook.
func (h *UserHandler) Sync(c *gin.Context) {
	var payload users.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "invalid webhook payload: "+err.Error())
		return
	}
	u, err := h.svc.Sync(c.Request.Context(), payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	logger.Debugf("directory sync: externalId=%s", u.ExternalID)
	respondData(c, http.StatusOK, u)
}

// Profile returns the caller's own directory record.
func (h *UserHandler) Profile(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusInternalServerError, "caller not resolved")
		return
	}
	respondData(c, http.StatusOK, caller)
}

// List returns every directory record (admin console).
func (h *UserHandler) List(c *gin.Context) {
	all, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, all)
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus serves PATCH /api/users/:id/status.
func (h *UserHandler) SetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := decodeStrict(c, &req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	u, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, u)
}

type setRoleRequest struct {
	Role string `json:"role"`
}

// SetRole serves PATCH /api/users/:id/role.
func (h *UserHandler) SetRole(c *gin.Context) {
	var req setRoleRequest
	if err := decodeStrict(c, &req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	u, err := h.svc.SetRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, u)
}
