package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	listingsvc "github.com/estately/estately/backend/go-services/internal/listing/service"
	"github.com/estately/estately/backend/go-services/internal/users"
	"github.com/gin-gonic/gin"
)

// All responses use the envelope {success, data|message}.

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": true, "message": msg})
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "message": msg})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, listingsvc.ErrNotFound), errors.Is(err, users.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, listingsvc.ErrForbidden):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, listingsvc.ErrValidation), errors.Is(err, users.ErrValidation):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}

// decodeStrict decodes a JSON request body, rejecting unknown fields so
// malformed or mistyped payload shapes fail loudly instead of being silently
// dropped.
func decodeStrict(c *gin.Context, v interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
