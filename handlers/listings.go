package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/estately/estately/backend/go-services/internal/listing"
	listingsvc "github.com/estately/estately/backend/go-services/internal/listing/service"
	"github.com/estately/estately/backend/go-services/internal/storage"
	"github.com/estately/estately/backend/go-services/pkg/metrics"
	"github.com/estately/estately/backend/go-services/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListingHandler exposes the /api/listings surface.
type ListingHandler struct {
	svc    *listingsvc.Service
	images *storage.ImageStore // nil when image storage is not configured
}

func NewListingHandler(svc *listingsvc.Service, images *storage.ImageStore) *ListingHandler {
	return &ListingHandler{svc: svc, images: images}
}

// Register wires public routes directly and protected routes behind the
// authenticate → resolve → approved-only gate.
func (h *ListingHandler) Register(r *gin.Engine, ver middleware.Verifier, dir middleware.Directory) {
	r.GET("/api/listings", h.List)
	r.GET("/api/listings/:id", h.Get)

	gate := []gin.HandlerFunc{middleware.AuthMiddleware(ver), middleware.ResolveUser(dir), middleware.RequireApproved()}
	protected := r.Group("/api/listings", gate...)
	protected.POST("", h.Create)
	protected.PUT("/:id", h.Update)
	protected.DELETE("/:id", h.Delete)
	if h.images != nil {
		protected.POST("/:id/images/upload-url", h.ImageUploadURL)
	}
}

// queryFilter parses the optional filter parameters. Non-numeric numeric
// filters are rejected instead of silently misquerying.
func queryFilter(c *gin.Context) (listing.Filter, bool) {
	f := listing.Filter{}
	if v := c.Query("propertyType"); v != "" {
		f.PropertyType = &v
	}
	if v := c.Query("city"); v != "" {
		f.City = &v
	}
	if v := c.Query("bedrooms"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "bedrooms must be a number")
			return f, false
		}
		f.Bedrooms = &n
	}
	if v := c.Query("minPrice"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "minPrice must be a number")
			return f, false
		}
		f.MinPrice = &n
	}
	if v := c.Query("maxPrice"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "maxPrice must be a number")
			return f, false
		}
		f.MaxPrice = &n
	}
	return f, true
}

func queryInt(c *gin.Context, name string, def int64) (int64, bool) {
	v := c.Query(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 1 {
		respondError(c, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return n, true
}

// List serves GET /api/listings.
func (h *ListingHandler) List(c *gin.Context) {
	page, ok := queryInt(c, "page", 1)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", listingsvc.DefaultLimit)
	if !ok {
		return
	}
	f, ok := queryFilter(c)
	if !ok {
		return
	}
	result, err := h.svc.ListPage(c.Request.Context(), f, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	metrics.ListingQueries.Inc()
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"data":        result.Items,
		"totalPages":  result.TotalPages,
		"currentPage": result.CurrentPage,
	})
}

// Get serves GET /api/listings/:id.
func (h *ListingHandler) Get(c *gin.Context) {
	l, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, l)
}

type createListingRequest struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Price         *float64         `json:"price"`
	Location      listing.Location `json:"location"`
	PropertyType  string           `json:"propertyType"`
	Bedrooms      *float64         `json:"bedrooms"`
	Bathrooms     *float64         `json:"bathrooms"`
	SquareFootage float64          `json:"squareFootage"`
	Features      []string         `json:"features"`
	Images        []listing.Image  `json:"images"`
	Status        string           `json:"status"`
}

// Create serves POST /api/listings for approved users. Ownership is taken
// from the resolved caller, never from the body.
func (h *ListingHandler) Create(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusInternalServerError, "caller not resolved")
		return
	}
	var req createListingRequest
	if err := decodeStrict(c, &req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Price == nil || req.Bedrooms == nil || req.Bathrooms == nil {
		respondError(c, http.StatusBadRequest, "price, bedrooms and bathrooms are required")
		return
	}
	l := &listing.Listing{
		Title:         req.Title,
		Description:   req.Description,
		Price:         *req.Price,
		Location:      req.Location,
		PropertyType:  req.PropertyType,
		Bedrooms:      *req.Bedrooms,
		Bathrooms:     *req.Bathrooms,
		SquareFootage: req.SquareFootage,
		Features:      req.Features,
		Images:        req.Images,
		Status:        req.Status,
	}
	created, err := h.svc.Create(c.Request.Context(), l, caller.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, created)
}

// Update serves PUT /api/listings/:id; the service enforces the
// owner-or-admin rule.
func (h *ListingHandler) Update(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusInternalServerError, "caller not resolved")
		return
	}
	var patch listing.Patch
	if err := decodeStrict(c, &patch); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), caller.ID, caller.Role, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, updated)
}

// Delete serves DELETE /api/listings/:id; same ownership rule as Update.
func (h *ListingHandler) Delete(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusInternalServerError, "caller not resolved")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), caller.ID, caller.Role); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Listing removed")
}

type uploadURLRequest struct {
	ContentType string `json:"contentType"`
}

// ImageUploadURL serves POST /api/listings/:id/images/upload-url. It mints a
// presigned PUT URL for a new image object; the client uploads directly to
// storage and then records the object URL on the listing via Update.
func (h *ListingHandler) ImageUploadURL(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusInternalServerError, "caller not resolved")
		return
	}
	l, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if l.CreatedBy != caller.ID && !caller.IsAdmin() {
		respondError(c, http.StatusForbidden, "not authorized for this listing")
		return
	}
	var req uploadURLRequest
	if err := decodeStrict(c, &req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	key := "listings/" + l.ID + "/" + uuid.NewString()
	uploadURL, err := h.images.PresignedUploadURL(c.Request.Context(), key, 15*time.Minute)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create upload URL")
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"uploadUrl": uploadURL,
		"objectUrl": h.images.ObjectURL(key),
	})
}
