package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
	"rideshare/internal/service"
)

// RiderHandler handles HTTP requests for riders.
type RiderHandler struct {
	riderService *service.RiderService
}

// NewRiderHandler creates a new RiderHandler.
func NewRiderHandler(riderService *service.RiderService) *RiderHandler {
	return &RiderHandler{riderService: riderService}
}

// Register handles POST /v1/riders
func (h *RiderHandler) Register(c *gin.Context) {
	var rider domain.Rider
	if err := c.ShouldBindJSON(&rider); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := h.riderService.Register(c.Request.Context(), rider); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, rider)
}

// GetAll handles GET /v1/riders
func (h *RiderHandler) GetAll(c *gin.Context) {
	riders, err := h.riderService.List(c.Request.Context())
	respondList(c, riders, err)
}

// Search handles GET /v1/riders/search?field=&value=
func (h *RiderHandler) Search(c *gin.Context) {
	field, value, ok := searchQuery(c)
	if !ok {
		return
	}
	riders, err := h.riderService.Search(c.Request.Context(), field, value)
	respondList(c, riders, err)
}

// Find handles GET /v1/riders/find?field=&value=
func (h *RiderHandler) Find(c *gin.Context) {
	field, value, ok := searchQuery(c)
	if !ok {
		return
	}
	rider, err := h.riderService.Find(c.Request.Context(), field, value)
	respondFound(c, rider, err)
}

// Replace handles PUT /v1/riders/replace?address=
func (h *RiderHandler) Replace(c *gin.Context) {
	address, ok := requiredQuery(c, "address")
	if !ok {
		return
	}

	var rider domain.Rider
	if err := c.ShouldBindJSON(&rider); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := h.riderService.Replace(c.Request.Context(), address, rider); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, rider)
}

// Remove handles DELETE /v1/riders?address=
func (h *RiderHandler) Remove(c *gin.Context) {
	address, ok := requiredQuery(c, "address")
	if !ok {
		return
	}

	removed, err := h.riderService.Remove(c.Request.Context(), address)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, RemovedResponse{Removed: removed})
}

// UpdateField handles PATCH /v1/riders/fields/:field?address=
func (h *RiderHandler) UpdateField(c *gin.Context) {
	address, ok := requiredQuery(c, "address")
	if !ok {
		return
	}

	var req FieldValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	n, err := h.riderService.UpdateField(c.Request.Context(), address, c.Param("field"), req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, UpdatedResponse{Updated: n})
}

// ClearField handles DELETE /v1/riders/fields/:field?address=
func (h *RiderHandler) ClearField(c *gin.Context) {
	address, ok := requiredQuery(c, "address")
	if !ok {
		return
	}

	n, err := h.riderService.ClearField(c.Request.Context(), address, c.Param("field"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, UpdatedResponse{Updated: n})
}
