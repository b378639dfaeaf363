package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
	"rideshare/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// UpdateRatingRequest is the HTTP request body for updating a driver rating.
type UpdateRatingRequest struct {
	Rating *float64 `json:"rating"`
}

// UpdateStatusRequest is the HTTP request body for updating a driver status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Register handles POST /v1/drivers
func (h *DriverHandler) Register(c *gin.Context) {
	var driver domain.Driver
	if err := c.ShouldBindJSON(&driver); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := h.driverService.Register(c.Request.Context(), driver); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, driver)
}

// GetAll handles GET /v1/drivers
func (h *DriverHandler) GetAll(c *gin.Context) {
	drivers, err := h.driverService.List(c.Request.Context())
	respondList(c, drivers, err)
}

// Search handles GET /v1/drivers/search?field=&value=
func (h *DriverHandler) Search(c *gin.Context) {
	field, value, ok := searchQuery(c)
	if !ok {
		return
	}
	drivers, err := h.driverService.Search(c.Request.Context(), field, value)
	respondList(c, drivers, err)
}

// Find handles GET /v1/drivers/find?field=&value=
func (h *DriverHandler) Find(c *gin.Context) {
	field, value, ok := searchQuery(c)
	if !ok {
		return
	}
	driver, err := h.driverService.Find(c.Request.Context(), field, value)
	respondFound(c, driver, err)
}

// UpdateRating handles PUT /v1/drivers/rating?name=
func (h *DriverHandler) UpdateRating(c *gin.Context) {
	name, ok := requiredQuery(c, "name")
	if !ok {
		return
	}

	var req UpdateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Rating == nil {
		respondBadRequest(c, "rating is required")
		return
	}

	n, err := h.driverService.UpdateRating(c.Request.Context(), name, *req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, UpdatedResponse{Updated: n})
}

// UpdateStatus handles PUT /v1/drivers/status?name=
func (h *DriverHandler) UpdateStatus(c *gin.Context) {
	name, ok := requiredQuery(c, "name")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	status, err := domain.ParseCurrentStatus(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	n, err := h.driverService.UpdateStatus(c.Request.Context(), name, status)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, UpdatedResponse{Updated: n})
}

// UpdateField handles PATCH /v1/drivers/fields/:field?name=
func (h *DriverHandler) UpdateField(c *gin.Context) {
	name, ok := requiredQuery(c, "name")
	if !ok {
		return
	}

	var req FieldValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	n, err := h.driverService.UpdateField(c.Request.Context(), name, c.Param("field"), req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, UpdatedResponse{Updated: n})
}

// ClearField handles DELETE /v1/drivers/fields/:field?name=
func (h *DriverHandler) ClearField(c *gin.Context) {
	name, ok := requiredQuery(c, "name")
	if !ok {
		return
	}

	n, err := h.driverService.ClearField(c.Request.Context(), name, c.Param("field"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, UpdatedResponse{Updated: n})
}

// Replace handles PUT /v1/drivers/replace?address=
func (h *DriverHandler) Replace(c *gin.Context) {
	address, ok := requiredQuery(c, "address")
	if !ok {
		return
	}

	var driver domain.Driver
	if err := c.ShouldBindJSON(&driver); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := h.driverService.Replace(c.Request.Context(), address, driver); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, driver)
}
