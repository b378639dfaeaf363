package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
	"rideshare/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// RequestRideRequest is the HTTP request body for requesting a ride.
type RequestRideRequest struct {
	Rider     domain.Rider `json:"rider"`
	Pickup    string       `json:"pickup"`
	Dropoff   string       `json:"dropoff"`
	Timestamp string       `json:"timestamp"`
}

// RequestRide handles POST /v1/rides/request
func (h *RideHandler) RequestRide(c *gin.Context) {
	var req RequestRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	ride, err := h.rideService.RequestRide(c.Request.Context(), service.RequestRideRequest{
		Rider:     req.Rider,
		Pickup:    req.Pickup,
		Dropoff:   req.Dropoff,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, ride)
}

// Register handles POST /v1/rides
func (h *RideHandler) Register(c *gin.Context) {
	var ride domain.Ride
	if err := c.ShouldBindJSON(&ride); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := h.rideService.Register(c.Request.Context(), ride); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, ride)
}

// GetAll handles GET /v1/rides
func (h *RideHandler) GetAll(c *gin.Context) {
	rides, err := h.rideService.List(c.Request.Context())
	respondList(c, rides, err)
}

// Search handles GET /v1/rides/search?field=&value=
func (h *RideHandler) Search(c *gin.Context) {
	field, value, ok := searchQuery(c)
	if !ok {
		return
	}
	rides, err := h.rideService.Search(c.Request.Context(), field, value)
	respondList(c, rides, err)
}

// Find handles GET /v1/rides/find?field=&value=
func (h *RideHandler) Find(c *gin.Context) {
	field, value, ok := searchQuery(c)
	if !ok {
		return
	}
	ride, err := h.rideService.Find(c.Request.Context(), field, value)
	respondFound(c, ride, err)
}

// Replace handles PUT /v1/rides/replace?rideid=
func (h *RideHandler) Replace(c *gin.Context) {
	rideID, ok := requiredQuery(c, "rideid")
	if !ok {
		return
	}

	var ride domain.Ride
	if err := c.ShouldBindJSON(&ride); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := h.rideService.Replace(c.Request.Context(), rideID, ride); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ride)
}

// Remove handles DELETE /v1/rides?rideid=
func (h *RideHandler) Remove(c *gin.Context) {
	rideID, ok := requiredQuery(c, "rideid")
	if !ok {
		return
	}

	removed, err := h.rideService.Remove(c.Request.Context(), rideID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, RemovedResponse{Removed: removed})
}

// UpdateField handles PATCH /v1/rides/fields/:field?rideid=
func (h *RideHandler) UpdateField(c *gin.Context) {
	rideID, ok := requiredQuery(c, "rideid")
	if !ok {
		return
	}

	var req FieldValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	n, err := h.rideService.UpdateField(c.Request.Context(), rideID, c.Param("field"), req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, UpdatedResponse{Updated: n})
}

// ClearField handles DELETE /v1/rides/fields/:field?rideid=
func (h *RideHandler) ClearField(c *gin.Context) {
	rideID, ok := requiredQuery(c, "rideid")
	if !ok {
		return
	}

	n, err := h.rideService.ClearField(c.Request.Context(), rideID, c.Param("field"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, UpdatedResponse{Updated: n})
}

// UpdateDriver handles PUT /v1/rides/driver?rideid=
func (h *RideHandler) UpdateDriver(c *gin.Context) {
	rideID, ok := requiredQuery(c, "rideid")
	if !ok {
		return
	}

	var driver domain.Driver
	if err := c.ShouldBindJSON(&driver); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	n, err := h.rideService.UpdateDriverForRide(c.Request.Context(), rideID, driver)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, UpdatedResponse{Updated: n})
}

// UpdateRider handles PUT /v1/rides/rider?rideid=
func (h *RideHandler) UpdateRider(c *gin.Context) {
	rideID, ok := requiredQuery(c, "rideid")
	if !ok {
		return
	}

	var rider domain.Rider
	if err := c.ShouldBindJSON(&rider); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	n, err := h.rideService.UpdateRiderForRide(c.Request.Context(), rideID, rider)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, UpdatedResponse{Updated: n})
}
