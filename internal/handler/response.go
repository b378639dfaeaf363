package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
	"rideshare/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UpdatedResponse reports how many records a field update touched.
type UpdatedResponse struct {
	Updated int `json:"updated"`
}

// RemovedResponse reports whether a remove found a record.
type RemovedResponse struct {
	Removed bool `json:"removed"`
}

// FieldValueRequest is the HTTP request body for setting one field.
type FieldValueRequest struct {
	Value string `json:"value"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// respondFound sends the record, or a 404 when the lookup matched nothing.
func respondFound[T any](c *gin.Context, rec *T, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	if rec == nil {
		respondError(c, repository.ErrNotFound)
		return
	}
	respondJSON(c, http.StatusOK, rec)
}

// respondList sends records as a JSON array, never null.
func respondList[T any](c *gin.Context, recs []T, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	if recs == nil {
		recs = []T{}
	}
	respondJSON(c, http.StatusOK, recs)
}

// requiredQuery returns a query parameter that must be present but may be empty.
func requiredQuery(c *gin.Context, name string) (string, bool) {
	value, ok := c.GetQuery(name)
	if !ok {
		respondBadRequest(c, "query parameter "+name+" is required")
	}
	return value, ok
}

// searchQuery returns the field and value query parameters of a search.
func searchQuery(c *gin.Context) (field, value string, ok bool) {
	if field, ok = requiredQuery(c, "field"); !ok {
		return "", "", false
	}
	if value, ok = requiredQuery(c, "value"); !ok {
		return "", "", false
	}
	return field, value, true
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	var parseErr *domain.ParseError

	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, domain.ErrInvalidFieldName),
		errors.Is(err, domain.ErrFieldReadOnly),
		errors.Is(err, service.ErrInvalidRating),
		errors.As(err, &parseErr):
		return http.StatusBadRequest

	// Missing caller identity
	case errors.Is(err, service.ErrInvalidCaller):
		return http.StatusUnauthorized

	// Service unavailable
	case errors.Is(err, service.ErrNoAvailableDriver),
		errors.Is(err, service.ErrStoreBusy):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
