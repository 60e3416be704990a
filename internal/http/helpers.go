package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alhifz/hifz/internal/progress"
	"github.com/alhifz/hifz/internal/search"
)

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // machine-readable error code
}

// respondError maps core errors onto HTTP statuses: validation -> 400,
// not found -> 404, already tracked / illegal transition -> 409,
// search unavailable -> 503, anything else -> 500 (logged, details
// withheld from the response).
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, search.ErrValidation), errors.Is(err, progress.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "validation"})
	case errors.Is(err, progress.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "not_found"})
	case errors.Is(err, progress.ErrAlreadyTracked):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "already_tracked"})
	case errors.Is(err, progress.ErrIllegalTransition):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "illegal_transition"})
	case errors.Is(err, search.ErrSearchUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error(), Code: "search_unavailable"})
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// uintParam parses a positive integer path parameter.
func uintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name, Code: "validation"})
		return 0, false
	}
	return uint(id), true
}

// intQuery parses an integer query parameter with a default.
func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
