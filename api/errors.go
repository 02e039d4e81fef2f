package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps domain error kinds to HTTP statuses. The message keeps the
// specific kind so a client can tell "not enough seats" from "not found".
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrDuplicateKey),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInsufficientSeats):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrTransientFailure):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
