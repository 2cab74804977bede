package httpHandler

import (
	"errors"
	"net/http"

	"marketplace-server/auth"
	"marketplace-server/repositories"
	"marketplace-server/usecases"
	"marketplace-server/ws"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, usecases.ErrValidation),
		errors.Is(err, ws.ErrDecode),
		errors.Is(err, repositories.ErrInvalidReference):
		return http.StatusBadRequest
	case errors.Is(err, usecases.ErrInvalidLogin),
		errors.Is(err, usecases.ErrRevoked),
		errors.Is(err, auth.ErrInvalidCredential),
		errors.Is(err, auth.ErrExpiredCredential):
		return http.StatusUnauthorized
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repositories.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": ...} with the status matching err. Internal
// errors are attached to the gin context for the request logger and not
// echoed to the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
}
