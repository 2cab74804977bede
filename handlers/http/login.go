package httpHandler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionService logs users in and out.
type SessionService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, userID string) error
}

type LoginHandler struct {
	sessions SessionService
}

func NewLoginHandler(sessions SessionService) *LoginHandler {
	return &LoginHandler{sessions: sessions}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/login and returns a bearer token
func (h *LoginHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or Password missing"})
		return
	}

	token, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout handles GET /api/logout
func (h *LoginHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context(), c.GetString(ContextUserID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
