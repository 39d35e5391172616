package delivery

import (
	"errors"
	"net/http"
	"strings"

	"villagehub-backend/internal/admin/usecase"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles admin gate HTTP requests
type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{adminUsecase: uc}
}

// LoginRequest represents the admin login request body
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login checks the admin password and issues a session token
// POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.adminUsecase.Login(req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin access is not configured"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_admin": true, "token": token})
}

// Verify validates a previously issued admin session token
// GET /api/admin/verify
func (h *AdminHandler) Verify(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
		return
	}

	if err := h.adminUsecase.ValidateToken(parts[1]); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_admin": true})
}
