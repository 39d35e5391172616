package delivery

import (
	"errors"
	"net/http"

	"villagehub-backend/internal/device/domain"
	"villagehub-backend/internal/device/repository"
	"villagehub-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

// TokenHandler handles push token registration HTTP requests
type TokenHandler struct {
	tokenRepo repository.TokenRepository
}

// NewTokenHandler creates a new TokenHandler
func NewTokenHandler(repo repository.TokenRepository) *TokenHandler {
	return &TokenHandler{tokenRepo: repo}
}

// RegisterTokenRequest represents the request body for registering a token
type RegisterTokenRequest struct {
	Token    string `json:"token" binding:"required"`
	UserID   string `json:"user_id"`
	Provider string `json:"provider"`
}

// Register upserts a push token keyed by token value
// POST /api/push/register
func (h *TokenHandler) Register(c *gin.Context) {
	var req RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	provider := req.Provider
	switch provider {
	case "":
		provider = domain.ProviderFCM
	case domain.ProviderFCM, domain.ProviderExpo:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider must be fcm or expo"})
		return
	}

	record, err := h.tokenRepo.SaveToken(req.Token, req.UserID, provider)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save token"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// Unregister removes a push token
// DELETE /api/push/:token
func (h *TokenHandler) Unregister(c *gin.Context) {
	err := h.tokenRepo.DeleteToken(c.Param("token"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Token not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token unregistered successfully"})
}

// List returns registered tokens, optionally filtered by user
// GET /api/push?user_id=
func (h *TokenHandler) List(c *gin.Context) {
	userID := c.Query("user_id")

	var (
		tokens []domain.Token
		err    error
	)
	if userID != "" {
		tokens, err = h.tokenRepo.GetTokensByUserID(userID)
	} else {
		tokens, err = h.tokenRepo.GetAll()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tokens"})
		return
	}
	if tokens == nil {
		tokens = []domain.Token{}
	}
	c.JSON(http.StatusOK, tokens)
}
