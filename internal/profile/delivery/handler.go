package delivery

import (
	"net/http"

	"villagehub-backend/internal/profile/usecase"

	"github.com/gin-gonic/gin"
)

// ProfileHandler handles user profile HTTP requests
type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profileUsecase: uc}
}

// UpsertProfileRequest represents the request body for saving a profile
type UpsertProfileRequest struct {
	Name    string `json:"name" binding:"required"`
	Surname string `json:"surname"`
	Email   string `json:"email" binding:"required,email"`
}

// List returns all user profiles
// GET /api/profiles
func (h *ProfileHandler) List(c *gin.Context) {
	items, err := h.profileUsecase.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profiles"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Upsert inserts or updates a profile keyed by email
// POST /api/profiles
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.profileUsecase.Upsert(req.Name, req.Surname, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, p)
}
