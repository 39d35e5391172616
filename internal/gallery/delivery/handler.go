package delivery

import (
	"errors"
	"net/http"

	"villagehub-backend/internal/gallery/usecase"
	"villagehub-backend/pkg/sse"

	"github.com/gin-gonic/gin"
)

// GalleryHandler handles gallery-related HTTP requests
type GalleryHandler struct {
	galleryUsecase usecase.GalleryUsecase
	broker         *sse.Broker
}

// NewGalleryHandler creates a new GalleryHandler
func NewGalleryHandler(uc usecase.GalleryUsecase, broker *sse.Broker) *GalleryHandler {
	return &GalleryHandler{
		galleryUsecase: uc,
		broker:         broker,
	}
}

// CreateImageRequest represents the request body for adding a gallery image
type CreateImageRequest struct {
	Src     string `json:"src" binding:"required"`
	Alt     string `json:"alt" binding:"required"`
	Caption string `json:"caption"`
	Hint    string `json:"hint"`
}

// List returns all gallery images, seed entries first
// GET /api/gallery
func (h *GalleryHandler) List(c *gin.Context) {
	items, err := h.galleryUsecase.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load gallery"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create adds an image to the gallery
// POST /api/gallery
func (h *GalleryHandler) Create(c *gin.Context) {
	var req CreateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	img, err := h.galleryUsecase.Create(req.Src, req.Alt, req.Caption, req.Hint)
	if err != nil {
		if errors.Is(err, usecase.ErrTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image payload exceeds the size limit"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}

	c.JSON(http.StatusCreated, img)
}

// Delete removes a gallery image
// DELETE /api/gallery/:id
func (h *GalleryHandler) Delete(c *gin.Context) {
	err := h.galleryUsecase.Delete(c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}

// Stream re-emits the full gallery on every change
// GET /api/gallery/stream
func (h *GalleryHandler) Stream(c *gin.Context) {
	h.broker.Stream(c, usecase.Topic, func() (interface{}, error) {
		return h.galleryUsecase.List()
	})
}
