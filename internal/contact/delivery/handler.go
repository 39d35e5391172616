package delivery

import (
	"net/http"

	"villagehub-backend/internal/contact/usecase"
	"villagehub-backend/pkg/sse"

	"github.com/gin-gonic/gin"
)

// ContactHandler handles contact-form HTTP requests
type ContactHandler struct {
	contactUsecase usecase.ContactUsecase
	broker         *sse.Broker
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(uc usecase.ContactUsecase, broker *sse.Broker) *ContactHandler {
	return &ContactHandler{
		contactUsecase: uc,
		broker:         broker,
	}
}

// CreateMessageRequest represents the request body for a contact submission
type CreateMessageRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// List returns all contact messages, newest first (admin listing)
// GET /api/contact
func (h *ContactHandler) List(c *gin.Context) {
	items, err := h.contactUsecase.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create stores a contact-form submission
// POST /api/contact
func (h *ContactHandler) Create(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.contactUsecase.Create(req.Name, req.Email, req.Subject, req.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save message"})
		return
	}

	c.JSON(http.StatusCreated, m)
}

// Stream re-emits the full message list on every change
// GET /api/contact/stream
func (h *ContactHandler) Stream(c *gin.Context) {
	h.broker.Stream(c, usecase.Topic, func() (interface{}, error) {
		return h.contactUsecase.List()
	})
}
