package delivery

import (
	"errors"
	"net/http"

	"villagehub-backend/internal/notification/usecase"
	"villagehub-backend/pkg/sse"

	"github.com/gin-gonic/gin"
)

// NotificationHandler handles app notification HTTP requests
type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
	broker              *sse.Broker
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(uc usecase.NotificationUsecase, broker *sse.Broker) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: uc,
		broker:              broker,
	}
}

// CreateNotificationRequest represents the request body for creating a notification
type CreateNotificationRequest struct {
	RecipientID    string `json:"recipient_id" binding:"required"`
	SenderName     string `json:"sender_name" binding:"required"`
	AnnouncementID string `json:"announcement_id" binding:"required"`
	CommentID      string `json:"comment_id"`
	ReplyID        string `json:"reply_id"`
}

// DirectMessageRequest represents the request body for direct push dispatch
type DirectMessageRequest struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body" binding:"required"`
}

// List returns notifications, newest first
// GET /api/notifications?recipient_id=
func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.notificationUsecase.List(c.Query("recipient_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notifications"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create stores an app notification
// POST /api/notifications
func (h *NotificationHandler) Create(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.notificationUsecase.Create(req.RecipientID, req.SenderName, req.AnnouncementID, req.CommentID, req.ReplyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save notification"})
		return
	}

	c.JSON(http.StatusCreated, n)
}

// MarkRead sets the read flag
// PATCH /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	err := h.notificationUsecase.MarkRead(c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// DispatchDirect pushes a message to a user's devices or one explicit token
// POST /api/messages/direct
func (h *NotificationHandler) DispatchDirect(c *gin.Context) {
	var req DirectMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserID == "" && req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id or token is required"})
		return
	}

	targeted, err := h.notificationUsecase.DispatchDirect(req.UserID, req.Token, req.Title, req.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to dispatch message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"targeted": targeted})
}

// Stream re-emits the full notification list on every change
// GET /api/notifications/stream
func (h *NotificationHandler) Stream(c *gin.Context) {
	h.broker.Stream(c, usecase.Topic, func() (interface{}, error) {
		return h.notificationUsecase.List("")
	})
}
