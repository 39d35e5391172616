package delivery

import (
	"errors"
	"net/http"

	"villagehub-backend/internal/announcement/usecase"
	"villagehub-backend/pkg/sse"

	"github.com/gin-gonic/gin"
)

// AnnouncementHandler handles announcement-related HTTP requests
type AnnouncementHandler struct {
	announcementUsecase usecase.AnnouncementUsecase
	broker              *sse.Broker
}

// NewAnnouncementHandler creates a new AnnouncementHandler
func NewAnnouncementHandler(uc usecase.AnnouncementUsecase, broker *sse.Broker) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementUsecase: uc,
		broker:              broker,
	}
}

// CreateAnnouncementRequest represents the request body for creating an announcement
type CreateAnnouncementRequest struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content" binding:"required"`
	MediaURL   string `json:"media_url"`
	MediaType  string `json:"media_type"`
	AuthorID   string `json:"author_id" binding:"required"`
	AuthorName string `json:"author_name" binding:"required"`
}

// List returns all announcements, newest first
// GET /api/announcements
func (h *AnnouncementHandler) List(c *gin.Context) {
	items, err := h.announcementUsecase.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load announcements"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create posts a new announcement
// POST /api/announcements
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.announcementUsecase.Create(req.Title, req.Content, req.MediaURL, req.MediaType, req.AuthorID, req.AuthorName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save announcement"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Delete removes an announcement
// DELETE /api/announcements/:id
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	err := h.announcementUsecase.Delete(c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete announcement"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted successfully"})
}

// ToggleLike toggles the caller's like on an announcement
// POST /api/announcements/:id/like
func (h *AnnouncementHandler) ToggleLike(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.announcementUsecase.ToggleLike(c.Param("id"), req.UserID)
	if err != nil {
		h.respondMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// AddComment appends a comment to an announcement
// POST /api/announcements/:id/comments
func (h *AnnouncementHandler) AddComment(c *gin.Context) {
	var req struct {
		AuthorID   string `json:"author_id" binding:"required"`
		AuthorName string `json:"author_name" binding:"required"`
		Text       string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.announcementUsecase.AddComment(c.Param("id"), req.AuthorID, req.AuthorName, req.Text)
	if err != nil {
		h.respondMutationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// AddReply appends a reply to a comment
// POST /api/announcements/:id/comments/:commentId/replies
func (h *AnnouncementHandler) AddReply(c *gin.Context) {
	var req struct {
		AuthorID   string `json:"author_id" binding:"required"`
		AuthorName string `json:"author_name" binding:"required"`
		Text       string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.announcementUsecase.AddReply(c.Param("id"), c.Param("commentId"), req.AuthorID, req.AuthorName, req.Text)
	if err != nil {
		h.respondMutationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// DeleteReply removes a reply from a comment
// DELETE /api/announcements/:id/comments/:commentId/replies/:replyId
func (h *AnnouncementHandler) DeleteReply(c *gin.Context) {
	err := h.announcementUsecase.DeleteReply(c.Param("id"), c.Param("commentId"), c.Param("replyId"))
	if err != nil {
		h.respondMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reply deleted successfully"})
}

// Stream re-emits the full announcement collection on every change
// GET /api/announcements/stream
func (h *AnnouncementHandler) Stream(c *gin.Context) {
	h.broker.Stream(c, usecase.Topic, func() (interface{}, error) {
		return h.announcementUsecase.List()
	})
}

func (h *AnnouncementHandler) respondMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
	case errors.Is(err, usecase.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
	case errors.Is(err, usecase.ErrReplyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reply not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update announcement"})
	}
}
