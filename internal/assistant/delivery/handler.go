package delivery

import (
	"net/http"

	"villagehub-backend/pkg/gemini"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AssistantHandler proxies the AI chat and weather flows. Each request is a
// single call-through to the hosted model: no retries, no caching, no
// server-side conversation state.
type AssistantHandler struct {
	geminiService *gemini.GeminiService
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(svc *gemini.GeminiService) *AssistantHandler {
	return &AssistantHandler{geminiService: svc}
}

// ChatRequest represents the assistant chat request body
type ChatRequest struct {
	Message string            `json:"message" binding:"required"`
	History []gemini.ChatTurn `json:"history"`
}

// WeatherRequest represents the weather summary request body
type WeatherRequest struct {
	Location string `json:"location" binding:"required"`
}

// Chat answers a visitor question
// POST /api/assistant/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	if h.geminiService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is not configured"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.geminiService.Chat(c.Request.Context(), req.Message, req.History)
	if err != nil {
		log.Errorf("[Assistant] chat: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assistant is unavailable right now"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// Weather returns a typed weather blurb for the village
// POST /api/assistant/weather
func (h *AssistantHandler) Weather(c *gin.Context) {
	if h.geminiService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is not configured"})
		return
	}

	var req WeatherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.geminiService.SummarizeWeather(c.Request.Context(), req.Location)
	if err != nil {
		log.Errorf("[Assistant] weather: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "weather summary is unavailable right now"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
