package delivery

import (
	"net/http"

	"villagehub-backend/internal/stats/repository"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// StatsHandler handles entry-count HTTP requests
type StatsHandler struct {
	statsRepo repository.StatsRepository
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(repo repository.StatsRepository) *StatsHandler {
	return &StatsHandler{statsRepo: repo}
}

// Get returns the current entry count
// GET /api/stats/entries
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.statsRepo.Get()
	if err != nil {
		log.Errorf("[Stats] load entry stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load entry stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Increment bumps the entry counter (called once per login)
// POST /api/stats/entries
func (h *StatsHandler) Increment(c *gin.Context) {
	stats, err := h.statsRepo.Increment()
	if err != nil {
		log.Errorf("[Stats] increment entry stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save entry stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
