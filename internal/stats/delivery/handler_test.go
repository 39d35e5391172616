package delivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"villagehub-backend/internal/stats/domain"
	"villagehub-backend/internal/stats/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataDir := t.TempDir()
	h := NewStatsHandler(repository.NewStatsRepository(dataDir))
	r := gin.New()
	r.GET("/api/stats/entries", h.Get)
	r.POST("/api/stats/entries", h.Increment)
	return r, dataDir
}

func getCount(t *testing.T, r *gin.Engine) int64 {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/stats/entries", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var stats domain.EntryStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	return stats.Count
}

func TestIncrementTwice(t *testing.T) {
	r, _ := newTestRouter(t)

	start := getCount(t, r)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("POST", "/api/stats/entries", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, start+2, getCount(t, r))
}

func TestIncrementRevertsWhenSaveFails(t *testing.T) {
	r, dataDir := newTestRouter(t)

	// Prime the counter
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/stats/entries", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(1), getCount(t, r))

	// Block the temp file slot so the next save fails
	blocked := filepath.Join(dataDir, "entry_stats.json.tmp")
	require.NoError(t, os.Mkdir(blocked, 0o755))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/stats/entries", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, int64(1), getCount(t, r), "failed increment must be reverted")

	// Counter resumes once saving works again
	require.NoError(t, os.Remove(blocked))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/stats/entries", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), getCount(t, r))
}
