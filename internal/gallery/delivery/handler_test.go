package delivery

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"villagehub-backend/internal/gallery/domain"
	"villagehub-backend/internal/gallery/repository"
	"villagehub-backend/internal/gallery/usecase"
	"villagehub-backend/pkg/sse"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxBytes = 1024

func newTestRouter(t *testing.T) (*gin.Engine, repository.GalleryRepository, usecase.GalleryUsecase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewGalleryRepository(t.TempDir())
	uc := usecase.NewGalleryUsecase(repo, sse.NewBroker(), testMaxBytes)

	h := NewGalleryHandler(uc, sse.NewBroker())
	r := gin.New()
	r.GET("/api/gallery", h.List)
	r.POST("/api/gallery", h.Create)
	r.DELETE("/api/gallery/:id", h.Delete)
	return r, repo, uc
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateImage(t *testing.T) {
	r, _, uc := newTestRouter(t)

	w := postJSON(r, "/api/gallery", `{"src":"data:image/png;base64,iVBOR","alt":"village square","caption":"Spring market"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	items, err := uc.List()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "village square", items[0].Alt)
}

func TestOversizedImageRejected(t *testing.T) {
	r, _, uc := newTestRouter(t)

	huge := strings.Repeat("A", testMaxBytes+1)
	w := postJSON(r, "/api/gallery", fmt.Sprintf(`{"src":"%s","alt":"too big"}`, huge))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	// Store unchanged
	items, err := uc.List()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeleteUnknownImage(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/gallery/img-unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSeedEntriesSortFirst(t *testing.T) {
	r, repo, uc := newTestRouter(t)

	// Seed entry is older than the upload but must still lead the list
	require.NoError(t, repo.Create(domain.Image{
		ID:        "img-seed",
		Src:       "https://example.com/old-church.jpg",
		Alt:       "the old church",
		Seed:      true,
		CreatedAt: time.Now().Add(-24 * time.Hour),
	}))

	_, err := uc.Create("data:image/png;base64,AAAA", "new well", "", "")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/gallery", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var items []domain.Image
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "img-seed", items[0].ID)
}
