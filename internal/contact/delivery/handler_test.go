package delivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"villagehub-backend/internal/contact/domain"
	"villagehub-backend/internal/contact/repository"
	"villagehub-backend/internal/contact/usecase"
	"villagehub-backend/pkg/sse"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewContactRepository(t.TempDir())
	uc := usecase.NewContactUsecase(repo, sse.NewBroker())

	h := NewContactHandler(uc, sse.NewBroker())
	r := gin.New()
	r.GET("/api/contact", h.List)
	r.POST("/api/contact", h.Create)
	return r
}

func postJSON(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateMessage(t *testing.T) {
	r := newTestRouter(t)

	w := postJSON(r, `{"name":"Anna","email":"anna@example.com","subject":"Street light","body":"The light by the well is broken."}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var m domain.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Street light", m.Subject)
}

func TestCreateMessageValidation(t *testing.T) {
	r := newTestRouter(t)

	// Missing body
	w := postJSON(r, `{"name":"Anna","email":"anna@example.com","subject":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed email
	w = postJSON(r, `{"name":"Anna","email":"not-an-email","subject":"hi","body":"text"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListNewestFirst(t *testing.T) {
	r := newTestRouter(t)

	require.Equal(t, http.StatusCreated, postJSON(r, `{"name":"Anna","email":"anna@example.com","subject":"first","body":"a"}`).Code)
	time.Sleep(2 * time.Millisecond)
	require.Equal(t, http.StatusCreated, postJSON(r, `{"name":"Ben","email":"ben@example.com","subject":"second","body":"b"}`).Code)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/contact", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var items []domain.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Subject)
}
