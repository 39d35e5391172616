package delivery

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"villagehub-backend/internal/announcement/domain"
	"villagehub-backend/internal/announcement/repository"
	"villagehub-backend/internal/announcement/usecase"
	"villagehub-backend/pkg/sse"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notifierSpy struct {
	recipientID string
	senderName  string
	calls       int
}

func (n *notifierSpy) NotifyReply(recipientID, senderName, announcementID, commentID, replyID string) {
	n.recipientID = recipientID
	n.senderName = senderName
	n.calls++
}

func newTestRouter(t *testing.T) (*gin.Engine, usecase.AnnouncementUsecase, *notifierSpy) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewAnnouncementRepository(t.TempDir())
	uc := usecase.NewAnnouncementUsecase(repo, sse.NewBroker())
	spy := &notifierSpy{}
	uc.SetReplyNotifier(spy)

	h := NewAnnouncementHandler(uc, sse.NewBroker())
	r := gin.New()
	r.GET("/api/announcements", h.List)
	r.POST("/api/announcements", h.Create)
	r.DELETE("/api/announcements/:id", h.Delete)
	r.POST("/api/announcements/:id/like", h.ToggleLike)
	r.POST("/api/announcements/:id/comments", h.AddComment)
	r.POST("/api/announcements/:id/comments/:commentId/replies", h.AddReply)
	r.DELETE("/api/announcements/:id/comments/:commentId/replies/:replyId", h.DeleteReply)
	return r, uc, spy
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAnnouncementAppearsFirst(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := postJSON(r, "/api/announcements", `{"title":"Road works","content":"Main street closed","author_id":"u1","author_name":"Mayor"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	time.Sleep(2 * time.Millisecond) // ids/timestamps are millisecond-grained
	w = postJSON(r, "/api/announcements", `{"title":"Harvest fest","content":"Saturday at noon","author_id":"u1","author_name":"Mayor"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/announcements", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var items []domain.Announcement
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Harvest fest", items[0].Title, "newest announcement must come first")
}

func TestCreateAnnouncementMissingFields(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := postJSON(r, "/api/announcements", `{"title":"no content"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/api/announcements", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUnknownAnnouncement(t *testing.T) {
	r, uc, _ := newTestRouter(t)

	created, err := uc.Create("Keep me", "content", "", "", "u1", "Mayor")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/announcements/ann-unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Store unchanged
	items, err := uc.List()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)
}

func TestToggleLike(t *testing.T) {
	r, uc, _ := newTestRouter(t)
	created, err := uc.Create("Likeable", "content", "", "", "u1", "Mayor")
	require.NoError(t, err)

	path := fmt.Sprintf("/api/announcements/%s/like", created.ID)

	w := postJSON(r, path, `{"user_id":"villager-7"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var item domain.Announcement
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, []string{"villager-7"}, item.Likes)

	// Second toggle removes the like
	w = postJSON(r, path, `{"user_id":"villager-7"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Empty(t, item.Likes)
}

func TestReplyNotifiesCommentAuthor(t *testing.T) {
	r, uc, spy := newTestRouter(t)
	created, err := uc.Create("Discussed", "content", "", "", "u1", "Mayor")
	require.NoError(t, err)

	w := postJSON(r, fmt.Sprintf("/api/announcements/%s/comments", created.ID),
		`{"author_id":"villager-1","author_name":"Anna","text":"When does it start?"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var item domain.Announcement
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	require.Len(t, item.Comments, 1)
	commentID := item.Comments[0].ID

	w = postJSON(r, fmt.Sprintf("/api/announcements/%s/comments/%s/replies", created.ID, commentID),
		`{"author_id":"villager-2","author_name":"Ben","text":"At noon."}`)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, 1, spy.calls)
	assert.Equal(t, "villager-1", spy.recipientID)
	assert.Equal(t, "Ben", spy.senderName)
}

func TestReplyToOwnCommentStaysSilent(t *testing.T) {
	r, uc, spy := newTestRouter(t)
	created, err := uc.Create("Quiet", "content", "", "", "u1", "Mayor")
	require.NoError(t, err)

	w := postJSON(r, fmt.Sprintf("/api/announcements/%s/comments", created.ID),
		`{"author_id":"villager-1","author_name":"Anna","text":"Note to self"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var item domain.Announcement
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	commentID := item.Comments[0].ID

	w = postJSON(r, fmt.Sprintf("/api/announcements/%s/comments/%s/replies", created.ID, commentID),
		`{"author_id":"villager-1","author_name":"Anna","text":"Follow-up"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, 0, spy.calls)
}

func TestReplyToUnknownComment(t *testing.T) {
	r, uc, _ := newTestRouter(t)
	created, err := uc.Create("No comments", "content", "", "", "u1", "Mayor")
	require.NoError(t, err)

	w := postJSON(r, fmt.Sprintf("/api/announcements/%s/comments/cmt-missing/replies", created.ID),
		`{"author_id":"villager-2","author_name":"Ben","text":"hello?"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFailedReplyDoesNotBroadcast(t *testing.T) {
	gin.SetMode(gin.TestMode)
	broker := sse.NewBroker()
	repo := repository.NewAnnouncementRepository(t.TempDir())
	uc := usecase.NewAnnouncementUsecase(repo, broker)

	h := NewAnnouncementHandler(uc, broker)
	r := gin.New()
	r.POST("/api/announcements/:id/comments/:commentId/replies", h.AddReply)
	r.DELETE("/api/announcements/:id/comments/:commentId/replies/:replyId", h.DeleteReply)

	created, err := uc.Create("Quiet failures", "content", "", "", "u1", "Mayor")
	require.NoError(t, err)

	ch := broker.Subscribe(usecase.Topic)
	defer broker.Unsubscribe(usecase.Topic, ch)

	w := postJSON(r, fmt.Sprintf("/api/announcements/%s/comments/cmt-missing/replies", created.ID),
		`{"author_id":"villager-2","author_name":"Ben","text":"hello?"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE",
		fmt.Sprintf("/api/announcements/%s/comments/cmt-missing/replies/rpl-missing", created.ID), nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	// Neither failed mutation may rewrite the store or emit a snapshot.
	select {
	case <-ch:
		t.Fatal("broadcast fired for a rejected mutation")
	case <-time.After(50 * time.Millisecond):
	}

	items, err := uc.List()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Empty(t, items[0].Comments)
}

func TestDeleteReply(t *testing.T) {
	r, uc, _ := newTestRouter(t)
	created, err := uc.Create("Moderated", "content", "", "", "u1", "Mayor")
	require.NoError(t, err)

	withComment, err := uc.AddComment(created.ID, "villager-1", "Anna", "first")
	require.NoError(t, err)
	commentID := withComment.Comments[0].ID

	withReply, err := uc.AddReply(created.ID, commentID, "villager-2", "Ben", "rude reply")
	require.NoError(t, err)
	replyID := withReply.Comments[0].Replies[0].ID

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE",
		fmt.Sprintf("/api/announcements/%s/comments/%s/replies/%s", created.ID, commentID, replyID), nil))
	require.Equal(t, http.StatusOK, w.Code)

	items, err := uc.List()
	require.NoError(t, err)
	assert.Empty(t, items[0].Comments[0].Replies)
}
