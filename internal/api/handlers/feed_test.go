package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/janghq/whereabouts-board/internal/feed"
	"github.com/janghq/whereabouts-board/internal/logging"
	"github.com/janghq/whereabouts-board/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// sseRecorder adds the CloseNotify gin's Stream requires of the
// response writer.
type sseRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newSSERecorder() *sseRecorder {
	return &sseRecorder{
		ResponseRecorder: httptest.NewRecorder(),
		closed:           make(chan bool, 1),
	}
}

func (r *sseRecorder) CloseNotify() <-chan bool { return r.closed }

func streamOnce(t *testing.T, router *gin.Engine, path string) *sseRecorder {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, path, nil).WithContext(ctx)
	w := newSSERecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		router.ServeHTTP(w, req)
	}()

	// Let the first buffered event flush, then disconnect.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not terminate after disconnect")
	}
	return w
}

func TestStreamStatus_DeliversCurrentSnapshotFirst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := feed.New(nil)
	f.PublishSnapshot(models.Snapshot{
		Records: map[string]models.Record{"kim": {EmployeeID: "kim", Status: models.StatusOutbound}},
		TakenAt: midWorkday,
	})

	router := gin.New()
	router.GET("/api/v1/feed/status", NewFeedHandler(logging.NewNoOpLogger(), f).StreamStatus)

	w := streamOnce(t, router, "/api/v1/feed/status")

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "event:status")
	assert.Contains(t, w.Body.String(), "\"employee_id\":\"kim\"")
}

func TestStreamLogs_DeliversCurrentTailFirst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := feed.New(nil)
	f.PublishLogs([]models.LogEntry{{ID: "1", Actor: "kim", Message: "kim returned"}})

	router := gin.New()
	router.GET("/api/v1/feed/logs", NewFeedHandler(logging.NewNoOpLogger(), f).StreamLogs)

	w := streamOnce(t, router, "/api/v1/feed/logs")

	assert.Contains(t, w.Body.String(), "event:logs")
	assert.Contains(t, w.Body.String(), "kim returned")
}
