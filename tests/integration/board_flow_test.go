//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/janghq/whereabouts-board/internal/api/handlers"
	"github.com/janghq/whereabouts-board/internal/api/middleware"
	"github.com/janghq/whereabouts-board/internal/auth"
	"github.com/janghq/whereabouts-board/internal/board"
	"github.com/janghq/whereabouts-board/internal/feed"
	"github.com/janghq/whereabouts-board/internal/journal"
	"github.com/janghq/whereabouts-board/internal/logging"
	"github.com/janghq/whereabouts-board/internal/models"
	"github.com/janghq/whereabouts-board/pkg/clock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type boardAPI struct {
	router   *gin.Engine
	liveFeed *feed.Feed
}

// newBoardAPI wires the full in-process stack the way the server does,
// minus MySQL and Kafka: engine over a memory store, ring journal, live
// feed, session service, and the real route layout.
func newBoardAPI(t *testing.T) *boardAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clk := clock.NewFixed(time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC))
	logger := logging.NewNoOpLogger()
	liveFeed := feed.New(logger)

	engine := board.NewEngine(board.EngineConfig{
		Store:    board.NewMemoryStore(),
		Journal:  journal.NewRing(100, journal.WithClock(clk)),
		Notifier: liveFeed,
		Clock:    clk,
	})
	sessions := auth.NewService("integration-secret", []string{"boss"}, time.Hour, clk)

	authHandler := handlers.NewAuthHandler(logger, sessions)
	boardHandler := handlers.NewBoardHandler(logger, engine, clk)
	employeeHandler := handlers.NewEmployeeHandler(logger, engine)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/auth/login", authHandler.Login)

	authed := v1.Group("")
	authed.Use(middleware.RequireSession(sessions))
	authed.POST("/board/out", boardHandler.MarkOut)
	authed.POST("/board/return", boardHandler.MarkReturn)
	authed.POST("/board/:id/clear", boardHandler.Clear)
	authed.GET("/board/snapshot", boardHandler.Snapshot)
	authed.GET("/board/logs", boardHandler.RecentLogs)

	admin := authed.Group("/employees")
	admin.Use(middleware.RequireAdmin())
	admin.POST("", employeeHandler.Provision)
	admin.DELETE("/:id", employeeHandler.Retire)

	return &boardAPI{router: router, liveFeed: liveFeed}
}

func (a *boardAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *boardAPI) login(t *testing.T, identity string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/auth/login", "",
		map[string]any{"identity": identity, "credential": "hunter2"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.Token
}

func (a *boardAPI) snapshot(t *testing.T, token string) models.Snapshot {
	t.Helper()
	w := a.do(t, http.MethodGet, "/api/v1/board/snapshot", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestBoardFlow_OutAndBack(t *testing.T) {
	api := newBoardAPI(t)

	adminToken := api.login(t, "boss")
	w := api.do(t, http.MethodPost, "/api/v1/employees", adminToken,
		map[string]any{"name": "kim", "department": "Field Sales", "role": "member"})
	require.Equal(t, http.StatusCreated, w.Code)

	memberToken := api.login(t, "kim")

	// Board subscribers follow the whole trip.
	updates, cancel := api.liveFeed.SubscribeStatus()
	defer cancel()

	w = api.do(t, http.MethodPost, "/api/v1/board/out", memberToken,
		map[string]any{"place": "Client HQ"})
	require.Equal(t, http.StatusOK, w.Code)

	snap := api.snapshot(t, memberToken)
	require.Len(t, snap.Records, 1)
	assert.Equal(t, models.StatusOutbound, snap.Records["kim"].Status)
	assert.Equal(t, "Client HQ", snap.Records["kim"].Place)
	assert.Equal(t, 1, snap.Summary.Counts[models.StatusOutbound])

	w = api.do(t, http.MethodPost, "/api/v1/board/return", memberToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	snap = api.snapshot(t, memberToken)
	assert.Equal(t, models.StatusReturned, snap.Records["kim"].Status)

	// The feed converges on a snapshot with the employee back.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-updates:
			if got.Records["kim"].Status == models.StatusReturned {
				return
			}
		case <-deadline:
			t.Fatal("feed never delivered the returned snapshot")
		}
	}
}

func TestBoardFlow_ClearByAdmin(t *testing.T) {
	api := newBoardAPI(t)

	adminToken := api.login(t, "boss")
	w := api.do(t, http.MethodPost, "/api/v1/employees", adminToken,
		map[string]any{"name": "kim"})
	require.Equal(t, http.StatusCreated, w.Code)

	memberToken := api.login(t, "kim")
	w = api.do(t, http.MethodPost, "/api/v1/board/out", memberToken,
		map[string]any{"place": "Client HQ"})
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/board/kim/clear", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	snap := api.snapshot(t, adminToken)
	require.Len(t, snap.Records, 1)
	assert.Equal(t, models.StatusUnregistered, snap.Records["kim"].Status)
	assert.Empty(t, snap.Records["kim"].Place)
	assert.Nil(t, snap.Records["kim"].OutAt)
}

func TestBoardFlow_JournalRecordsEveryMutation(t *testing.T) {
	api := newBoardAPI(t)

	adminToken := api.login(t, "boss")
	api.do(t, http.MethodPost, "/api/v1/employees", adminToken, map[string]any{"name": "kim"})

	memberToken := api.login(t, "kim")
	api.do(t, http.MethodPost, "/api/v1/board/out", memberToken, map[string]any{"place": "Client HQ"})
	api.do(t, http.MethodPost, "/api/v1/board/return", memberToken, nil)

	w := api.do(t, http.MethodGet, "/api/v1/board/logs", memberToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.LogListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Entries, 3)
	assert.Contains(t, resp.Data.Entries[0].Message, "returned")
	assert.Contains(t, resp.Data.Entries[1].Message, "marked out")
	assert.Contains(t, resp.Data.Entries[2].Message, "provisioned")
}

func TestBoardFlow_RetiredEmployeeCannotMarkOut(t *testing.T) {
	api := newBoardAPI(t)

	adminToken := api.login(t, "boss")
	api.do(t, http.MethodPost, "/api/v1/employees", adminToken, map[string]any{"name": "kim"})

	w := api.do(t, http.MethodDelete, "/api/v1/employees/kim", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	memberToken := api.login(t, "kim")
	w = api.do(t, http.MethodPost, "/api/v1/board/out", memberToken,
		map[string]any{"place": "Client HQ"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Retired employees stay off the roster but keep their record.
	snap := api.snapshot(t, adminToken)
	require.Len(t, snap.Records, 1)
	assert.Equal(t, models.StatusRemoved, snap.Records["kim"].Status)
	assert.Empty(t, snap.Summary.Employees)
}
