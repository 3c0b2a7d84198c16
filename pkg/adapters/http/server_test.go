package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/labyrinth/internal/logging"
	"github.com/aretw0/labyrinth/pkg/adapters/memory"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/observability"
	"github.com/aretw0/labyrinth/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	loader := memory.NewLoader(map[string]string{
		"small":   "A  \n ##\n  B",
		"blocked": "A#B",
		"broken":  "A A B",
	})
	mgr := session.NewManager(memory.NewStore(), loader)
	return NewHandler(mgr, loader, opts...)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func TestHealthAndInfo(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, h, "GET", "/info", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	info := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "labyrinth-http", info["app"])
	assert.Len(t, info["strategies"], 4)
}

func TestMazes(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, "GET", "/mazes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"blocked", "broken", "small"}, decodeBody[[]string](t, rec))

	rec = do(t, h, "GET", "/mazes/small", "")
	require.Equal(t, http.StatusOK, rec.Code)
	m := decodeBody[domain.Maze](t, rec)
	assert.Equal(t, 3, m.Height)
	assert.Equal(t, 3, m.Width)
	assert.Equal(t, domain.Cell{Row: 2, Col: 2}, m.Goal)
	assert.True(t, m.Walls[1][1])

	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/mazes/nope", "").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, "GET", "/mazes/broken", "").Code)
}

func TestSolveMaze(t *testing.T) {
	metrics := observability.NewMetrics(nil)
	h := newTestHandler(t, WithLifecycleHooks(metrics.Hooks()), WithMetrics(metrics.Handler()))

	rec := do(t, h, "POST", "/mazes/small/solve", `{"strategy":"bfs"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[SolveResponse](t, rec)
	assert.True(t, resp.Found)
	assert.Equal(t, []domain.Action{domain.ActionDown, domain.ActionDown, domain.ActionRight, domain.ActionRight}, resp.Actions)
	assert.Len(t, resp.Cells, 4)
	assert.Equal(t, 4, resp.PathLength)
	assert.Equal(t, 7, resp.NumExplored)

	// Empty body falls back to breadth-first.
	rec = do(t, h, "POST", "/mazes/small/solve", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.StrategyBFS, decodeBody[SolveResponse](t, rec).Strategy)

	rec = do(t, h, "POST", "/mazes/blocked/solve", `{"strategy":"astar"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeBody[SolveResponse](t, rec)
	assert.False(t, resp.Found)
	assert.Empty(t, resp.Actions)

	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/mazes/small/solve", `{"strategy":"zigzag"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/mazes/small/solve", `{bad json`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "POST", "/mazes/nope/solve", `{}`).Code)

	rec = do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `labyrinth_searches_total{strategy="bfs"} 2`)
}

func TestSessionLifecycle(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, "POST", "/sessions", `{"maze":"small","strategy":"dfs"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[SessionResponse](t, rec)
	id := created.Session.ID
	require.NotEmpty(t, id)
	assert.Equal(t, domain.StatusSearching, created.Snapshot.Status)

	rec = do(t, h, "POST", "/sessions/"+id+"/step", `{"count":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	stepped := decodeBody[SessionResponse](t, rec)
	assert.Equal(t, 2, stepped.Session.Steps)
	assert.Equal(t, 2, stepped.Snapshot.NumExplored)

	// Empty body steps once.
	rec = do(t, h, "POST", "/sessions/"+id+"/step", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decodeBody[SessionResponse](t, rec).Session.Steps)

	rec = do(t, h, "POST", "/sessions/"+id+"/move", `{"direction":"down"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Cell{Row: 1, Col: 0}, decodeBody[SessionResponse](t, rec).Snapshot.Player)

	rec = do(t, h, "GET", "/sessions/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[SessionResponse](t, rec)
	assert.Equal(t, 3, got.Snapshot.Steps)
	assert.Equal(t, domain.Cell{Row: 1, Col: 0}, got.Snapshot.Player)

	rec = do(t, h, "GET", "/sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{id}, decodeBody[[]string](t, rec))

	assert.Equal(t, http.StatusNoContent, do(t, h, "DELETE", "/sessions/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/sessions/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "DELETE", "/sessions/"+id, "").Code)
}

func TestSessionErrors(t *testing.T) {
	h := newTestHandler(t)

	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/sessions", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/sessions", `{"maze":"small","strategy":"nope"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "POST", "/sessions", `{"maze":"nope"}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, "POST", "/sessions", `{"maze":"broken"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, "POST", "/sessions/missing/step", `{}`).Code)

	rec := do(t, h, "POST", "/sessions", `{"maze":"small"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody[SessionResponse](t, rec).Session.ID

	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/sessions/"+id+"/move", `{"direction":"diagonal"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "POST", "/sessions/"+id+"/step", `{"count":-1}`).Code)
}

func TestCORSPreflight(t *testing.T) {
	rec := do(t, newTestHandler(t), "OPTIONS", "/sessions", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents_Session(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(t))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/sessions", "application/json", bytes.NewBufferString(`{"maze":"small"}`))
	require.NoError(t, err)
	var created SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	id := created.Session.ID

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", srv.URL+"/sessions/"+id+"/events", nil)
	require.NoError(t, err)
	stream, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer stream.Body.Close()
	require.Equal(t, http.StatusOK, stream.StatusCode)

	lines := bufio.NewScanner(stream.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: ping", lines.Text())

	// The ping is flushed after subscribing, so this step is seen by the stream.
	stepResp, err := http.Post(srv.URL+"/sessions/"+id+"/step", "application/json", bytes.NewBufferString(`{"count":1}`))
	require.NoError(t, err)
	stepResp.Body.Close()

	var data string
	for lines.Scan() {
		if strings.HasPrefix(lines.Text(), "data: {") {
			data = strings.TrimPrefix(lines.Text(), "data: ")
			break
		}
	}
	require.NotEmpty(t, data)

	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(data), &snap))
	assert.Equal(t, 1, snap.Steps)
}

func TestSubscribeEvents_UnknownSession(t *testing.T) {
	rec := do(t, newTestHandler(t), "GET", "/sessions/missing/events", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStreamManager(t *testing.T) {
	sm := NewStreamManager(logging.NewNop())
	ch, unsubscribe := sm.Subscribe("s1")
	assert.Equal(t, 1, sm.Subscribers("s1"))

	sm.Broadcast("s1", "hello")
	assert.Equal(t, "hello", <-ch)

	sm.Close("s1")
	_, open := <-ch
	assert.False(t, open)

	// Unsubscribing after Close must not panic on a closed channel.
	assert.NotPanics(t, unsubscribe)
	assert.Zero(t, sm.Subscribers("s1"))
}
