package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/labyrinth"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/ports"
	"github.com/aretw0/labyrinth/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes bounds request bodies; every request body here is a tiny JSON object.
const maxBodyBytes = 1 << 16

// Server serves mazes, one-shot solves and steppable sessions over HTTP.
type Server struct {
	Sessions *session.Manager
	Loader   ports.MazeLoader
	Streams  *StreamManager

	hooks   domain.LifecycleHooks
	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLifecycleHooks registers hooks for the one-shot solve endpoint.
// Session steps use the hooks of the session.Manager.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// WithMetrics mounts h on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates the HTTP handler of the API.
func NewHandler(sessions *session.Manager, loader ports.MazeLoader, opts ...Option) http.Handler {
	server := &Server{
		Sessions: sessions,
		Loader:   loader,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}
	server.Streams = NewStreamManager(server.logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}

	r.Route("/mazes", func(r chi.Router) {
		r.Get("/", server.ListMazes)
		r.Get("/{name}", server.GetMaze)
		r.Post("/{name}/solve", server.SolveMaze)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", server.CreateSession)
		r.Get("/", server.ListSessions)
		r.Get("/{id}", server.GetSession)
		r.Delete("/{id}", server.DeleteSession)
		r.Post("/{id}/step", server.StepSession)
		r.Post("/{id}/move", server.MoveSession)
		r.Get("/{id}/events", server.SubscribeEvents)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":        "labyrinth-http",
		"version":    strings.TrimSpace(labyrinth.Version),
		"strategies": domain.Strategies,
	})
}

// ListMazes handles the GET /mazes request.
func (s *Server) ListMazes(w http.ResponseWriter, r *http.Request) {
	names, err := s.Loader.ListMazes()
	if err != nil {
		s.writeError(w, "ListMazes", err)
		return
	}
	s.writeJSON(w, http.StatusOK, names)
}

// GetMaze handles the GET /mazes/{name} request.
func (s *Server) GetMaze(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	eng := labyrinth.New(s.Loader, labyrinth.WithLogger(s.logger))
	if err := eng.Load(r.Context(), name); err != nil {
		s.writeError(w, "GetMaze", err)
		return
	}
	s.writeJSON(w, http.StatusOK, eng.Maze())
}

// SolveMaze handles the POST /mazes/{name}/solve request.
func (s *Server) SolveMaze(w http.ResponseWriter, r *http.Request) {
	var body SolveRequest
	if !s.decode(w, r, &body) {
		return
	}
	strategy, err := parseStrategy(body.Strategy)
	if err != nil {
		s.writeError(w, "SolveMaze", err)
		return
	}

	name := chi.URLParam(r, "name")
	eng := labyrinth.New(s.Loader, labyrinth.WithLogger(s.logger), labyrinth.WithLifecycleHooks(s.hooks))
	if err := eng.Load(r.Context(), name); err != nil {
		s.writeError(w, "SolveMaze", err)
		return
	}

	found, err := eng.Solve(r.Context(), strategy)
	if err != nil {
		s.writeError(w, "SolveMaze", err)
		return
	}

	snap := eng.Snapshot()
	resp := SolveResponse{
		Maze:        name,
		Strategy:    strategy,
		Found:       found,
		Actions:     []domain.Action{},
		Cells:       []domain.Cell{},
		NumExplored: snap.NumExplored,
	}
	if snap.Solution != nil {
		resp.Actions = snap.Solution.Actions
		resp.Cells = snap.Solution.Cells
		resp.PathLength = snap.Solution.Len()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// CreateSession handles the POST /sessions request.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.Maze == "" {
		http.Error(w, "maze is required", http.StatusBadRequest)
		return
	}
	strategy, err := parseStrategy(body.Strategy)
	if err != nil {
		s.writeError(w, "CreateSession", err)
		return
	}

	sess, snap, err := s.Sessions.Create(r.Context(), body.Maze, strategy)
	if err != nil {
		s.writeError(w, "CreateSession", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, SessionResponse{Session: sess, Snapshot: snap})
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, "ListSessions", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		s.writeError(w, "GetSession", err)
		return
	}
	snap, err := s.Sessions.Snapshot(r.Context(), id)
	if err != nil {
		s.writeError(w, "GetSession", err)
		return
	}
	s.writeJSON(w, http.StatusOK, SessionResponse{Session: sess, Snapshot: snap})
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, "DeleteSession", err)
		return
	}
	s.Streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

// StepSession handles the POST /sessions/{id}/step request.
func (s *Server) StepSession(w http.ResponseWriter, r *http.Request) {
	var body StepRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.Count < 0 {
		http.Error(w, "count must not be negative", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	sess, snap, err := s.Sessions.Step(r.Context(), id, body.Count)
	if err != nil {
		s.writeError(w, "StepSession", err)
		return
	}
	s.broadcast(id, snap)
	s.writeJSON(w, http.StatusOK, SessionResponse{Session: sess, Snapshot: snap})
}

// MoveSession handles the POST /sessions/{id}/move request.
func (s *Server) MoveSession(w http.ResponseWriter, r *http.Request) {
	var body MoveRequest
	if !s.decode(w, r, &body) {
		return
	}
	action, err := domain.ParseAction(body.Direction)
	if err != nil {
		s.writeError(w, "MoveSession", err)
		return
	}

	id := chi.URLParam(r, "id")
	sess, snap, err := s.Sessions.Move(r.Context(), id, action)
	if err != nil {
		s.writeError(w, "MoveSession", err)
		return
	}
	s.broadcast(id, snap)
	s.writeJSON(w, http.StatusOK, SessionResponse{Session: sess, Snapshot: snap})
}

// SubscribeEvents handles the GET /sessions/{id}/events request (SSE).
// Every step or move on the session pushes its new snapshot.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := s.Sessions.Load(r.Context(), id); err != nil {
		s.writeError(w, "SubscribeEvents", err)
		return
	}

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("SSE: Subscribing to Session Updates", "session_id", id)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// -- Helpers --

func (s *Server) broadcast(sessionID string, snap domain.Snapshot) {
	if s.Streams.Subscribers(sessionID) == 0 {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error("snapshot encode failed", "session_id", sessionID, "error", err)
		return
	}
	s.Streams.Broadcast(sessionID, string(data))
}

// decode reads an optional JSON body into v. An empty body leaves v untouched.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

// writeError maps domain errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "error", err)
	} else {
		s.logger.Debug(op+" rejected", "status", status, "error", err)
	}
	http.Error(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownStrategy), errors.Is(err, domain.ErrUnknownAction):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrMazeNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidMaze):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func parseStrategy(s string) (domain.Strategy, error) {
	if s == "" {
		return domain.StrategyBFS, nil
	}
	return domain.ParseStrategy(s)
}
