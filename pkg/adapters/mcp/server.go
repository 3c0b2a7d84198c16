package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/labyrinth"
	"github.com/aretw0/labyrinth/internal/logging"
	"github.com/aretw0/labyrinth/internal/presentation/grid"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MazesURI is the resource listing the available mazes.
const MazesURI = "labyrinth://mazes"

// MazeArgs selects a maze.
type MazeArgs struct {
	Maze string `json:"maze"`
}

// SolveArgs selects a maze and a strategy.
type SolveArgs struct {
	Maze     string `json:"maze"`
	Strategy string `json:"strategy"`
}

// SolveResult aligns with the HTTP solve response.
type SolveResult struct {
	Maze        string          `json:"maze" jsonschema_description:"The maze that was searched"`
	Strategy    domain.Strategy `json:"strategy" jsonschema_description:"The frontier strategy used"`
	Found       bool            `json:"found" jsonschema_description:"Whether the goal is reachable"`
	Actions     []domain.Action `json:"actions" jsonschema_description:"Moves from start to goal"`
	NumExplored int             `json:"num_explored" jsonschema_description:"States taken off the frontier"`
	PathLength  int             `json:"path_length" jsonschema_description:"Number of moves in the solution"`
	Rendered    string          `json:"rendered" jsonschema_description:"The maze drawn with the path marked by '*' or the explored cells by '.'"`
}

// MazeResult describes a maze.
type MazeResult struct {
	Name   string      `json:"name" jsonschema_description:"Maze name"`
	Height int         `json:"height" jsonschema_description:"Rows"`
	Width  int         `json:"width" jsonschema_description:"Columns"`
	Start  domain.Cell `json:"start" jsonschema_description:"Start cell"`
	Goal   domain.Cell `json:"goal" jsonschema_description:"Goal cell"`
	Text   string      `json:"text" jsonschema_description:"Maze text, '#' for walls"`
}

// Server exposes mazes and the solver as an MCP Server.
type Server struct {
	loader    ports.MazeLoader
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLifecycleHooks registers hooks for the searches the tools run.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// WithLogger sets the logger. Under stdio it must not write to stdout.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(loader ports.MazeLoader, opts ...Option) *Server {
	s := &Server{
		loader:    loader,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("labyrinth-mcp", strings.TrimSpace(labyrinth.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, for in-process transports and tests.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
// It stops gracefully when ctx is canceled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_mazes
	s.mcpServer.AddTool(mcp.NewTool("list_mazes",
		mcp.WithDescription("List the names of the available mazes."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.loader.ListMazes()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(names)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: get_maze
	getTool := mcp.NewTool("get_maze",
		mcp.WithDescription("Describe a maze: size, start, goal and its text."),
		mcp.WithString("maze", mcp.Required(), mcp.Description("Maze name, as returned by list_mazes")),
		mcp.WithOutputSchema[MazeResult](),
	)
	s.mcpServer.AddTool(getTool, mcp.NewStructuredToolHandler(s.handleGetMaze))

	// TOOL: solve_maze
	solveTool := mcp.NewTool("solve_maze",
		mcp.WithDescription("Search a maze from start to goal and return the path."),
		mcp.WithString("maze", mcp.Required(), mcp.Description("Maze name, as returned by list_mazes")),
		mcp.WithString("strategy",
			mcp.Description("Frontier strategy (default bfs)"),
			mcp.Enum("dfs", "bfs", "greedy", "astar"),
		),
		mcp.WithOutputSchema[SolveResult](),
	)
	s.mcpServer.AddTool(solveTool, mcp.NewStructuredToolHandler(s.handleSolveMaze))
}

func (s *Server) load(ctx context.Context, name string) (*labyrinth.Engine, error) {
	if name == "" {
		return nil, errors.New("maze is required")
	}
	eng := labyrinth.New(s.loader, labyrinth.WithLogger(s.logger), labyrinth.WithLifecycleHooks(s.hooks))
	if err := eng.Load(ctx, name); err != nil {
		return nil, err
	}
	return eng, nil
}

func (s *Server) handleGetMaze(ctx context.Context, request mcp.CallToolRequest, args MazeArgs) (MazeResult, error) {
	eng, err := s.load(ctx, args.Maze)
	if err != nil {
		return MazeResult{}, err
	}
	m := eng.Maze()
	return MazeResult{
		Name:   m.Name,
		Height: m.Height,
		Width:  m.Width,
		Start:  m.Start,
		Goal:   m.Goal,
		Text:   m.String(),
	}, nil
}

func (s *Server) handleSolveMaze(ctx context.Context, request mcp.CallToolRequest, args SolveArgs) (SolveResult, error) {
	strategy := domain.StrategyBFS
	if args.Strategy != "" {
		var err error
		if strategy, err = domain.ParseStrategy(args.Strategy); err != nil {
			return SolveResult{}, err
		}
	}

	eng, err := s.load(ctx, args.Maze)
	if err != nil {
		return SolveResult{}, err
	}

	found, err := eng.Solve(ctx, strategy)
	if err != nil {
		return SolveResult{}, fmt.Errorf("solve failed: %w", err)
	}

	snap := eng.Snapshot()
	res := SolveResult{
		Maze:        args.Maze,
		Strategy:    strategy,
		Found:       found,
		Actions:     []domain.Action{},
		NumExplored: snap.NumExplored,
		Rendered:    grid.Render(snap, grid.OverlayFrom(snap)),
	}
	if snap.Solution != nil {
		res.Actions = snap.Solution.Actions
		res.PathLength = snap.Solution.Len()
	}
	return res, nil
}

func (s *Server) registerResources() {
	// EXPOSE: labyrinth://mazes
	s.mcpServer.AddResource(mcp.NewResource(MazesURI, "Available Mazes",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		contents, err := s.readMazes()
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{contents}, nil
	})
}

func (s *Server) readMazes() (mcp.TextResourceContents, error) {
	names, err := s.loader.ListMazes()
	if err != nil {
		return mcp.TextResourceContents{}, fmt.Errorf("failed to list mazes: %w", err)
	}
	jsonBytes, _ := json.Marshal(names)
	return mcp.TextResourceContents{
		URI:      MazesURI,
		MIMEType: "application/json",
		Text:     string(jsonBytes),
	}, nil
}
