// Package mcp exposes the board to MCP clients as tools and a resource.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/infoboard/internal/logging"
	"github.com/aretw0/infoboard/internal/presentation"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// StateURI addresses the board state resource.
const StateURI = "infoboard://state"

// DefaultWaitTimeout bounds how long refresh_screen waits for the fetch to settle.
const DefaultWaitTimeout = 30 * time.Second

// Board is the view model surface exposed to MCP clients.
type Board interface {
	AcceptIntent(presentation.Intent)
	State() presentation.UIState
	AcceptAndWait(ctx context.Context, intent presentation.Intent, settled presentation.Settled) (presentation.UIState, error)
}

// IntentArgs are the arguments of send_intent.
type IntentArgs struct {
	Intent string `json:"intent"`
}

// RefreshArgs are the arguments of refresh_screen.
type RefreshArgs struct {
	Wait *bool `json:"wait,omitempty"`
}

// Server wraps the board as an MCP server.
type Server struct {
	board       Board
	mcpServer   *server.MCPServer
	waitTimeout time.Duration
	logger      *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger configures a logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithWaitTimeout bounds how long refresh_screen waits.
func WithWaitTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.waitTimeout = d
	}
}

// NewServer creates an MCP server for board.
func NewServer(board Board, version string, opts ...Option) *Server {
	s := &Server{
		board:       board,
		mcpServer:   server.NewMCPServer("infoboard-mcp", version),
		waitTimeout: DefaultWaitTimeout,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves on stdin and stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on port until ctx ends.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_state",
		mcp.WithDescription("Get the current board state: header, items, loading flag and error message."),
		mcp.WithOutputSchema[presentation.UIState](),
	), mcp.NewStructuredToolHandler(s.handleGetState))

	s.mcpServer.AddTool(mcp.NewTool("refresh_screen",
		mcp.WithDescription("Fetch the board data again. By default waits until loading finished and returns the resulting state."),
		mcp.WithBoolean("wait", mcp.Description("Wait for the refresh to settle (default true)")),
		mcp.WithOutputSchema[presentation.UIState](),
	), mcp.NewStructuredToolHandler(s.handleRefresh))

	s.mcpServer.AddTool(mcp.NewTool("hide_error_message",
		mcp.WithDescription("Dismiss the visible error message."),
		mcp.WithOutputSchema[presentation.UIState](),
	), mcp.NewStructuredToolHandler(s.handleHideError))

	s.mcpServer.AddTool(mcp.NewTool("send_intent",
		mcp.WithDescription("Send an intent by name without waiting for its effect."),
		mcp.WithString("intent", mcp.Required(),
			mcp.Description("Intent name"),
			mcp.Enum("refresh_screen", "hide_error_message"),
		),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("intent")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		intent, err := presentation.ParseIntent(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		s.board.AcceptIntent(intent)
		return mcp.NewToolResultText("accepted " + intent.Name()), nil
	})
}

func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (presentation.UIState, error) {
	return s.board.State(), nil
}

func (s *Server) handleRefresh(ctx context.Context, request mcp.CallToolRequest, args RefreshArgs) (presentation.UIState, error) {
	if args.Wait != nil && !*args.Wait {
		s.board.AcceptIntent(presentation.RefreshScreen{})
		return s.board.State(), nil
	}
	return s.await(ctx, presentation.RefreshScreen{}, presentation.LoadingFinished)
}

func (s *Server) handleHideError(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (presentation.UIState, error) {
	return s.await(ctx, presentation.HideErrorMessage{}, presentation.ErrorHidden)
}

// await accepts intent and waits, bounded by the wait timeout, until settled holds.
func (s *Server) await(ctx context.Context, intent presentation.Intent, settled presentation.Settled) (presentation.UIState, error) {
	ctx, cancel := context.WithTimeout(ctx, s.waitTimeout)
	defer cancel()

	s.logger.Debug("MCP intent accepted", "intent", intent.Name())
	st, err := s.board.AcceptAndWait(ctx, intent, settled)
	if errors.Is(err, context.DeadlineExceeded) {
		return st, fmt.Errorf("%s did not settle within %s", intent.Name(), s.waitTimeout)
	}
	return st, err
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(StateURI, "Board State",
		mcp.WithResourceDescription("The latest published board state"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		payload, err := json.Marshal(s.board.State())
		if err != nil {
			return nil, fmt.Errorf("failed to encode state: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      StateURI,
				MIMEType: "application/json",
				Text:     string(payload),
			},
		}, nil
	})
}
