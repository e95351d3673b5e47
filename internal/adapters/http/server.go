// Package http serves the board over a JSON API with server-sent state events.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/infoboard/internal/logging"
	"github.com/aretw0/infoboard/internal/presentation"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds intent request bodies.
const maxBodyBytes = 4 << 10

// Board is the view model surface exposed over HTTP.
type Board interface {
	AcceptIntent(presentation.Intent)
	State() presentation.UIState
	Subscribe(ctx context.Context) <-chan presentation.UIState
}

// Server handles the API routes.
type Server struct {
	board   Board
	doc     *openapi3.T
	intent  *openapi3.Schema
	version string
	metrics http.Handler
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger configures a logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the build version reported by /version.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = strings.TrimSpace(version)
	}
}

// WithMetrics mounts h on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewServer creates a Server for board.
func NewServer(board Board, opts ...Option) (*Server, error) {
	doc, err := loadOpenAPI()
	if err != nil {
		return nil, err
	}
	intent, err := schemaRef(doc, "IntentRequest")
	if err != nil {
		return nil, err
	}

	s := &Server{
		board:   board,
		doc:     doc,
		intent:  intent,
		version: "dev",
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewHandler creates the HTTP handler for board.
func NewHandler(board Board, opts ...Option) (http.Handler, error) {
	s, err := NewServer(board, opts...)
	if err != nil {
		return nil, err
	}
	return s.Routes(), nil
}

// Routes returns the router serving every endpoint.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/version", s.GetVersion)
	r.Get("/state", s.GetState)
	r.Post("/intents", s.PostIntent)
	r.Get("/events", s.SubscribeEvents)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawOpenAPI)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>infoboard API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetVersion handles GET /version.
func (s *Server) GetVersion(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.doc.Info != nil {
		apiVersion = s.doc.Info.Version
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "infoboard",
		"version":     s.version,
		"api_version": apiVersion,
	})
}

// GetState handles GET /state.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.board.State())
}

// PostIntent handles POST /intents. Intents are processed asynchronously.
func (s *Server) PostIntent(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		s.logger.Warn("PostIntent: invalid request body", "err", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.intent.VisitJSON(body); err != nil {
		s.logger.Warn("PostIntent: request rejected by schema", "err", err)
		http.Error(w, fmt.Sprintf("Invalid intent request: %s", schemaReason(err)), http.StatusBadRequest)
		return
	}

	name, _ := body["intent"].(string)
	intent, err := presentation.ParseIntent(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.board.AcceptIntent(intent)
	s.logger.Debug("Intent accepted", "intent", intent.Name())
	s.writeJSON(w, http.StatusAccepted, map[string]string{"accepted": intent.Name()})
}

// SubscribeEvents handles GET /events. Each published state is sent as a "state"
// event, or as a "diff" event with format=diff. watch=items,error_message limits the
// stream to states where one of those fields changed. Slow clients only see the
// latest state.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.logger.Error("SubscribeEvents: streaming not supported")
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "state" && format != "diff" {
		http.Error(w, fmt.Sprintf("Unknown format %q", format), http.StatusBadRequest)
		return
	}
	var watchList []string
	if watch := r.URL.Query().Get("watch"); watch != "" {
		for _, field := range strings.Split(watch, ",") {
			watchList = append(watchList, strings.TrimSpace(field))
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	states := s.board.Subscribe(r.Context())
	s.logger.Info("SSE client connected", "remote", r.RemoteAddr, "format", format, "watch", watchList)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	var previous *presentation.UIState
	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE client disconnected", "remote", r.RemoteAddr)
			return
		case state, ok := <-states:
			if !ok {
				return
			}
			diff := presentation.Diff(previous, state)
			previous = &state
			if diff == nil || !watched(diff, watchList) {
				continue
			}

			event, payload := "state", any(state)
			if format == "diff" {
				event, payload = "diff", diff
			}
			data, err := json.Marshal(payload)
			if err != nil {
				s.logger.Error("SSE: encode failed", "err", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
			flusher.Flush()
		}
	}
}

func watched(diff *presentation.StateDiff, fields []string) bool {
	if len(fields) == 0 {
		return true
	}
	for _, field := range fields {
		if diff.Has(field) {
			return true
		}
	}
	return false
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}

func schemaReason(err error) string {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) && schemaErr.Reason != "" {
		if path := schemaErr.JSONPointer(); len(path) > 0 {
			return strings.Join(path, ".") + ": " + schemaErr.Reason
		}
		return schemaErr.Reason
	}
	return err.Error()
}
