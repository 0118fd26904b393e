package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/raysh454/caselookup/internal/fetcher"
	"github.com/raysh454/caselookup/internal/logging"
	"github.com/raysh454/caselookup/internal/model"
)

// RequestIDHeader carries the per-request correlation id on every response.
const RequestIDHeader = "X-Request-ID"

// CaseFetcher is the part of fetcher.Coordinator the server needs.
type CaseFetcher interface {
	FetchCase(ctx context.Context, locator string) (*model.CaseRecord, error)
	FetchBatch(ctx context.Context, locators []string, onResult func(fetcher.Result))
}

// Server is the HTTP + WebSocket API surface for case lookups.
type Server struct {
	cfg      Config
	fetcher  CaseFetcher
	router   chi.Router
	upgrader websocket.Upgrader
	logger   logging.Logger
}

// NewServer wires the lookup routes around f.
func NewServer(cfg Config, f CaseFetcher, logger logging.Logger) (*Server, error) {
	if f == nil {
		return nil, fmt.Errorf("server: case fetcher is nil")
	}
	def := DefaultConfig()
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	if cfg.CaseURLTemplate == "" {
		cfg.CaseURLTemplate = def.CaseURLTemplate
	}
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = def.MaxBatchSize
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	if logger == nil {
		logger = logging.NewStdoutLogger("server")
	}

	s := &Server{
		cfg:     cfg,
		fetcher: f,
		router:  chi.NewRouter(),
		logger:  logger,
		upgrader: websocket.Upgrader{
			// The API is public and unauthenticated, same as the CORS policy.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.requestIDMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(middleware.Recoverer)

	// CORS preflight
	r.Options("/fetch", s.optionsHandler("POST"))
	r.Options("/fetch-case", s.optionsHandler("POST"))
	r.Options("/healthz", s.optionsHandler("GET"))

	// Lookups
	r.Post("/fetch", s.handleLookup)
	r.Post("/fetch-case", s.handleLookup)

	// Streaming batch lookups
	r.Get("/ws/lookups", s.handleLookupsWS)

	r.Get("/healthz", s.handleHealth)
	r.Get("/swagger/*", swaggerHandler())
}

type requestIDKey struct{}

// RequestIDFromContext returns the id assigned by the request id middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// requestIDMiddleware keeps a caller supplied id when it is a UUID and mints
// a new one otherwise.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

	s.router.ServeHTTP(ww, r)

	s.logger.Info("http_request",
		logging.Field{Key: "method", Value: r.Method},
		logging.Field{Key: "path", Value: r.URL.Path},
		logging.Field{Key: "status", Value: ww.Status()},
		logging.Field{Key: "request_id", Value: ww.Header().Get(RequestIDHeader)},
		logging.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()})
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}
