package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/plainbrief/plainbrief/internal/core/ports/driving"
	"github.com/plainbrief/plainbrief/internal/extract"
	"github.com/plainbrief/plainbrief/internal/logger"
)

// Default server settings.
const (
	DefaultPort         = 8080
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 5 * time.Minute // Ingestion and chat wait on model calls.
)

// Config holds HTTP server configuration.
type Config struct {
	// Port to listen on (default: 8080).
	Port int

	// EnableCORS adds permissive CORS headers for browser frontends.
	EnableCORS bool
}

// Server serves the document API.
type Server struct {
	ingest    driving.IngestService
	answer    driving.AnswerService
	documents driving.DocumentService
	analysis  driving.AnalysisService
	extractor *extract.Registry
	srv       *http.Server
}

// NewServer creates a configured server. extractor may be nil, in which
// case file uploads are rejected and only JSON text uploads work.
// analysis may be nil, in which case the analysis endpoint reports the
// LLM as unavailable.
func NewServer(
	cfg Config,
	ingest driving.IngestService,
	answer driving.AnswerService,
	documents driving.DocumentService,
	analysis driving.AnalysisService,
	extractor *extract.Registry,
) *Server {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}

	s := &Server{
		ingest:    ingest,
		answer:    answer,
		documents: documents,
		analysis:  analysis,
		extractor: extractor,
	}

	router := mux.NewRouter()
	router.Use(loggingMiddleware)
	if cfg.EnableCORS {
		router.Use(corsMiddleware)
	}

	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/documents", s.handleUpload).Methods("POST", "OPTIONS")
	api.HandleFunc("/documents", s.handleListDocuments).Methods("GET")
	api.HandleFunc("/documents/{id}", s.handleGetDocument).Methods("GET")
	api.HandleFunc("/documents/{id}", s.handleDeleteDocument).Methods("DELETE", "OPTIONS")
	api.HandleFunc("/documents/{id}/content", s.handleGetContent).Methods("GET")
	api.HandleFunc("/documents/{id}/analysis", s.handleAnalysis).Methods("GET")
	api.HandleFunc("/documents/{id}/chat", s.handleChat).Methods("POST", "OPTIONS")

	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}

	return s
}

// Handler returns the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start listens and serves until Shutdown is called.
func (s *Server) Start() error {
	logger.Info("HTTP server listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// loggingMiddleware logs request details and latency.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("%s %s - %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// corsMiddleware adds CORS headers for development frontends.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
