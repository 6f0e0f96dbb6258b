package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/sporters/courtside/internal/analysis"
	"github.com/sporters/courtside/internal/api"
	"github.com/sporters/courtside/internal/config"
	"github.com/sporters/courtside/internal/store"
)

// Server serves the browsing API over HTTP.
type Server struct {
	cfg      config.ServerConfig
	feed     config.FeedConfig
	store    *store.Store
	client   *api.Client
	analyzer *analysis.Client
	logger   *slog.Logger

	httpServer *http.Server
}

// New creates a server. The feed config supplies the query parameters for
// the raw passthrough proxy.
func New(cfg config.ServerConfig, feed config.FeedConfig, st *store.Store, client *api.Client, analyzer *analysis.Client, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:      cfg,
		feed:     feed,
		store:    st,
		client:   client,
		analyzer: analyzer,
		logger:   logger,
	}
}

// Handler builds the full route table wrapped in CORS.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	// Raw passthrough, kept at its legacy path for existing clients.
	router.HandleFunc("/api/kalshi", s.getKalshiRaw).Methods("GET")

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/markets", s.getMarkets).Methods("GET")
	v1.HandleFunc("/markets/{ticker}/orderbook", s.getOrderbook).Methods("GET")
	v1.HandleFunc("/analyze", s.postAnalyze).Methods("POST")
	v1.HandleFunc("/stream", s.streamMarkets).Methods("GET")
	v1.HandleFunc("/health", s.getHealth).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           3600,
	})

	return c.Handler(router)
}

// Start begins serving in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.BindAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.logger.Info("http server started", "addr", s.cfg.BindAddress)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server failed", "error", err)
		}
	}()

	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	err := s.httpServer.Shutdown(ctx)
	s.logger.Info("http server stopped")
	return err
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response failed", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}
