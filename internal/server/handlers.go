package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/sporters/courtside/internal/analysis"
	"github.com/sporters/courtside/internal/api"
	"github.com/sporters/courtside/internal/model"
)

// getKalshiRaw proxies the markets query to the exchange and forwards the
// response unmodified. Upstream error statuses pass through; only transport
// failures become a local 500.
func (s *Server) getKalshiRaw(w http.ResponseWriter, r *http.Request) {
	body, err := s.client.GetMarketsRaw(r.Context(), api.GetMarketsOptions{
		SeriesTicker: s.feed.SeriesTicker,
		Status:       s.feed.Status,
		Limit:        s.feed.Limit,
	})
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(apiErr.StatusCode)
			w.Write(apiErr.Body)
			return
		}
		s.logger.Warn("kalshi proxy failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to fetch markets from Kalshi")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

type marketsResponse struct {
	Markets   []model.Market `json:"markets"`
	Count     int            `json:"count"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Error     string         `json:"error,omitempty"`
}

// getMarkets serves the latest normalized snapshot.
func (s *Server) getMarkets(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()

	s.respondJSON(w, http.StatusOK, marketsResponse{
		Markets:   snap.Markets,
		Count:     len(snap.Markets),
		UpdatedAt: snap.UpdatedAt,
		Error:     s.store.LastError(),
	})
}

// getOrderbook proxies the orderbook query for the detail view.
func (s *Server) getOrderbook(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]

	resp, err := s.client.GetOrderbook(r.Context(), ticker, 0)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(apiErr.StatusCode)
			w.Write(apiErr.Body)
			return
		}
		s.logger.Warn("orderbook proxy failed", "ticker", ticker, "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to fetch orderbook")
		return
	}

	s.respondJSON(w, http.StatusOK, resp)
}

type analyzeRequest struct {
	Question string             `json:"question"`
	Messages []analysis.Message `json:"messages"`
}

type analyzeResponse struct {
	Analysis string `json:"analysis"`
	Error    string `json:"error,omitempty"`
}

// postAnalyze forwards a betting question to the analysis backend. Any
// failure still returns a usable analysis string so the chat UI always has
// something to render.
func (s *Server) postAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		s.respondError(w, http.StatusBadRequest, "question is required")
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req.Question, req.Messages)
	if err != nil {
		s.logger.Warn("analysis failed", "error", err)
		s.respondJSON(w, http.StatusInternalServerError, analyzeResponse{
			Analysis: analysis.FallbackMessage,
			Error:    err.Error(),
		})
		return
	}

	s.respondJSON(w, http.StatusOK, analyzeResponse{Analysis: result})
}

type healthResponse struct {
	Status        string    `json:"status"`
	Markets       int       `json:"markets"`
	UpdatedAt     time.Time `json:"updatedAt"`
	UpdateAgeSecs float64   `json:"updateAgeSecs"`
}

// getHealth reports liveness plus snapshot freshness.
func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()

	var age float64
	if !snap.UpdatedAt.IsZero() {
		age = time.Since(snap.UpdatedAt).Seconds()
	}

	s.respondJSON(w, http.StatusOK, healthResponse{
		Status:        "healthy",
		Markets:       len(snap.Markets),
		UpdatedAt:     snap.UpdatedAt,
		UpdateAgeSecs: age,
	})
}
