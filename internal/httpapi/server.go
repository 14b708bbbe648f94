// Package httpapi exposes the dashboard snapshot and user edits over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"MarketVision/internal/model"
	"MarketVision/internal/report"
)

// State is the dashboard surface the API needs.
type State interface {
	Snapshot() model.Snapshot
	SetPortfolio(p model.Portfolio) model.Portfolio
	SetScenario(s model.Scenario) model.Scenario
}

const maxBodyBytes = 1 << 16

// Server serves the dashboard HTTP API.
type Server struct {
	state   State
	version string
}

// NewServer creates a new API server.
func NewServer(state State, version string) *Server {
	return &Server{state: state, version: version}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("PUT /api/portfolio", s.handlePortfolio)
	mux.HandleFunc("PUT /api/scenario", s.handleScenario)
	mux.HandleFunc("GET /healthz", s.handleHealth)
}

// Handler returns an http.Handler with CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] http api listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Println("[INFO] http api stopped")
	return nil
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.state.Snapshot())
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, report.FormatSnapshot(s.state.Snapshot()))
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	var p model.Portfolio
	if err := decodeBody(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	applied := s.state.SetPortfolio(p)
	log.Printf("[INFO] portfolio updated: %.4g shares @ %.2f, fx %.2f", applied.Shares, applied.AvgCost, applied.FxRate)
	writeJSON(w, s.state.Snapshot())
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	var sc model.Scenario
	if err := decodeBody(w, r, &sc); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	applied := s.state.SetScenario(sc)
	log.Printf("[INFO] scenario updated: %+.0f / %+.0f / %+.0f", applied.MuskRiskPct, applied.PolicyImpactPct, applied.RobotaxiPremiumPct)
	writeJSON(w, s.state.Snapshot())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()
	writeJSON(w, map[string]any{
		"status":     "ok",
		"version":    s.version,
		"session":    snap.Price.Session,
		"updated_at": snap.UpdatedAt,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encoding JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
