// Package web exposes the manual API entry points over HTTP.
package web

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"triscan/internal/services/scanner"
	"triscan/internal/store"
)

// scanService is the slice of the scanner used by the handlers.
type scanService interface {
	GetBalance(ctx context.Context, ownerID string) scanner.BalanceResponse
	TestConnection(ctx context.Context, connectionID string) scanner.TestResponse
	ScanBot(ctx context.Context, ownerID, botConfigID string) scanner.ScanResponse
}

// Server serves the manual scan, balance and connection-test
// endpoints. Every POST returns a uniform {success, ...} envelope; no
// error escapes the handler boundary.
type Server struct {
	Addr          string
	Scanner       scanService
	Opportunities store.OpportunityStore
	Logger        *zap.Logger
}

// NewServer creates a new API server instance.
func NewServer(addr string, sc scanService, opportunities store.OpportunityStore, logger *zap.Logger) *Server {
	return &Server{Addr: addr, Scanner: sc, Opportunities: opportunities, Logger: logger}
}

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/balance", s.handleBalance)
	mux.HandleFunc("/api/connections/test", s.handleTestConnection)
	mux.HandleFunc("/api/scan", s.handleScan)
	mux.HandleFunc("/api/opportunities", s.handleOpportunities)
	return mux
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StartWithAutoTLS runs an HTTPS server with automatic certificates
// via ACME, plus an HTTP server on port 80 for HTTP-01 challenges.
func (s *Server) StartWithAutoTLS(ctx context.Context, domain, cacheDir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if domain == "" {
		return errors.New("no domain provided for automatic TLS")
	}
	if cacheDir == "" {
		cacheDir = "cert-cache"
	}

	manager := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(domain),
		Cache:      autocert.DirCache(cacheDir),
	}

	httpSrv := &http.Server{
		Addr:              ":80",
		Handler:           manager.HTTPHandler(nil),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	tlsConfig := manager.TLSConfig()
	tlsConfig.MinVersion = tls.VersionTLS12

	httpsSrv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
		TLSConfig:         tlsConfig,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
		_ = httpsSrv.Shutdown(shutdownCtx)
	}()

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("acme challenge server failed", zap.Error(err))
		}
	}()

	if err := httpsSrv.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type balanceRequest struct {
	OwnerID string `json:"owner_id"`
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	var req balanceRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.respond(w, s.Scanner.GetBalance(r.Context(), req.OwnerID))
}

type testConnectionRequest struct {
	ConnectionID string `json:"connection_id"`
}

func (s *Server) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	var req testConnectionRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.respond(w, s.Scanner.TestConnection(r.Context(), req.ConnectionID))
}

type scanRequest struct {
	OwnerID     string `json:"owner_id"`
	BotConfigID string `json:"bot_config_id"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.respond(w, s.Scanner.ScanBot(r.Context(), req.OwnerID, req.BotConfigID))
}

func (s *Server) handleOpportunities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	opps, err := s.Opportunities.ListRecent(r.Context(), 100)
	if err != nil {
		s.Logger.Error("failed to list opportunities", zap.Error(err))
		s.respond(w, map[string]any{"success": false, "error": "failed to list opportunities"})
		return
	}
	s.respond(w, map[string]any{"success": true, "opportunities": opps})
}

// decode parses a POST JSON body; on failure it writes the error
// envelope itself and reports false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respond(w, map[string]any{"success": false, "error": "invalid request body"})
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.Logger.Error("failed to encode response", zap.Error(err))
	}
}
