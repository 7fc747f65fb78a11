package server

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"bigocheck/internal/analyzer"
	"bigocheck/internal/config"
	"bigocheck/internal/logger"
	"bigocheck/internal/models"
	"bigocheck/internal/syntax"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// Server exposes the analyzer over HTTP: GET / serves the analyzer page and
// POST on the analyze path analyses the raw request body.
type Server struct {
	analyzer *analyzer.Analyzer
	config   *config.Config
	mux      *http.ServeMux
	page     []byte
}

func New(a *analyzer.Analyzer, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Server{
		analyzer: a,
		config:   cfg,
		mux:      http.NewServeMux(),
	}
	var page bytes.Buffer
	if err := indexTemplate.Execute(&page, struct {
		AnalyzePath string
		Language    string
	}{cfg.Server.AnalyzePath, cfg.Analysis.DefaultLanguage}); err != nil {
		logger.Error("failed to render index page", "err", err)
	}
	s.page = page.Bytes()

	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc(cfg.Server.AnalyzePath, s.handleAnalyze)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Server.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("analyzer server listening", "addr", srv.Addr, "analyze", s.config.Server.AnalyzePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := time.Duration(s.config.Server.ShutdownTimeout) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("analyzer server stopped")
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.page)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	switch r.Method {
	case http.MethodOptions:
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		w.Header().Set("Allow", "POST, OPTIONS")
		writeJSON(w, http.StatusMethodNotAllowed, models.Response{Success: false, Error: "method not allowed"})
		return
	}

	requestID := uuid.NewString()
	log := logger.With("request", requestID)
	w.Header().Set("X-Request-Id", requestID)

	limit := int64(s.config.Server.MaxBodyKB) * 1024
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, models.Response{Success: false, Error: fmt.Sprintf("source exceeds %d bytes", limit)})
			return
		}
		writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: "failed to read request body"})
		return
	}

	lang := syntax.Language(r.URL.Query().Get("lang"))
	start := time.Now()
	resp := s.analyzer.Respond(lang, "input", body)
	log.Info("analyzed request", "lang", lang, "bytes", len(body), "success", resp.Success,
		"functions", len(resp.Results), "took", time.Since(start))

	// analysis failures are reported in the document, like the page expects
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to write response", "err", err)
	}
}
