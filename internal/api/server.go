package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dataprep/internal/config"
	"dataprep/internal/logger"
	"dataprep/internal/models"
	"dataprep/internal/pipeline"
	"dataprep/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RunHistory lists persisted runs and their rows. It is backed by the postgres run store.
type RunHistory interface {
	ListRuns(ctx context.Context, limit int) ([]models.Run, error)
	GetRun(ctx context.Context, runID string) (models.Run, error)
	ListRecords(ctx context.Context, runID string) ([]models.Record, error)
}

type Server struct {
	cfg     config.Config
	runner  Runner
	history RunHistory
	log     logger.Logger
	metrics http.Handler
}

type Option func(*Server)

func WithHistory(h RunHistory) Option {
	return func(s *Server) { s.history = h }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithGatherer serves /metrics from g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.metrics = promhttp.HandlerFor(g, promhttp.HandlerOpts{}) }
}

func NewServer(cfg config.Config, runner Runner, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		runner:  runner,
		log:     logger.Nop(),
		metrics: promhttp.Handler(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/runs", s.handleRuns)
	mux.HandleFunc("/runs/", s.handleRunScoped)
	mux.Handle("/metrics", s.metrics)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if s.history == nil {
			writeJSON(w, http.StatusOK, map[string]any{"runs": []models.Run{}})
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		runs, err := s.history.ListRuns(r.Context(), limit)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
	case http.MethodPost:
		var req struct {
			InputDir       string   `json:"input_dir"`
			OutputPath     string   `json:"output_path"`
			MaxTokens      int      `json:"max_tokens"`
			Label          string   `json:"label"`
			TargetLanguage string   `json:"target_language"`
			Extensions     []string `json:"extensions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
			return
		}
		req.InputDir = strings.TrimSpace(req.InputDir)
		if req.InputDir == "" {
			req.InputDir = s.cfg.InputDir
		}
		if req.InputDir == "" {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("input_dir is required"))
			return
		}
		if req.MaxTokens < 0 {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("max_tokens must be positive"))
			return
		}

		runID, err := s.runner.Start(r.Context(), pipeline.Request{
			InputDir:       req.InputDir,
			OutputPath:     strings.TrimSpace(req.OutputPath),
			MaxTokens:      req.MaxTokens,
			Label:          req.Label,
			TargetLanguage: req.TargetLanguage,
			Extensions:     req.Extensions,
		})
		if errors.Is(err, pipeline.ErrBusy) {
			writeErr(w, http.StatusConflict, err)
			return
		}
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		s.log.Info("run started", "run_id", runID, "input_dir", req.InputDir)
		writeJSON(w, http.StatusAccepted, map[string]any{"run_id": runID})
	default:
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	}
}

func (s *Server) handleRunScoped(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/runs/"), "/"), "/")
	runID := parts[0]
	if runID == "" || len(parts) > 2 || (len(parts) == 2 && parts[1] != "records") {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	if len(parts) == 2 {
		s.handleRunRecords(w, r, runID)
		return
	}

	p, err := s.runner.Progress(r.Context(), runID)
	if err == nil {
		writeJSON(w, http.StatusOK, p)
		return
	}
	if !errors.Is(err, ErrRunNotFound) {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	// Fall back to the run store for runs this process did not start.
	if s.history == nil {
		writeErr(w, http.StatusNotFound, err)
		return
	}
	run, hErr := s.history.GetRun(r.Context(), runID)
	if errors.Is(hErr, storage.ErrRunNotFound) {
		writeErr(w, http.StatusNotFound, hErr)
		return
	}
	if hErr != nil {
		writeErr(w, http.StatusInternalServerError, hErr)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// handleRunRecords serves the stored rows of a finished run.
func (s *Server) handleRunRecords(w http.ResponseWriter, r *http.Request, runID string) {
	if s.history == nil {
		writeErr(w, http.StatusNotFound, fmt.Errorf("run history is not configured"))
		return
	}
	if _, err := s.history.GetRun(r.Context(), runID); err != nil {
		if errors.Is(err, storage.ErrRunNotFound) {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	records, err := s.history.ListRecords(r.Context(), runID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"run_id": runID, "records": records})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "DP-API-4000"
	raw := ""
	if err != nil {
		raw = strings.ToLower(err.Error())
	}

	switch {
	case status >= 500:
		switch {
		case strings.Contains(raw, "relation") && strings.Contains(raw, "does not exist"):
			return apiError{
				Code:    "DP-DB-5001",
				Message: "Database schema is not initialized. Restart the service and retry.",
			}
		case strings.Contains(raw, "connect"), strings.Contains(raw, "dial tcp"), strings.Contains(raw, "connection refused"):
			return apiError{
				Code:    "DP-DB-5002",
				Message: "A backing service is unavailable. Check local services and retry.",
			}
		default:
			return apiError{
				Code:    "DP-API-5000",
				Message: "Internal server error. Please retry or check service logs.",
			}
		}
	case status == http.StatusBadRequest:
		code = "DP-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "DP-API-4004"
		msg = "Requested run was not found."
	case status == http.StatusConflict:
		code = "DP-API-4009"
		msg = "A dataset build is already running. Retry after it finishes."
	case status == http.StatusMethodNotAllowed:
		code = "DP-API-4005"
		msg = "This endpoint does not support the requested method."
	}

	if status == http.StatusBadRequest && err != nil {
		switch {
		case strings.Contains(raw, "input_dir is required"):
			msg = "An input directory is required."
		case strings.Contains(raw, "max_tokens"):
			msg = "max_tokens must be a positive number."
		case strings.Contains(raw, "invalid json"):
			msg = "Malformed JSON request body."
		}
	}

	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
