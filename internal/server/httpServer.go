// Package server is the thin HTTP surface the dashboard calls with an
// uploaded export. It parses the upload, hands the pipeline its run
// parameters and renders the returned report, nothing more.
package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/entity"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/silver"
)

// BatchRunner is implemented by the pipeline orchestrator.
type BatchRunner interface {
	Run(ctx context.Context, p entity.RunParams) (entity.Report, error)
}

type Server struct {
	router *http.ServeMux
	server *http.Server
	runner BatchRunner
}

func NewServer(addr string, runner BatchRunner) *Server {
	srv := &Server{
		router: http.NewServeMux(),
		runner: runner,
	}
	srv.server = &http.Server{
		Addr:    addr,
		Handler: srv,
	}
	srv.routes()
	return srv
}

// Start runs the server until the listener fails.
func (s *Server) Start() error {
	slog.Info("server starting", "address", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slog.Info("request received", "method", r.Method, "path", r.URL.Path)
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.HandleFunc("POST /v1/ingest", s.handleIngest())
	s.router.HandleFunc("POST /v1/standardize", s.handleStandardize())
	s.router.HandleFunc("GET /healthz", s.handleHealth())
}

// handleIngest runs one batch through the pipeline and returns its report.
// A failed batch is 422: the payload still carries the stage-attributed
// report so the dashboard can show which stage rejected it and why.
func (s *Server) handleIngest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := uploadParams(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		report, runErr := s.runner.Run(r.Context(), params)

		w.Header().Set("Content-Type", "application/json")
		if runErr != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}
		if err := json.NewEncoder(w).Encode(report); err != nil {
			slog.Error("failed to encode report to JSON", "error", err)
		}
	}
}

// handleStandardize runs only the silver stage and streams the canonical
// table back as CSV for inspection.
func (s *Server) handleStandardize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := uploadParams(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		canonical, err := silver.Standardize(params.File, params.SourceLayout)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="silver.csv"`)
		if err := canonical.WriteCSV(w); err != nil {
			slog.Error("failed to write silver CSV", "error", err)
		}
	}
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}

// uploadParams reads the multipart upload: the export file, the source
// layout id and an optional run timestamp (defaults to now).
func uploadParams(r *http.Request) (entity.RunParams, error) {
	file, _, err := r.FormFile("file")
	if err != nil {
		return entity.RunParams{}, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return entity.RunParams{}, err
	}

	runAt := time.Now().UTC()
	if raw := r.FormValue("run_at"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			runAt = parsed
		}
	}

	return entity.RunParams{
		File:         content,
		SourceLayout: r.FormValue("source"),
		RunAt:        runAt,
	}, nil
}
