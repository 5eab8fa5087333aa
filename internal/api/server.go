// Package api exposes river generation over HTTP.
//
// The server shares the pipeline runner with the CLI, so a request is
// exactly one generation run: POST /api/generate accepts pipeline
// options as JSON and returns either a summary or the full river as
// GeoJSON. Generated data is returned inline; the server writes no run
// folders.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nikpau/sr-gen/pkg/buildinfo"
	"github.com/nikpau/sr-gen/pkg/config"
	"github.com/nikpau/sr-gen/pkg/errors"
	"github.com/nikpau/sr-gen/pkg/export"
	"github.com/nikpau/sr-gen/pkg/pipeline"
)

// maxBodyBytes bounds request bodies; parameter sets are tiny.
const maxBodyBytes = 1 << 20

// Server handles generation requests.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server around a pipeline runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler builds the HTTP route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/generate", s.handleGenerate)

	return r
}

// summaryResponse is the default generation response.
type summaryResponse struct {
	Seed   uint64             `json:"seed"`
	Rows   int                `json:"rows"`
	Cols   int                `json:"cols"`
	Points int                `json:"points"`
	Length float64            `json:"length"`
	Stats  pipeline.Stats     `json:"stats"`
	Cache  pipeline.CacheInfo `json:"cache"`
}

// errorResponse carries a machine-readable error code plus a message.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{Params: config.Default()}

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&opts); err != nil {
		writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidParameter,
			"decode request: %v", err))
		return
	}
	// The server never writes run folders.
	opts.SkipExport = true

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	s.logger.Info("generation request served",
		"rows", res.Stats.Rows,
		"cols", res.Stats.Cols,
		"cached", res.CacheInfo.Hit)

	if r.URL.Query().Get("format") == "geojson" {
		data, err := export.FeatureCollection(res.Dataset).MarshalJSON()
		if err != nil {
			writeError(w, http.StatusInternalServerError,
				errors.Wrap(errors.ErrCodeInternal, err, "encode geojson"))
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		Seed:   res.Seed,
		Rows:   res.Stats.Rows,
		Cols:   res.Stats.Cols,
		Points: res.Stats.Points,
		Length: res.Dataset.Mesh.Length,
		Stats:  res.Stats,
		Cache:  res.CacheInfo,
	})
}

// statusFor maps error codes onto HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidParameter,
		errors.ErrCodeInvalidRange,
		errors.ErrCodeZeroRotation,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPath,
		errors.ErrCodeExporterNotFound:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}
