// Package server implements the loadicator HTTP API.
//
// The server holds one ship data model in memory and evaluates loading
// conditions against it per request. The model can be replaced at runtime
// by uploading a new workbook; uploads are fully validated before the swap,
// so a bad workbook never disturbs the running model.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/marinetools/loadicator/pkg/errors"
	"github.com/marinetools/loadicator/pkg/hydro"
	"github.com/marinetools/loadicator/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// maxUploadBytes caps workbook uploads at 16 MiB.
	maxUploadBytes = 16 << 20

	// plotTTL is how long rendered plots stay retrievable.
	plotTTL = time.Hour

	// shutdownTimeout bounds graceful shutdown.
	shutdownTimeout = 10 * time.Second
)

// =============================================================================
// Config
// =============================================================================

// Config holds server configuration.
type Config struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string

	// Workbook is the path of the initial ship data workbook. Empty means
	// the server starts without a model and waits for an upload.
	Workbook string

	// KG overrides the vertical center of gravity estimation constants.
	// The zero value uses the defaults.
	KG KGOverride
}

// KGOverride mirrors the engine's KG configuration so callers of this
// package do not need to import the stability package.
type KGOverride struct {
	BaseFactor     float64
	LoadAdjustment float64
}

// =============================================================================
// Server
// =============================================================================

// Server is the loadicator HTTP API. The model is guarded by a read-write
// lock: requests take read locks, uploads swap the model under the write
// lock.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	plots  *plotStore

	mu           sync.RWMutex
	model        *hydro.TableModel
	workbookHash string
	source       string
}

// New creates a server around a pipeline runner. The runner's cache backs
// the artifact cache across requests.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) (*Server, error) {
	if runner == nil {
		runner = pipeline.NewRunner(nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:    cfg,
		runner: runner,
		logger: logger,
		plots:  newPlotStore(plotTTL),
	}
	if cfg.Workbook != "" {
		model, hash, err := runner.Load(context.Background(), pipeline.Options{Workbook: cfg.Workbook})
		if err != nil {
			return nil, err
		}
		s.setModel(model, hash, cfg.Workbook)
	}
	return s, nil
}

// setModel swaps the active model. source names where the data came from
// (a path or an uploaded filename) and is echoed in the info endpoint.
func (s *Server) setModel(model *hydro.TableModel, hash, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = model
	s.workbookHash = hash
	s.source = source
}

// currentModel returns the active model, its hash and source. The model is
// nil when no workbook has been loaded yet.
func (s *Server) currentModel() (*hydro.TableModel, string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model, s.workbookHash, s.source
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleInfo)
	r.Post("/calculate", s.handleCalculate)
	r.Post("/upload", s.handleUpload)
	r.Get("/plots/{id}", s.handlePlot)

	return r
}

// Run starts the HTTP server and blocks until ctx is canceled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// logRequests logs one line per request with the structured logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// statusForError maps domain error codes to HTTP status codes.
func statusForError(err error) int {
	switch {
	case apperrors.IsValidation(err), apperrors.IsSchema(err):
		return http.StatusBadRequest
	case apperrors.IsRange(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
