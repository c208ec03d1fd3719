package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/marinetools/loadicator/pkg/buildinfo"
	apperrors "github.com/marinetools/loadicator/pkg/errors"
	"github.com/marinetools/loadicator/pkg/pipeline"
	"github.com/marinetools/loadicator/pkg/stability"
)

// =============================================================================
// Request / Response Types
// =============================================================================

// calculateRequest is the JSON body of POST /calculate.
type calculateRequest struct {
	Draft     float64   `json:"draft"`
	DraftUnit string    `json:"draft_unit,omitempty"`
	LoadKg    float64   `json:"load_kg"`
	Angles    []float64 `json:"angles,omitempty"`
	Formats   []string  `json:"formats,omitempty"`
	Refresh   bool      `json:"refresh,omitempty"`
}

// calculateResponse is the JSON body returned by POST /calculate. Chart
// artifacts are stored server-side and referenced by URL; the stability
// result itself is inlined.
type calculateResponse struct {
	*stability.Result
	Plots    map[string]string `json:"plots,omitempty"`
	CacheHit bool              `json:"cache_hit"`
}

// infoResponse is the JSON body of GET /.
type infoResponse struct {
	Service     string    `json:"service"`
	Version     string    `json:"version"`
	ShipName    string    `json:"ship_name,omitempty"`
	Source      string    `json:"source,omitempty"`
	DraftMinM   float64   `json:"draft_min_m,omitempty"`
	DraftMaxM   float64   `json:"draft_max_m,omitempty"`
	HeelAngles  []float64 `json:"heel_angles_degrees,omitempty"`
	ModelLoaded bool      `json:"model_loaded"`
}

// uploadResponse is the JSON body returned by POST /upload.
type uploadResponse struct {
	ShipName   string    `json:"ship_name"`
	DraftMinM  float64   `json:"draft_min_m"`
	DraftMaxM  float64   `json:"draft_max_m"`
	HeelAngles []float64 `json:"heel_angles_degrees"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	model, _, source := s.currentModel()

	resp := infoResponse{
		Service: "loadicator",
		Version: buildinfo.Version,
	}
	if model != nil {
		min, max := model.DraftRange()
		resp.ShipName = model.ShipName()
		resp.Source = source
		resp.DraftMinM = min
		resp.DraftMaxM = max
		resp.HeelAngles = model.HeelAngles()
		resp.ModelLoaded = true
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	model, hash, source := s.currentModel()
	if model == nil {
		writeError(w, http.StatusServiceUnavailable, apperrors.New(apperrors.ErrCodeValidation, "no ship data loaded; upload a workbook first"))
		return
	}

	var req calculateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeValidation, err, "invalid request body"))
		return
	}

	formats := req.Formats
	if len(formats) == 0 {
		formats = []string{pipeline.FormatPNG}
	}
	if err := pipeline.ValidateFormats(formats); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeValidation, err, "invalid formats"))
		return
	}

	opts := pipeline.Options{
		Workbook:  source,
		Draft:     req.Draft,
		DraftUnit: req.DraftUnit,
		LoadKg:    req.LoadKg,
		Angles:    req.Angles,
		Formats:   formats,
		Refresh:   req.Refresh,
		KG: stability.KGConfig{
			BaseFactor:     s.cfg.KG.BaseFactor,
			LoadAdjustment: s.cfg.KG.LoadAdjustment,
		},
		Logger: s.logger,
	}

	result, err := s.runner.Compute(r.Context(), model, hash, opts)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	resp := calculateResponse{
		Result:   result.Stability,
		CacheHit: result.CacheInfo.AllHits(),
	}
	for _, format := range formats {
		if format == pipeline.FormatJSON {
			continue
		}
		id := s.plots.put(result.Artifacts[format], contentTypeFor(format))
		if resp.Plots == nil {
			resp.Plots = make(map[string]string, len(formats))
		}
		resp.Plots[format] = "/plots/" + id
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, apperrors.Wrap(apperrors.ErrCodeValidation, err, "upload too large or malformed"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeValidation, err, "missing file field"))
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".xlsx" {
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeValidation, "unsupported file type %q; expected .xlsx", ext))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeValidation, err, "read upload"))
		return
	}

	// Validate completely before touching the active model.
	model, hash, err := s.runner.Load(r.Context(), pipeline.Options{WorkbookData: data})
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	s.setModel(model, hash, header.Filename)

	s.logger.Info("workbook replaced", "ship", model.ShipName(), "file", header.Filename)

	min, max := model.DraftRange()
	writeJSON(w, http.StatusOK, uploadResponse{
		ShipName:   model.ShipName(),
		DraftMinM:  min,
		DraftMaxM:  max,
		HeelAngles: model.HeelAngles(),
	})
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeValidation, "invalid plot id"))
		return
	}
	plot, ok := s.plots.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, apperrors.New(apperrors.ErrCodeValidation, "plot not found or expired"))
		return
	}
	w.Header().Set("Content-Type", plot.contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(plot.data)
}

// =============================================================================
// Plot Store
// =============================================================================

// plotStore holds rendered charts for retrieval by ID. Entries expire after
// a TTL and are pruned lazily on writes.
type plotStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]plotEntry
}

type plotEntry struct {
	data        []byte
	contentType string
	created     time.Time
}

func newPlotStore(ttl time.Duration) *plotStore {
	return &plotStore{ttl: ttl, entries: make(map[string]plotEntry)}
}

func (p *plotStore) put(data []byte, contentType string) string {
	id := uuid.NewString()
	now := time.Now()
	p.mu.Lock()
	defer p.mu.Unlock()
	for k, e := range p.entries {
		if now.Sub(e.created) > p.ttl {
			delete(p.entries, k)
		}
	}
	p.entries[id] = plotEntry{data: data, contentType: contentType, created: now}
	return id
}

func (p *plotStore) get(id string) (plotEntry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[id]
	if ok && time.Since(e.created) > p.ttl {
		delete(p.entries, id)
		return plotEntry{}, false
	}
	return e, ok
}

// =============================================================================
// Helpers
// =============================================================================

func contentTypeFor(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	default:
		return "image/png"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, `{"error":{"code":"INTERNAL_ERROR","message":"encode response"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(apperrors.GetCode(err)),
		Message: err.Error(),
	}})
}
