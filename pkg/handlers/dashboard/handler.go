package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/de-tools/health-atlas/pkg/adapters"
	"github.com/de-tools/health-atlas/pkg/handlers"
	"github.com/de-tools/health-atlas/pkg/models/api"
	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/report"
	"github.com/de-tools/health-atlas/pkg/services/views"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type DocumentLoader interface {
	Load(ctx context.Context) (domain.LoadedDocument, error)
}

type ReportCompiler interface {
	Compile(ctx context.Context, loaded domain.LoadedDocument, req report.Request) (report.Result, error)
}

// Handler serves the read-only dashboard views and report downloads.
type Handler struct {
	loader      DocumentLoader
	transformer *views.Transformer
	compiler    ReportCompiler
}

func NewHandler(loader DocumentLoader, transformer *views.Transformer, compiler ReportCompiler) *Handler {
	return &Handler{
		loader:      loader,
		transformer: transformer,
		compiler:    compiler,
	}
}

func (h *Handler) Areas(w http.ResponseWriter, r *http.Request) {
	loaded, ok := h.load(w, r)
	if !ok {
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapAreaBundleDomainToApi(h.transformer.Areas(loaded)))
}

func (h *Handler) Area(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "area")
	loaded, ok := h.load(w, r)
	if !ok {
		return
	}

	view, err := h.transformer.AreaByName(loaded.Document, name)
	if err != nil {
		handlers.WriteError(w, r, http.StatusNotFound, err.Error())
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapAreaDomainToApi(view))
}

func (h *Handler) CostsByDistrict(w http.ResponseWriter, r *http.Request) {
	level := domain.RegionLevelDistrict
	switch q := r.URL.Query().Get("level"); q {
	case "", string(domain.RegionLevelDistrict):
	case string(domain.RegionLevelState):
		level = domain.RegionLevelState
	default:
		handlers.WriteError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid level %s, expected district or state", strconv.Quote(q)))
		return
	}

	loaded, ok := h.load(w, r)
	if !ok {
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapGeographicDomainToApi(h.transformer.Geographic(loaded.Document, level)))
}

func (h *Handler) CostsByMotive(w http.ResponseWriter, r *http.Request) {
	loaded, ok := h.load(w, r)
	if !ok {
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapMotivesDomainToApi(h.transformer.Motives(loaded.Document)))
}

func (h *Handler) Trends(w http.ResponseWriter, r *http.Request) {
	loaded, ok := h.load(w, r)
	if !ok {
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapTrendsDomainToApi(h.transformer.Trends(loaded)))
}

func (h *Handler) Predictive(w http.ResponseWriter, r *http.Request) {
	loaded, ok := h.load(w, r)
	if !ok {
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapPredictiveDomainToApi(h.transformer.Predictive(loaded)))
}

func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	loaded, ok := h.load(w, r)
	if !ok {
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapOverviewDomainToApi(h.transformer.Overview(loaded)))
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var req api.DownloadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	loaded, ok := h.load(w, r)
	if !ok {
		return
	}

	result, err := h.compiler.Compile(r.Context(), loaded, adapters.MapDownloadRequestApiToReport(req))
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, report.ErrUnknownTemplate), errors.Is(err, report.ErrUnsupportedFormat):
			status = http.StatusBadRequest
		case errors.Is(err, views.ErrAreaNotFound):
			status = http.StatusNotFound
		}
		logger.Error().
			Err(err).
			Str("template", req.Template).
			Str("format", req.Format).
			Msg("failed to compile report")
		handlers.WriteError(w, r, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Payload)))
	if result.ArchiveLocation != "" {
		w.Header().Set("X-Archive-Location", result.ArchiveLocation)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Payload); err != nil {
		logger.Error().
			Err(err).
			Str("filename", result.Filename).
			Msg("failed to write report")
	}
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (domain.LoadedDocument, bool) {
	loaded, err := h.loader.Load(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to load analytics document")
		handlers.WriteError(w, r, http.StatusInternalServerError, err.Error())
		return domain.LoadedDocument{}, false
	}
	return loaded, true
}
