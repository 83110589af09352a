package integrations

import (
	"context"
	"errors"
	"net/http"

	"github.com/de-tools/health-atlas/pkg/adapters"
	"github.com/de-tools/health-atlas/pkg/handlers"
	"github.com/de-tools/health-atlas/pkg/models/api"
	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/anonymize"
	"github.com/de-tools/health-atlas/pkg/services/cloud"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type RecordUploader interface {
	UploadRecords(ctx context.Context, filename string, records []anonymize.Record) (domain.UploadResult, error)
}

type QueryRunner interface {
	Run(ctx context.Context, query, database string) (domain.QueryResult, error)
}

type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) (domain.SentimentResult, error)
}

type PredictionService interface {
	Predict(ctx context.Context, kind domain.PredictionKind, in domain.PredictionInput) (domain.PredictionResult, error)
}

// Handler exposes the external cloud capabilities. Query, sentiment and prediction calls
// degrade to local results, so only validation errors and failed uploads reach the client.
type Handler struct {
	uploader   RecordUploader
	queries    QueryRunner
	sentiment  SentimentAnalyzer
	prediction PredictionService
}

func NewHandler(uploader RecordUploader, queries QueryRunner, sentiment SentimentAnalyzer, prediction PredictionService) *Handler {
	return &Handler{
		uploader:   uploader,
		queries:    queries,
		sentiment:  sentiment,
		prediction: prediction,
	}
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var req api.UploadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.uploader.UploadRecords(r.Context(), req.Filename, req.Data)
	if err != nil {
		if errors.Is(err, cloud.ErrEmptyUpload) {
			handlers.WriteError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error().
			Err(err).
			Str("filename", req.Filename).
			Msg("failed to upload records")
		handlers.WriteError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapUploadResultDomainToApi(result))
}

func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req api.QueryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.queries.Run(r.Context(), req.Query, req.Database)
	if err != nil {
		handlers.WriteError(w, r, statusFor(err), err.Error())
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapQueryResultDomainToApi(result))
}

func (h *Handler) Sentiment(w http.ResponseWriter, r *http.Request) {
	var req api.SentimentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.sentiment.Analyze(r.Context(), req.Text)
	if err != nil {
		handlers.WriteError(w, r, statusFor(err), err.Error())
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapSentimentResultDomainToApi(result))
}

func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	kind, err := cloud.ParsePredictionKind(chi.URLParam(r, "kind"))
	if err != nil {
		handlers.WriteError(w, r, http.StatusNotFound, err.Error())
		return
	}

	var req api.PredictRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	// Every remaining failure is an invalid input, remote errors fall back locally.
	result, err := h.prediction.Predict(r.Context(), kind, adapters.MapPredictRequestApiToDomain(req))
	if err != nil {
		handlers.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapPredictionResultDomainToApi(result))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, cloud.ErrEmptyQuery), errors.Is(err, cloud.ErrEmptyText):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
