package adapters

import (
	"github.com/de-tools/health-atlas/pkg/models/api"
	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/report"
)

func MapUploadResultDomainToApi(r domain.UploadResult) api.UploadResponse {
	return api.UploadResponse{
		Success:  true,
		Bucket:   r.Bucket,
		Key:      r.Key,
		Location: r.Location,
		Records:  r.Records,
	}
}

func MapQueryResultDomainToApi(r domain.QueryResult) api.QueryResponse {
	resp := api.QueryResponse{
		ExecutionID:    r.ExecutionID,
		State:          string(r.State),
		Query:          r.Query,
		ResultLocation: r.ResultLocation,
		Columns:        r.Columns,
		Rows:           r.Rows,
		Attempts:       r.Attempts,
		Model:          r.Model,
		Fallback:       r.Fallback,
	}
	if resp.Columns == nil {
		resp.Columns = []string{}
	}
	if resp.Rows == nil {
		resp.Rows = [][]string{}
	}
	return resp
}

func MapSentimentResultDomainToApi(r domain.SentimentResult) api.SentimentResponse {
	return api.SentimentResponse{
		Sentiment:  string(r.Label),
		Confidence: r.Confidence,
		Scores: api.SentimentScores{
			Positive: r.Scores.Positive,
			Negative: r.Scores.Negative,
			Neutral:  r.Scores.Neutral,
			Mixed:    r.Scores.Mixed,
		},
		Model: r.Model,
	}
}

func MapPredictRequestApiToDomain(req api.PredictRequest) domain.PredictionInput {
	return domain.PredictionInput{
		Date:        req.Date,
		Service:     req.Service,
		District:    req.District,
		AgeRange:    req.AgeRange,
		StayDays:    req.StayDays,
		TotalBilled: req.TotalBilled,
	}
}

func MapPredictionResultDomainToApi(r domain.PredictionResult) api.PredictResponse {
	return api.PredictResponse{
		Kind:       string(r.Kind),
		Prediction: r.Value,
		Confidence: r.Confidence,
		Model:      r.Model,
		Fallback:   r.Fallback,
	}
}

func MapDownloadRequestApiToReport(req api.DownloadRequest) report.Request {
	return report.Request{
		Template:           req.Template,
		Format:             req.Format,
		Period:             req.Period,
		Areas:              req.Areas,
		IncludeComparative: req.IncludeComparative,
		IncludePredictions: req.IncludePredictions,
		IncludeGraphics:    req.IncludeGraphics,
		Archive:            req.Archive,
	}
}
