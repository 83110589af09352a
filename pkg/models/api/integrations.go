package api

import "github.com/de-tools/health-atlas/pkg/services/anonymize"

type UploadRequest struct {
	Filename string             `json:"filename"`
	Data     []anonymize.Record `json:"data"`
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	Bucket   string `json:"bucket"`
	Key      string `json:"key"`
	Location string `json:"location"`
	Records  int    `json:"records"`
}

type QueryRequest struct {
	Query    string `json:"query"`
	Database string `json:"database,omitempty"`
}

type QueryResponse struct {
	ExecutionID    string     `json:"execution_id"`
	State          string     `json:"state"`
	Query          string     `json:"query"`
	ResultLocation string     `json:"result_location"`
	Columns        []string   `json:"columns"`
	Rows           [][]string `json:"rows"`
	Attempts       int        `json:"attempts"`
	Model          string     `json:"model"`
	Fallback       bool       `json:"fallback"`
}

type SentimentRequest struct {
	Text string `json:"text"`
}

type SentimentScores struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Mixed    float64 `json:"mixed"`
}

type SentimentResponse struct {
	Sentiment  string          `json:"sentiment"`
	Confidence float64         `json:"confidence"`
	Scores     SentimentScores `json:"scores"`
	Model      string          `json:"model"`
}

type PredictRequest struct {
	Date        string  `json:"date,omitempty"`
	Service     string  `json:"service,omitempty"`
	District    string  `json:"district,omitempty"`
	AgeRange    string  `json:"age_range,omitempty"`
	StayDays    float64 `json:"stay_days,omitempty"`
	TotalBilled float64 `json:"total_billed,omitempty"`
}

type PredictResponse struct {
	Kind       string  `json:"kind"`
	Prediction float64 `json:"prediction"`
	Confidence float64 `json:"confidence"`
	Model      string  `json:"model"`
	Fallback   bool    `json:"fallback"`
}
