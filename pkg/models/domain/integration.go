package domain

// SentimentLabel is the closed set of labels a sentiment detector may return.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
	SentimentMixed    SentimentLabel = "MIXED"
)

type SentimentScores struct {
	Positive float64
	Negative float64
	Neutral  float64
	Mixed    float64
}

type SentimentResult struct {
	Label      SentimentLabel
	Confidence float64
	Scores     SentimentScores
	Model      string
}

// QueryState is the lifecycle of a federated query.
type QueryState string

const (
	QueryQueued    QueryState = "QUEUED"
	QueryRunning   QueryState = "RUNNING"
	QuerySucceeded QueryState = "SUCCEEDED"
	QueryFailed    QueryState = "FAILED"
	QueryCancelled QueryState = "CANCELLED"
	QueryTimedOut  QueryState = "TIMED_OUT"
)

// Terminal reports whether polling should stop.
func (s QueryState) Terminal() bool {
	return s != QueryQueued && s != QueryRunning
}

type QueryResult struct {
	ExecutionID    string
	State          QueryState
	Query          string
	ResultLocation string
	Columns        []string
	Rows           [][]string
	Attempts       int
	Model          string
	// Fallback is true when the rows were produced locally.
	Fallback bool
}

type PredictionKind string

const (
	PredictionDemand  PredictionKind = "demand"
	PredictionCost    PredictionKind = "cost"
	PredictionAnomaly PredictionKind = "anomaly"
)

// PredictionInput carries the features every prediction kind draws from. Unused fields are zero.
type PredictionInput struct {
	Date        string // YYYY-MM-DD
	Service     string
	District    string
	AgeRange    string
	StayDays    float64
	TotalBilled float64
}

type PredictionResult struct {
	Kind       PredictionKind
	Value      float64
	Confidence float64
	Model      string
	Fallback   bool
}

type UploadResult struct {
	Bucket   string
	Key      string
	Location string
	Records  int
}
