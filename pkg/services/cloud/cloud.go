package cloud

import (
	"context"
	"errors"

	"github.com/de-tools/health-atlas/pkg/models/domain"
)

// ErrUnavailable is returned when a capability is not configured for this process.
var ErrUnavailable = errors.New("capability unavailable")

// DocumentFetcher reads a stored document by bucket and key. Not-found and access failures are
// reported uniformly as an error.
type DocumentFetcher interface {
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
}

type Object struct {
	Bucket      string
	Key         string
	ContentType string
	Body        []byte
	Metadata    map[string]string
}

// ObjectUploader stores a named payload and returns its location.
type ObjectUploader interface {
	Upload(ctx context.Context, obj Object) (string, error)
}

type QueryInput struct {
	Query          string
	Database       string
	OutputLocation string
	Workgroup      string
}

type QueryStatus struct {
	State          domain.QueryState
	ResultLocation string
	Reason         string
}

// QueryExecutor runs federated queries asynchronously.
type QueryExecutor interface {
	StartQuery(ctx context.Context, in QueryInput) (string, error)
	QueryStatus(ctx context.Context, executionID string) (QueryStatus, error)
	QueryResults(ctx context.Context, executionID string) (columns []string, rows [][]string, err error)
}

// SentimentDetector classifies UTF-8 text.
type SentimentDetector interface {
	DetectSentiment(ctx context.Context, text, languageCode string) (domain.SentimentResult, error)
}

// Predictor invokes a hosted model with a CSV feature row and returns its scalar output.
type Predictor interface {
	Predict(ctx context.Context, kind domain.PredictionKind, features []string) (float64, error)
}
