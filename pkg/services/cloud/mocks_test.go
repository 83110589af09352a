package cloud

import (
	"context"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/stretchr/testify/mock"
)

type mockExecutor struct {
	mock.Mock
}

func (m *mockExecutor) StartQuery(ctx context.Context, in QueryInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *mockExecutor) QueryStatus(ctx context.Context, executionID string) (QueryStatus, error) {
	args := m.Called(ctx, executionID)
	return args.Get(0).(QueryStatus), args.Error(1)
}

func (m *mockExecutor) QueryResults(ctx context.Context, executionID string) ([]string, [][]string, error) {
	args := m.Called(ctx, executionID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]string), args.Get(1).([][]string), args.Error(2)
}

type mockDetector struct {
	mock.Mock
}

func (m *mockDetector) DetectSentiment(ctx context.Context, text, languageCode string) (domain.SentimentResult, error) {
	args := m.Called(ctx, text, languageCode)
	return args.Get(0).(domain.SentimentResult), args.Error(1)
}

type mockPredictor struct {
	mock.Mock
}

func (m *mockPredictor) Predict(ctx context.Context, kind domain.PredictionKind, features []string) (float64, error) {
	args := m.Called(ctx, kind, features)
	return args.Get(0).(float64), args.Error(1)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, obj Object) (string, error) {
	args := m.Called(ctx, obj)
	return args.String(0), args.Error(1)
}
