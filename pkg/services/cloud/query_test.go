package cloud

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRunner(executor QueryExecutor) (*QueryRunner, *int) {
	runner := NewQueryRunner(executor, QueryConfig{
		Database:       "hospital_db",
		OutputLocation: "s3://results/",
	})
	sleeps := 0
	runner.sleep = func(context.Context, time.Duration) error {
		sleeps++
		return nil
	}
	return runner, &sleeps
}

func TestQueryRunner_Success(t *testing.T) {
	executor := new(mockExecutor)
	executor.On("StartQuery", mock.Anything, QueryInput{
		Query:          "SELECT 1",
		Database:       "hospital_db",
		OutputLocation: "s3://results/",
	}).Return("exec-1", nil)
	executor.On("QueryStatus", mock.Anything, "exec-1").Return(QueryStatus{State: domain.QueryRunning}, nil).Once()
	executor.On("QueryStatus", mock.Anything, "exec-1").Return(QueryStatus{State: domain.QuerySucceeded}, nil).Once()
	executor.On("QueryResults", mock.Anything, "exec-1").Return([]string{"n"}, [][]string{{"1"}}, nil)

	runner, sleeps := newTestRunner(executor)
	result, err := runner.Run(context.Background(), "SELECT 1", "")

	require.NoError(t, err)
	assert.Equal(t, domain.QueryResult{
		ExecutionID:    "exec-1",
		State:          domain.QuerySucceeded,
		Query:          "SELECT 1",
		ResultLocation: "s3://results/exec-1.csv",
		Columns:        []string{"n"},
		Rows:           [][]string{{"1"}},
		Attempts:       2,
		Model:          "aws-athena",
	}, result)
	assert.Equal(t, 2, *sleeps)
	executor.AssertExpectations(t)
}

func TestQueryRunner_TimesOutAfterMaxAttempts(t *testing.T) {
	executor := new(mockExecutor)
	executor.On("StartQuery", mock.Anything, mock.Anything).Return("exec-slow", nil)
	executor.On("QueryStatus", mock.Anything, "exec-slow").Return(QueryStatus{State: domain.QueryRunning}, nil)

	runner, sleeps := newTestRunner(executor)
	result, err := runner.Run(context.Background(), "SELECT * FROM big", "")

	require.NoError(t, err)
	assert.Equal(t, domain.QueryTimedOut, result.State)
	assert.True(t, result.Fallback)
	assert.Equal(t, DefaultMaxAttempts, result.Attempts)
	assert.Equal(t, DefaultMaxAttempts, *sleeps)
	assert.True(t, strings.HasPrefix(result.ExecutionID, "local-mock-"))
	assert.Equal(t, "local-memory", result.ResultLocation)
	assert.Len(t, result.Rows, 4)
	executor.AssertNumberOfCalls(t, "QueryStatus", DefaultMaxAttempts)
	executor.AssertNotCalled(t, "QueryResults", mock.Anything, mock.Anything)
}

func TestQueryRunner_Fallbacks(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(*mockExecutor)
		expectedState domain.QueryState
	}{
		{
			name: "start fails",
			setup: func(m *mockExecutor) {
				m.On("StartQuery", mock.Anything, mock.Anything).Return("", errors.New("access denied"))
			},
			expectedState: domain.QueryFailed,
		},
		{
			name: "query fails remotely",
			setup: func(m *mockExecutor) {
				m.On("StartQuery", mock.Anything, mock.Anything).Return("exec-2", nil)
				m.On("QueryStatus", mock.Anything, "exec-2").Return(QueryStatus{State: domain.QueryFailed, Reason: "syntax"}, nil)
			},
			expectedState: domain.QueryFailed,
		},
		{
			name: "query cancelled",
			setup: func(m *mockExecutor) {
				m.On("StartQuery", mock.Anything, mock.Anything).Return("exec-3", nil)
				m.On("QueryStatus", mock.Anything, "exec-3").Return(QueryStatus{State: domain.QueryCancelled}, nil)
			},
			expectedState: domain.QueryCancelled,
		},
		{
			name: "results unreadable",
			setup: func(m *mockExecutor) {
				m.On("StartQuery", mock.Anything, mock.Anything).Return("exec-4", nil)
				m.On("QueryStatus", mock.Anything, "exec-4").Return(QueryStatus{State: domain.QuerySucceeded}, nil)
				m.On("QueryResults", mock.Anything, "exec-4").Return(nil, nil, errors.New("gone"))
			},
			expectedState: domain.QueryFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := new(mockExecutor)
			tt.setup(executor)

			runner, _ := newTestRunner(executor)
			result, err := runner.Run(context.Background(), "SELECT 1", "other_db")

			require.NoError(t, err)
			assert.Equal(t, tt.expectedState, result.State)
			assert.True(t, result.Fallback)
			assert.Equal(t, "local-enhanced", result.Model)
		})
	}
}

func TestQueryRunner_NilExecutor(t *testing.T) {
	runner, sleeps := newTestRunner(nil)
	result, err := runner.Run(context.Background(), "SELECT 1", "")

	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, domain.QueryFailed, result.State)
	assert.Equal(t, []string{"servicio", "total_pacientes", "costo_promedio", "total_facturado", "alcaldia"}, result.Columns)
	assert.Zero(t, *sleeps)
}

func TestQueryRunner_EmptyQuery(t *testing.T) {
	runner, _ := newTestRunner(nil)
	_, err := runner.Run(context.Background(), "   ", "")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestQueryRunner_ContextCancelled(t *testing.T) {
	executor := new(mockExecutor)
	executor.On("StartQuery", mock.Anything, mock.Anything).Return("exec-5", nil)

	runner := NewQueryRunner(executor, QueryConfig{PollInterval: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, "SELECT 1", "")
	assert.ErrorIs(t, err, context.Canceled)
	executor.AssertNotCalled(t, "QueryStatus", mock.Anything, mock.Anything)
}

func TestPreview(t *testing.T) {
	short := "SELECT 1"
	assert.Equal(t, short, preview(short))

	long := strings.Repeat("ñ", 150)
	got := preview(long)
	assert.Equal(t, strings.Repeat("ñ", 100)+"...", got)
}
