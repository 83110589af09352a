package cloud

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/telemetry"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	DefaultPollInterval = time.Second
	DefaultMaxAttempts  = 30

	queryPreviewLength = 100
	localModel         = "local-enhanced"
)

var ErrEmptyQuery = errors.New("query is required")

type QueryConfig struct {
	Database       string
	OutputLocation string
	Workgroup      string
	PollInterval   time.Duration
	MaxAttempts    int
}

// QueryRunner executes a federated query and polls it to completion. Any outcome other than
// success is replaced with a local result set.
type QueryRunner struct {
	executor QueryExecutor
	cfg      QueryConfig
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewQueryRunner accepts a nil executor, in which case every query runs locally.
func NewQueryRunner(executor QueryExecutor, cfg QueryConfig) *QueryRunner {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	return &QueryRunner{executor: executor, cfg: cfg, sleep: sleepContext}
}

func (r *QueryRunner) Run(ctx context.Context, query, database string) (domain.QueryResult, error) {
	if strings.TrimSpace(query) == "" {
		return domain.QueryResult{}, ErrEmptyQuery
	}
	if database == "" {
		database = r.cfg.Database
	}
	logger := zerolog.Ctx(ctx)

	if r.executor == nil {
		return r.fallback(ctx, domain.QueryFailed, 0, ErrUnavailable), nil
	}

	id, err := r.executor.StartQuery(ctx, QueryInput{
		Query:          query,
		Database:       database,
		OutputLocation: r.cfg.OutputLocation,
		Workgroup:      r.cfg.Workgroup,
	})
	if err != nil {
		return r.fallback(ctx, domain.QueryFailed, 0, err), nil
	}

	state := domain.QueryQueued
	var status QueryStatus
	attempts := 0
	for !state.Terminal() {
		if attempts >= r.cfg.MaxAttempts {
			state = domain.QueryTimedOut
			break
		}
		if err := r.sleep(ctx, r.cfg.PollInterval); err != nil {
			return domain.QueryResult{}, err
		}
		attempts++

		status, err = r.executor.QueryStatus(ctx, id)
		if err != nil {
			return r.fallback(ctx, domain.QueryFailed, attempts, err), nil
		}
		state = status.State
	}

	if state != domain.QuerySucceeded {
		reason := fmt.Errorf("query %s ended in state %s: %s", id, state, status.Reason)
		return r.fallback(ctx, state, attempts, reason), nil
	}

	columns, rows, err := r.executor.QueryResults(ctx, id)
	if err != nil {
		return r.fallback(ctx, domain.QueryFailed, attempts, err), nil
	}

	location := status.ResultLocation
	if location == "" {
		location = r.cfg.OutputLocation + id + ".csv"
	}
	logger.Info().Str("execution_id", id).Int("attempts", attempts).Msg("query succeeded")

	return domain.QueryResult{
		ExecutionID:    id,
		State:          domain.QuerySucceeded,
		Query:          preview(query),
		ResultLocation: location,
		Columns:        columns,
		Rows:           rows,
		Attempts:       attempts,
		Model:          "aws-athena",
	}, nil
}

// fallback keeps the state that triggered it so callers can tell a timeout from a failure.
func (r *QueryRunner) fallback(ctx context.Context, state domain.QueryState, attempts int, cause error) domain.QueryResult {
	zerolog.Ctx(ctx).Warn().
		Err(cause).
		Str("state", string(state)).
		Msg("federated query unavailable, using local result set")
	telemetry.RecordFallback("query")

	columns, rows := localQueryRows()
	return domain.QueryResult{
		ExecutionID:    "local-mock-" + uuid.NewString(),
		State:          state,
		Query:          "Local query execution",
		ResultLocation: "local-memory",
		Columns:        columns,
		Rows:           rows,
		Attempts:       attempts,
		Model:          localModel,
		Fallback:       true,
	}
}

func localQueryRows() ([]string, [][]string) {
	return []string{"servicio", "total_pacientes", "costo_promedio", "total_facturado", "alcaldia"},
		[][]string{
			{"URGENCIAS", "1250", "5800", "7250000", "IZTAPALAPA"},
			{"HOSPITALIZACION", "890", "12500", "11125000", "GUSTAVO_A_MADERO"},
			{"CONSULTA_EXTERNA", "2100", "850", "1785000", "TLALPAN"},
			{"CIRUGIA", "320", "18500", "5920000", "COYOACAN"},
		}
}

func preview(query string) string {
	runes := []rune(query)
	if len(runes) <= queryPreviewLength {
		return query
	}
	return string(runes[:queryPreviewLength]) + "..."
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
