package aws

import (
	"context"
	"fmt"
	"slices"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/cloud"
)

// maxResultRows caps how many rows are pulled back into memory for one query.
const maxResultRows = 1000

type athenaAPI interface {
	StartQueryExecution(ctx context.Context, params *athena.StartQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error)
	GetQueryExecution(ctx context.Context, params *athena.GetQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error)
	GetQueryResults(ctx context.Context, params *athena.GetQueryResultsInput, optFns ...func(*athena.Options)) (*athena.GetQueryResultsOutput, error)
}

type QueryExecutor struct {
	client athenaAPI
}

func NewQueryExecutor(cfg awssdk.Config) *QueryExecutor {
	return &QueryExecutor{client: athena.NewFromConfig(cfg)}
}

func (e *QueryExecutor) StartQuery(ctx context.Context, in cloud.QueryInput) (string, error) {
	input := &athena.StartQueryExecutionInput{
		QueryString: awssdk.String(in.Query),
	}
	if in.Database != "" {
		input.QueryExecutionContext = &types.QueryExecutionContext{Database: awssdk.String(in.Database)}
	}
	if in.OutputLocation != "" {
		input.ResultConfiguration = &types.ResultConfiguration{OutputLocation: awssdk.String(in.OutputLocation)}
	}
	if in.Workgroup != "" {
		input.WorkGroup = awssdk.String(in.Workgroup)
	}

	resp, err := e.client.StartQueryExecution(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to start query: %w", err)
	}
	return awssdk.ToString(resp.QueryExecutionId), nil
}

func (e *QueryExecutor) QueryStatus(ctx context.Context, executionID string) (cloud.QueryStatus, error) {
	resp, err := e.client.GetQueryExecution(ctx, &athena.GetQueryExecutionInput{
		QueryExecutionId: awssdk.String(executionID),
	})
	if err != nil {
		return cloud.QueryStatus{}, fmt.Errorf("failed to get query %s: %w", executionID, err)
	}

	var status cloud.QueryStatus
	if exec := resp.QueryExecution; exec != nil {
		if exec.Status != nil {
			status.State = domain.QueryState(exec.Status.State)
			status.Reason = awssdk.ToString(exec.Status.StateChangeReason)
		}
		if exec.ResultConfiguration != nil {
			status.ResultLocation = awssdk.ToString(exec.ResultConfiguration.OutputLocation)
		}
	}
	if status.State == "" {
		status.State = domain.QueryQueued
	}
	return status, nil
}

func (e *QueryExecutor) QueryResults(ctx context.Context, executionID string) ([]string, [][]string, error) {
	var (
		columns   []string
		rows      [][]string
		nextToken *string
	)
	for {
		resp, err := e.client.GetQueryResults(ctx, &athena.GetQueryResultsInput{
			QueryExecutionId: awssdk.String(executionID),
			NextToken:        nextToken,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get results for query %s: %w", executionID, err)
		}
		if resp.ResultSet != nil {
			if columns == nil && resp.ResultSet.ResultSetMetadata != nil {
				for _, c := range resp.ResultSet.ResultSetMetadata.ColumnInfo {
					columns = append(columns, awssdk.ToString(c.Name))
				}
			}
			for _, r := range resp.ResultSet.Rows {
				row := make([]string, 0, len(r.Data))
				for _, d := range r.Data {
					row = append(row, awssdk.ToString(d.VarCharValue))
				}
				// SELECT results repeat the header as the first row.
				if len(rows) == 0 && slices.Equal(row, columns) {
					continue
				}
				rows = append(rows, row)
			}
		}

		nextToken = resp.NextToken
		if nextToken == nil || len(rows) >= maxResultRows {
			break
		}
	}
	if len(rows) > maxResultRows {
		rows = rows[:maxResultRows]
	}
	return columns, rows, nil
}
