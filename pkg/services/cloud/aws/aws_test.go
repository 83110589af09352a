package aws

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	athenatypes "github.com/aws/aws-sdk-go-v2/service/athena/types"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	comprehendtypes "github.com/aws/aws-sdk-go-v2/service/comprehend/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/cloud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

type mockAthena struct {
	mock.Mock
}

func (m *mockAthena) StartQueryExecution(ctx context.Context, params *athena.StartQueryExecutionInput, _ ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*athena.StartQueryExecutionOutput), args.Error(1)
}

func (m *mockAthena) GetQueryExecution(ctx context.Context, params *athena.GetQueryExecutionInput, _ ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*athena.GetQueryExecutionOutput), args.Error(1)
}

func (m *mockAthena) GetQueryResults(ctx context.Context, params *athena.GetQueryResultsInput, _ ...func(*athena.Options)) (*athena.GetQueryResultsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*athena.GetQueryResultsOutput), args.Error(1)
}

type stubComprehend struct {
	out *comprehend.DetectSentimentOutput
	err error
	in  *comprehend.DetectSentimentInput
}

func (s *stubComprehend) DetectSentiment(_ context.Context, params *comprehend.DetectSentimentInput, _ ...func(*comprehend.Options)) (*comprehend.DetectSentimentOutput, error) {
	s.in = params
	return s.out, s.err
}

type stubSageMaker struct {
	body []byte
	err  error
	in   *sagemakerruntime.InvokeEndpointInput
}

func (s *stubSageMaker) InvokeEndpoint(_ context.Context, params *sagemakerruntime.InvokeEndpointInput, _ ...func(*sagemakerruntime.Options)) (*sagemakerruntime.InvokeEndpointOutput, error) {
	s.in = params
	if s.err != nil {
		return nil, s.err
	}
	return &sagemakerruntime.InvokeEndpointOutput{Body: s.body}, nil
}

func TestObjectStore_Fetch(t *testing.T) {
	client := new(mockS3)
	client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return awssdk.ToString(in.Bucket) == "atlas" && awssdk.ToString(in.Key) == "metrics.json"
	})).Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(`{"a":1}`))}, nil)
	client.On("GetObject", mock.Anything, mock.Anything).Return(nil, errors.New("NoSuchKey"))

	store := &ObjectStore{client: client}

	data, err := store.Fetch(context.Background(), "atlas", "metrics.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	_, err = store.Fetch(context.Background(), "atlas", "missing.json")
	assert.ErrorContains(t, err, "NoSuchKey")
}

func TestObjectStore_Upload(t *testing.T) {
	client := new(mockS3)
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return awssdk.ToString(in.Key) == "reports/r.csv" &&
			awssdk.ToString(in.ContentType) == "text/csv" &&
			in.Metadata["anonymized"] == "true" &&
			in.Body != nil
	})).Return(&s3.PutObjectOutput{}, nil)

	store := &ObjectStore{client: client}
	location, err := store.Upload(context.Background(), cloud.Object{
		Bucket:      "atlas",
		Key:         "reports/r.csv",
		ContentType: "text/csv",
		Body:        []byte("a,b\n"),
		Metadata:    map[string]string{"anonymized": "true"},
	})

	require.NoError(t, err)
	assert.Equal(t, "s3://atlas/reports/r.csv", location)
	client.AssertExpectations(t)
}

func TestQueryExecutor_StartAndStatus(t *testing.T) {
	client := new(mockAthena)
	client.On("StartQueryExecution", mock.Anything, mock.MatchedBy(func(in *athena.StartQueryExecutionInput) bool {
		return awssdk.ToString(in.QueryString) == "SELECT 1" &&
			awssdk.ToString(in.QueryExecutionContext.Database) == "hospital_db" &&
			awssdk.ToString(in.ResultConfiguration.OutputLocation) == "s3://results/" &&
			in.WorkGroup == nil
	})).Return(&athena.StartQueryExecutionOutput{QueryExecutionId: awssdk.String("exec-1")}, nil)
	client.On("GetQueryExecution", mock.Anything, mock.Anything).Return(&athena.GetQueryExecutionOutput{
		QueryExecution: &athenatypes.QueryExecution{
			Status: &athenatypes.QueryExecutionStatus{
				State:             athenatypes.QueryExecutionStateFailed,
				StateChangeReason: awssdk.String("SYNTAX_ERROR"),
			},
			ResultConfiguration: &athenatypes.ResultConfiguration{OutputLocation: awssdk.String("s3://results/exec-1.csv")},
		},
	}, nil)

	executor := &QueryExecutor{client: client}

	id, err := executor.StartQuery(context.Background(), cloud.QueryInput{
		Query:          "SELECT 1",
		Database:       "hospital_db",
		OutputLocation: "s3://results/",
	})
	require.NoError(t, err)
	assert.Equal(t, "exec-1", id)

	status, err := executor.QueryStatus(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, cloud.QueryStatus{
		State:          domain.QueryFailed,
		ResultLocation: "s3://results/exec-1.csv",
		Reason:         "SYNTAX_ERROR",
	}, status)
}

func datumRow(values ...string) athenatypes.Row {
	row := athenatypes.Row{}
	for _, v := range values {
		row.Data = append(row.Data, athenatypes.Datum{VarCharValue: awssdk.String(v)})
	}
	return row
}

func TestQueryExecutor_QueryResultsPaginates(t *testing.T) {
	client := new(mockAthena)
	meta := &athenatypes.ResultSetMetadata{ColumnInfo: []athenatypes.ColumnInfo{
		{Name: awssdk.String("servicio")}, {Name: awssdk.String("total")},
	}}
	client.On("GetQueryResults", mock.Anything, mock.MatchedBy(func(in *athena.GetQueryResultsInput) bool {
		return in.NextToken == nil
	})).Return(&athena.GetQueryResultsOutput{
		ResultSet: &athenatypes.ResultSet{
			ResultSetMetadata: meta,
			Rows:              []athenatypes.Row{datumRow("servicio", "total"), datumRow("URGENCIAS", "10")},
		},
		NextToken: awssdk.String("page-2"),
	}, nil)
	client.On("GetQueryResults", mock.Anything, mock.MatchedBy(func(in *athena.GetQueryResultsInput) bool {
		return awssdk.ToString(in.NextToken) == "page-2"
	})).Return(&athena.GetQueryResultsOutput{
		ResultSet: &athenatypes.ResultSet{
			ResultSetMetadata: meta,
			Rows:              []athenatypes.Row{datumRow("CIRUGIA", "4")},
		},
	}, nil)

	columns, rows, err := (&QueryExecutor{client: client}).QueryResults(context.Background(), "exec-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"servicio", "total"}, columns)
	assert.Equal(t, [][]string{{"URGENCIAS", "10"}, {"CIRUGIA", "4"}}, rows)
	client.AssertNumberOfCalls(t, "GetQueryResults", 2)
}

func TestSentimentDetector(t *testing.T) {
	client := &stubComprehend{out: &comprehend.DetectSentimentOutput{
		Sentiment: comprehendtypes.SentimentTypeNegative,
		SentimentScore: &comprehendtypes.SentimentScore{
			Positive: awssdk.Float32(0.125),
			Negative: awssdk.Float32(0.75),
			Neutral:  awssdk.Float32(0.125),
			Mixed:    awssdk.Float32(0),
		},
	}}

	result, err := (&SentimentDetector{client: client}).DetectSentiment(context.Background(), "grave", "es")

	require.NoError(t, err)
	assert.Equal(t, comprehendtypes.LanguageCodeEs, client.in.LanguageCode)
	assert.Equal(t, domain.SentimentNegative, result.Label)
	assert.Equal(t, 0.75, result.Confidence)
	assert.Equal(t, "aws-comprehend", result.Model)

	_, err = (&SentimentDetector{client: &stubComprehend{err: errors.New("throttled")}}).
		DetectSentiment(context.Background(), "x", "es")
	assert.Error(t, err)
}

func TestPredictor(t *testing.T) {
	client := &stubSageMaker{body: []byte(`{"predictions": [{"score": 142.5}]}`)}
	predictor := &Predictor{client: client, endpoints: map[domain.PredictionKind]string{
		domain.PredictionDemand: "demand-endpoint",
	}}

	value, err := predictor.Predict(context.Background(), domain.PredictionDemand, []string{"1", "2", "0", "3"})
	require.NoError(t, err)
	assert.Equal(t, 142.5, value)
	assert.Equal(t, "demand-endpoint", awssdk.ToString(client.in.EndpointName))
	assert.Equal(t, "text/csv", awssdk.ToString(client.in.ContentType))
	assert.Equal(t, "1,2,0,3", string(client.in.Body))

	_, err = predictor.Predict(context.Background(), domain.PredictionCost, nil)
	assert.ErrorIs(t, err, cloud.ErrUnavailable)
}

func TestParsePrediction(t *testing.T) {
	tests := []struct {
		body     string
		expected float64
		wantErr  bool
	}{
		{body: "12.5\n", expected: 12.5},
		{body: "[3, 4]", expected: 3},
		{body: `{"predictions": [7]}`, expected: 7},
		{body: `{"prediction": 0.42}`, expected: 0.42},
		{body: `{"label": "high"}`, wantErr: true},
		{body: "not a number", wantErr: true},
	}

	for _, tt := range tests {
		value, err := parsePrediction([]byte(tt.body))
		if tt.wantErr {
			assert.Error(t, err, tt.body)
			continue
		}
		require.NoError(t, err, tt.body)
		assert.Equal(t, tt.expected, value, tt.body)
	}
}
