package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/de-tools/health-atlas/pkg/models/api"
	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/anonymize"
	"github.com/de-tools/health-atlas/pkg/services/cloud"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) UploadRecords(ctx context.Context, filename string, records []anonymize.Record) (domain.UploadResult, error) {
	args := m.Called(ctx, filename, records)
	return args.Get(0).(domain.UploadResult), args.Error(1)
}

func newRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/s3/upload", h.Upload)
	r.Post("/athena/query", h.Query)
	r.Post("/sentiment", h.Sentiment)
	r.Post("/predict/{kind}", h.Predict)
	return r
}

// newLocalHandler wires the real services with no remote backends, so every call takes the
// local path.
func newLocalHandler(uploader RecordUploader) *Handler {
	return NewHandler(
		uploader,
		cloud.NewQueryRunner(nil, cloud.QueryConfig{}),
		cloud.NewSentimentService(nil, "es"),
		cloud.NewPredictionService(nil),
	)
}

func post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body)))
	return rec
}

func TestHandler_Upload(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		result    domain.UploadResult
		err       error
		status    int
		wantError string
	}{
		{
			name: "uploaded",
			body: `{"filename":"ingresos","data":[{"servicio":"URGENCIAS","edad":34}]}`,
			result: domain.UploadResult{
				Bucket:   "atlas",
				Key:      "hospital-economics/anonymized/ingresos_1.csv",
				Location: "s3://atlas/hospital-economics/anonymized/ingresos_1.csv",
				Records:  1,
			},
			status: http.StatusOK,
		},
		{
			name:      "missing data",
			body:      `{"filename":"ingresos","data":[]}`,
			err:       cloud.ErrEmptyUpload,
			status:    http.StatusBadRequest,
			wantError: "data and filename are required",
		},
		{
			name:      "storage failure",
			body:      `{"filename":"ingresos","data":[{"servicio":"URGENCIAS"}]}`,
			err:       errors.New("access denied"),
			status:    http.StatusInternalServerError,
			wantError: "access denied",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			uploader := new(mockUploader)
			uploader.On("UploadRecords", mock.Anything, "ingresos", mock.Anything).Return(tc.result, tc.err)
			router := newRouter(newLocalHandler(uploader))

			rec := post(router, "/s3/upload", tc.body)

			assert.Equal(t, tc.status, rec.Code)
			if tc.wantError != "" {
				assert.JSONEq(t, `{"error":"`+tc.wantError+`"}`, rec.Body.String())
				return
			}
			var resp api.UploadResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.True(t, resp.Success)
			assert.Equal(t, tc.result.Location, resp.Location)
			assert.Equal(t, 1, resp.Records)
		})
	}
}

func TestHandler_UploadDecodesRecords(t *testing.T) {
	uploader := new(mockUploader)
	uploader.On("UploadRecords", mock.Anything, "ingresos", mock.MatchedBy(func(records []anonymize.Record) bool {
		return len(records) == 1 && records[0].Service == "URGENCIAS" && records[0].Age != nil && *records[0].Age == 34
	})).Return(domain.UploadResult{Records: 1}, nil)
	router := newRouter(newLocalHandler(uploader))

	rec := post(router, "/s3/upload", `{"filename":"ingresos","data":[{"servicio":"URGENCIAS","edad":34}]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	uploader.AssertExpectations(t)
}

func TestHandler_Query(t *testing.T) {
	router := newRouter(newLocalHandler(new(mockUploader)))

	t.Run("local result set", func(t *testing.T) {
		rec := post(router, "/athena/query", `{"query":"SELECT 1"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.QueryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Fallback)
		assert.Equal(t, "local-enhanced", resp.Model)
		assert.Len(t, resp.Rows, 4)
		assert.Equal(t, "servicio", resp.Columns[0])
	})

	t.Run("empty query", func(t *testing.T) {
		rec := post(router, "/athena/query", `{"query":"  "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"query is required"}`, rec.Body.String())
	})

	t.Run("invalid body", func(t *testing.T) {
		rec := post(router, "/athena/query", `not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Sentiment(t *testing.T) {
	router := newRouter(newLocalHandler(new(mockUploader)))

	tests := []struct {
		name      string
		body      string
		status    int
		sentiment string
	}{
		{name: "positive", body: `{"text":"excelente atencion"}`, status: http.StatusOK, sentiment: "POSITIVE"},
		{name: "neutral", body: `{"text":"sin comentarios"}`, status: http.StatusOK, sentiment: "NEUTRAL"},
		{name: "empty", body: `{"text":""}`, status: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(router, "/sentiment", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			if tc.sentiment == "" {
				return
			}
			var resp api.SentimentResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.sentiment, resp.Sentiment)
			assert.Equal(t, "local-enhanced", resp.Model)
		})
	}
}

func TestHandler_Predict(t *testing.T) {
	router := newRouter(newLocalHandler(new(mockUploader)))

	tests := []struct {
		name       string
		path       string
		body       string
		status     int
		prediction float64
	}{
		{
			name:       "demand",
			path:       "/predict/demand",
			body:       `{"date":"2025-01-06","service":"URGENCIAS"}`,
			status:     http.StatusOK,
			prediction: 234,
		},
		{
			name:       "cost",
			path:       "/predict/cost",
			body:       `{"service":"CIRUGIA","district":"COYOACAN","stay_days":3}`,
			status:     http.StatusOK,
			prediction: 49500,
		},
		{
			name:   "unknown kind",
			path:   "/predict/weather",
			body:   `{}`,
			status: http.StatusNotFound,
		},
		{
			name:   "invalid date",
			path:   "/predict/demand",
			body:   `{"date":"06/01/2025"}`,
			status: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(router, tc.path, tc.body)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status != http.StatusOK {
				var resp api.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.Error)
				return
			}
			var resp api.PredictResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.prediction, resp.Prediction)
			assert.True(t, resp.Fallback)
		})
	}
}
