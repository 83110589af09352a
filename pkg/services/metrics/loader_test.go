package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const legacyDocument = `{
	"metricas_principales": {"financieras": {"total_facturado": 42}},
	"analisis_servicios": {"URGENCIAS": {"total_facturado": 40, "total_pacientes": 2}}
}`

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type countingProvider struct {
	source domain.DocumentSource
	doc    *domain.AnalyticsDocument
	err    error
	calls  int
}

func (p *countingProvider) Source() domain.DocumentSource { return p.source }

func (p *countingProvider) Load(context.Context) (*domain.AnalyticsDocument, error) {
	p.calls++
	return p.doc, p.err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_FallbackPriority(t *testing.T) {
	dir := t.TempDir()
	legacyPath := writeFile(t, dir, "metricas.json", legacyDocument)
	corruptPath := writeFile(t, dir, "corrupt.json", `{"metricas_principales": `)

	expectedLegacy, err := Decode([]byte(legacyDocument))
	require.NoError(t, err)

	tests := []struct {
		name           string
		settings       Settings
		expectedSource domain.DocumentSource
		expectedDoc    *domain.AnalyticsDocument
	}{
		{
			name:           "canonical missing, legacy present",
			settings:       Settings{CanonicalPath: filepath.Join(dir, "missing.json"), LegacyPath: legacyPath},
			expectedSource: domain.SourceLegacy,
			expectedDoc:    expectedLegacy,
		},
		{
			name:           "canonical corrupt, legacy present",
			settings:       Settings{CanonicalPath: corruptPath, LegacyPath: legacyPath},
			expectedSource: domain.SourceLegacy,
			expectedDoc:    expectedLegacy,
		},
		{
			name:           "canonical present",
			settings:       Settings{CanonicalPath: legacyPath, LegacyPath: corruptPath},
			expectedSource: domain.SourceCanonical,
			expectedDoc:    expectedLegacy,
		},
		{
			name:           "both missing",
			settings:       Settings{CanonicalPath: corruptPath, LegacyPath: filepath.Join(dir, "missing.json")},
			expectedSource: domain.SourceSample,
			expectedDoc:    SampleDocument(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loaded, err := NewDefaultLoader(tt.settings, nil).Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSource, loaded.Source)
			assert.Equal(t, tt.expectedDoc, loaded.Document)
		})
	}
}

func TestLoader_ObjectStorage(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("Fetch", mock.Anything, "atlas", "canonical.json").Return(nil, errors.New("NoSuchKey"))
	fetcher.On("Fetch", mock.Anything, "atlas", "legacy.json").Return([]byte(legacyDocument), nil)

	loader := NewDefaultLoader(Settings{
		Bucket:       "atlas",
		CanonicalKey: "canonical.json",
		LegacyKey:    "legacy.json",
	}, fetcher)

	loaded, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SourceLegacy, loaded.Source)
	assert.Equal(t, 42.0, loaded.Document.PrincipalMetrics.Financial.TotalBilled)
	fetcher.AssertExpectations(t)
}

func TestFirstAvailable_EachProviderOnce(t *testing.T) {
	failing := &countingProvider{source: domain.SourceCanonical, err: errors.New("boom")}
	alsoFailing := &countingProvider{source: domain.SourceLegacy, err: errors.New("boom")}

	_, err := FirstAvailable(context.Background(), failing, alsoFailing)
	assert.ErrorIs(t, err, ErrNoDocument)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, alsoFailing.calls)

	doc := &domain.AnalyticsDocument{Timestamp: "t"}
	present := &countingProvider{source: domain.SourceLegacy, doc: doc}
	never := &countingProvider{source: domain.SourceSample}

	loaded, err := FirstAvailable(context.Background(), failing, present, never)
	require.NoError(t, err)
	assert.Same(t, doc, loaded.Document)
	assert.Equal(t, 0, never.calls)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "object", input: `{}`},
		{name: "array", input: `[]`, wantErr: true},
		{name: "truncated", input: `{"a":`, wantErr: true},
		{name: "wrong field type", input: `{"alertas": "none"}`, wantErr: true},
		{name: "empty", input: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedDocument)
				return
			}
			assert.NoError(t, err)
		})
	}
}
