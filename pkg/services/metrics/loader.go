package metrics

import (
	"context"
	"errors"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/cloud"
	"github.com/de-tools/health-atlas/pkg/services/telemetry"
	"github.com/rs/zerolog"
)

var ErrNoDocument = errors.New("no analytics document available")

// FirstAvailable tries each provider exactly once, in order, and returns the first document
// that loads. Failures are logged and treated as an absent document.
func FirstAvailable(ctx context.Context, providers ...Provider) (domain.LoadedDocument, error) {
	logger := zerolog.Ctx(ctx)

	for _, p := range providers {
		doc, err := p.Load(ctx)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("source", string(p.Source())).
				Msg("analytics document unavailable, trying next source")
			continue
		}
		telemetry.RecordDocumentLoad(string(p.Source()))
		return domain.LoadedDocument{Document: doc, Source: p.Source()}, nil
	}

	return domain.LoadedDocument{}, ErrNoDocument
}

// Settings locates the canonical and legacy documents. When Bucket is set both are read from
// object storage, otherwise from the local paths.
type Settings struct {
	CanonicalPath string
	LegacyPath    string
	Bucket        string
	CanonicalKey  string
	LegacyKey     string
}

type Loader struct {
	providers []Provider
}

func NewLoader(providers ...Provider) *Loader {
	return &Loader{providers: providers}
}

// NewDefaultLoader builds the canonical, legacy, sample chain. fetcher may be nil when object
// storage is not configured.
func NewDefaultLoader(settings Settings, fetcher cloud.DocumentFetcher) *Loader {
	if settings.Bucket != "" && fetcher != nil {
		return NewLoader(
			NewObjectProvider(domain.SourceCanonical, fetcher, settings.Bucket, settings.CanonicalKey),
			NewObjectProvider(domain.SourceLegacy, fetcher, settings.Bucket, settings.LegacyKey),
			SampleProvider{},
		)
	}
	return NewLoader(
		NewFileProvider(domain.SourceCanonical, settings.CanonicalPath),
		NewFileProvider(domain.SourceLegacy, settings.LegacyPath),
		SampleProvider{},
	)
}

func (l *Loader) Load(ctx context.Context) (domain.LoadedDocument, error) {
	return FirstAvailable(ctx, l.providers...)
}
