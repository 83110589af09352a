package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/cloud"
	"github.com/tidwall/gjson"
)

var ErrMalformedDocument = errors.New("malformed analytics document")

// Provider is one tier of the document fallback chain.
type Provider interface {
	Source() domain.DocumentSource
	Load(ctx context.Context) (*domain.AnalyticsDocument, error)
}

// Decode parses an analytics document. The payload must be a JSON object; absent sections
// decode to their zero values.
func Decode(data []byte) (*domain.AnalyticsDocument, error) {
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, ErrMalformedDocument
	}

	var doc domain.AnalyticsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	return &doc, nil
}

type FileProvider struct {
	source domain.DocumentSource
	path   string
}

func NewFileProvider(source domain.DocumentSource, path string) *FileProvider {
	return &FileProvider{source: source, path: path}
}

func (p *FileProvider) Source() domain.DocumentSource {
	return p.source
}

func (p *FileProvider) Load(_ context.Context) (*domain.AnalyticsDocument, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p.path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", p.path, err)
	}
	return doc, nil
}

// ObjectProvider reads the document from object storage.
type ObjectProvider struct {
	source  domain.DocumentSource
	fetcher cloud.DocumentFetcher
	bucket  string
	key     string
}

func NewObjectProvider(source domain.DocumentSource, fetcher cloud.DocumentFetcher, bucket, key string) *ObjectProvider {
	return &ObjectProvider{source: source, fetcher: fetcher, bucket: bucket, key: key}
}

func (p *ObjectProvider) Source() domain.DocumentSource {
	return p.source
}

func (p *ObjectProvider) Load(ctx context.Context) (*domain.AnalyticsDocument, error) {
	data, err := p.fetcher.Fetch(ctx, p.bucket, p.key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch s3://%s/%s: %w", p.bucket, p.key, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode s3://%s/%s: %w", p.bucket, p.key, err)
	}
	return doc, nil
}

// SampleProvider always succeeds with the built-in sample document.
type SampleProvider struct{}

func (SampleProvider) Source() domain.DocumentSource {
	return domain.SourceSample
}

func (SampleProvider) Load(_ context.Context) (*domain.AnalyticsDocument, error) {
	return SampleDocument(), nil
}
