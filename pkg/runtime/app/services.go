package app

import (
	"context"
	"fmt"

	"github.com/de-tools/health-atlas/pkg/services/cloud"
	"github.com/de-tools/health-atlas/pkg/services/cloud/aws"
	"github.com/de-tools/health-atlas/pkg/services/config"
	"github.com/de-tools/health-atlas/pkg/services/metrics"
	"github.com/de-tools/health-atlas/pkg/services/report"
	"github.com/de-tools/health-atlas/pkg/services/views"
	"github.com/rs/zerolog"
)

// Services is the wired service graph shared by the web and CLI entry points.
type Services struct {
	Loader      *metrics.Loader
	Transformer *views.Transformer
	Compiler    *report.Compiler
	Storage     *cloud.StorageService
	Queries     *cloud.QueryRunner
	Sentiment   *cloud.SentimentService
	Prediction  *cloud.PredictionService
}

// backends holds the optional remote implementations. Fields stay nil interfaces when AWS is
// disabled so each service takes its local path.
type backends struct {
	fetcher   cloud.DocumentFetcher
	uploader  cloud.ObjectUploader
	executor  cloud.QueryExecutor
	detector  cloud.SentimentDetector
	predictor cloud.Predictor
}

// Build wires every service from settings. AWS clients are only constructed when aws.enabled
// is set; a credentials failure is returned rather than silently degraded.
func Build(ctx context.Context, settings *config.Settings) (*Services, error) {
	var b backends
	if settings.AWS.Enabled {
		cfg, err := aws.LoadConfig(ctx, settings.AWS.Profile, settings.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		store := aws.NewObjectStore(cfg)
		b = backends{
			fetcher:   store,
			uploader:  store,
			executor:  aws.NewQueryExecutor(cfg),
			detector:  aws.NewSentimentDetector(cfg),
			predictor: aws.NewPredictor(cfg, settings.Endpoints()),
		}
		zerolog.Ctx(ctx).Info().
			Str("region", cfg.Region).
			Str("profile", settings.AWS.Profile).
			Msg("AWS integrations enabled")
	} else {
		zerolog.Ctx(ctx).Info().Msg("AWS integrations disabled, using local fallbacks")
	}

	return newServices(settings, b), nil
}

func newServices(settings *config.Settings, b backends) *Services {
	transformer := views.NewTransformer(settings.Ratios())
	storage := cloud.NewStorageService(b.uploader, settings.Storage())

	return &Services{
		Loader:      metrics.NewDefaultLoader(settings.LoaderSettings(), b.fetcher),
		Transformer: transformer,
		Compiler:    report.NewCompiler(transformer, report.DefaultRegistry(), storage),
		Storage:     storage,
		Queries:     cloud.NewQueryRunner(b.executor, settings.Query()),
		Sentiment:   cloud.NewSentimentService(b.detector, settings.AWS.Comprehend.LanguageCode),
		Prediction:  cloud.NewPredictionService(b.predictor),
	}
}
