package cloud

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/telemetry"
	"github.com/rs/zerolog"
)

var ErrEmptyText = errors.New("text is required")

var (
	positiveTerms = []string{"excelente", "bueno", "mejor", "mejoría", "recuperación", "estable", "satisfactorio"}
	negativeTerms = []string{"malo", "peor", "deterioro", "complicación", "grave", "crítico", "preocupante"}
)

type SentimentService struct {
	detector     SentimentDetector
	languageCode string
}

// NewSentimentService accepts a nil detector, in which case the local lexicon is always used.
func NewSentimentService(detector SentimentDetector, languageCode string) *SentimentService {
	if languageCode == "" {
		languageCode = "es"
	}
	return &SentimentService{detector: detector, languageCode: languageCode}
}

func (s *SentimentService) Analyze(ctx context.Context, text string) (domain.SentimentResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.SentimentResult{}, ErrEmptyText
	}

	if s.detector != nil {
		result, err := s.detector.DetectSentiment(ctx, text, s.languageCode)
		if err == nil {
			return result, nil
		}
		zerolog.Ctx(ctx).Warn().Err(err).Msg("sentiment detector unavailable, using local lexicon")
	}

	telemetry.RecordFallback("sentiment")
	return LocalSentiment(text), nil
}

// LocalSentiment scores text by counting lexicon terms it contains.
func LocalSentiment(text string) domain.SentimentResult {
	lower := strings.ToLower(text)
	positive := countTerms(lower, positiveTerms)
	negative := countTerms(lower, negativeTerms)

	label := domain.SentimentNeutral
	confidence := 0.5
	switch {
	case positive > negative:
		label = domain.SentimentPositive
		confidence = math.Min(0.8, 0.5+float64(positive)*0.1)
	case negative > positive:
		label = domain.SentimentNegative
		confidence = math.Min(0.8, 0.5+float64(negative)*0.1)
	}

	scores := domain.SentimentScores{
		Positive: 1 - confidence,
		Negative: 1 - confidence,
		Neutral:  0.2,
		Mixed:    0.1,
	}
	switch label {
	case domain.SentimentPositive:
		scores.Positive = confidence
	case domain.SentimentNegative:
		scores.Negative = confidence
	case domain.SentimentNeutral:
		scores.Neutral = confidence
	}

	return domain.SentimentResult{
		Label:      label,
		Confidence: confidence,
		Scores:     scores,
		Model:      localModel,
	}
}

func countTerms(text string, terms []string) int {
	n := 0
	for _, t := range terms {
		if strings.Contains(text, t) {
			n++
		}
	}
	return n
}
