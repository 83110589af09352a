package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	"github.com/aws/aws-sdk-go-v2/service/comprehend/types"
	"github.com/de-tools/health-atlas/pkg/models/domain"
)

type comprehendAPI interface {
	DetectSentiment(ctx context.Context, params *comprehend.DetectSentimentInput, optFns ...func(*comprehend.Options)) (*comprehend.DetectSentimentOutput, error)
}

type SentimentDetector struct {
	client comprehendAPI
}

func NewSentimentDetector(cfg awssdk.Config) *SentimentDetector {
	return &SentimentDetector{client: comprehend.NewFromConfig(cfg)}
}

func (d *SentimentDetector) DetectSentiment(ctx context.Context, text, languageCode string) (domain.SentimentResult, error) {
	resp, err := d.client.DetectSentiment(ctx, &comprehend.DetectSentimentInput{
		Text:         awssdk.String(text),
		LanguageCode: types.LanguageCode(languageCode),
	})
	if err != nil {
		return domain.SentimentResult{}, fmt.Errorf("failed to detect sentiment: %w", err)
	}

	result := domain.SentimentResult{
		Label: domain.SentimentLabel(resp.Sentiment),
		Model: "aws-comprehend",
	}
	if s := resp.SentimentScore; s != nil {
		result.Scores = domain.SentimentScores{
			Positive: float64(awssdk.ToFloat32(s.Positive)),
			Negative: float64(awssdk.ToFloat32(s.Negative)),
			Neutral:  float64(awssdk.ToFloat32(s.Neutral)),
			Mixed:    float64(awssdk.ToFloat32(s.Mixed)),
		}
	}

	switch result.Label {
	case domain.SentimentPositive:
		result.Confidence = result.Scores.Positive
	case domain.SentimentNegative:
		result.Confidence = result.Scores.Negative
	case domain.SentimentNeutral:
		result.Confidence = result.Scores.Neutral
	case domain.SentimentMixed:
		result.Confidence = result.Scores.Mixed
	}
	return result, nil
}
