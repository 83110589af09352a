package cloud

import (
	"context"
	"errors"
	"testing"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLocalSentiment(t *testing.T) {
	tests := []struct {
		name               string
		text               string
		expectedLabel      domain.SentimentLabel
		expectedConfidence float64
	}{
		{name: "positive", text: "Paciente estable con excelente recuperación", expectedLabel: domain.SentimentPositive, expectedConfidence: 0.8},
		{name: "negative", text: "Estado grave", expectedLabel: domain.SentimentNegative, expectedConfidence: 0.6},
		{name: "neutral", text: "Ingreso registrado", expectedLabel: domain.SentimentNeutral, expectedConfidence: 0.5},
		{name: "tie", text: "bueno pero grave", expectedLabel: domain.SentimentNeutral, expectedConfidence: 0.5},
		{name: "case insensitive", text: "MEJORIA notable", expectedLabel: domain.SentimentPositive, expectedConfidence: 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := LocalSentiment(tt.text)
			assert.Equal(t, tt.expectedLabel, result.Label)
			assert.InDelta(t, tt.expectedConfidence, result.Confidence, 1e-9)
			assert.Equal(t, "local-enhanced", result.Model)
		})
	}
}

func TestLocalSentiment_Scores(t *testing.T) {
	result := LocalSentiment("resultado satisfactorio")

	assert.InDelta(t, 0.6, result.Scores.Positive, 1e-9)
	assert.InDelta(t, 0.4, result.Scores.Negative, 1e-9)
	assert.InDelta(t, 0.2, result.Scores.Neutral, 1e-9)
	assert.InDelta(t, 0.1, result.Scores.Mixed, 1e-9)
}

func TestSentimentService_Analyze(t *testing.T) {
	remote := domain.SentimentResult{Label: domain.SentimentMixed, Confidence: 0.7, Model: "aws-comprehend"}

	t.Run("remote detector", func(t *testing.T) {
		detector := new(mockDetector)
		detector.On("DetectSentiment", mock.Anything, "texto", "es").Return(remote, nil)

		result, err := NewSentimentService(detector, "").Analyze(context.Background(), "texto")
		require.NoError(t, err)
		assert.Equal(t, remote, result)
		detector.AssertExpectations(t)
	})

	t.Run("detector failure uses lexicon", func(t *testing.T) {
		detector := new(mockDetector)
		detector.On("DetectSentiment", mock.Anything, "muy malo", "en").
			Return(domain.SentimentResult{}, errors.New("throttled"))

		result, err := NewSentimentService(detector, "en").Analyze(context.Background(), "muy malo")
		require.NoError(t, err)
		assert.Equal(t, domain.SentimentNegative, result.Label)
		assert.Equal(t, "local-enhanced", result.Model)
	})

	t.Run("empty text", func(t *testing.T) {
		_, err := NewSentimentService(nil, "").Analyze(context.Background(), "  ")
		assert.ErrorIs(t, err, ErrEmptyText)
	})
}
