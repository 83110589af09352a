package aws

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/cloud"
	"github.com/tidwall/gjson"
)

var errNoEndpoint = errors.New("no endpoint configured")

type sagemakerAPI interface {
	InvokeEndpoint(ctx context.Context, params *sagemakerruntime.InvokeEndpointInput, optFns ...func(*sagemakerruntime.Options)) (*sagemakerruntime.InvokeEndpointOutput, error)
}

// Predictor invokes one hosted endpoint per prediction kind.
type Predictor struct {
	client    sagemakerAPI
	endpoints map[domain.PredictionKind]string
}

func NewPredictor(cfg awssdk.Config, endpoints map[domain.PredictionKind]string) *Predictor {
	return &Predictor{client: sagemakerruntime.NewFromConfig(cfg), endpoints: endpoints}
}

func (p *Predictor) Predict(ctx context.Context, kind domain.PredictionKind, features []string) (float64, error) {
	endpoint := p.endpoints[kind]
	if endpoint == "" {
		return 0, fmt.Errorf("%w for %s: %w", errNoEndpoint, kind, cloud.ErrUnavailable)
	}

	resp, err := p.client.InvokeEndpoint(ctx, &sagemakerruntime.InvokeEndpointInput{
		EndpointName: awssdk.String(endpoint),
		ContentType:  awssdk.String("text/csv"),
		Body:         []byte(strings.Join(features, ",")),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to invoke endpoint %s: %w", endpoint, err)
	}
	return parsePrediction(resp.Body)
}

// parsePrediction accepts a bare number, a JSON number or array, or an object carrying
// "predictions" or "prediction".
func parsePrediction(body []byte) (float64, error) {
	text := strings.TrimSpace(string(body))
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return v, nil
	}
	if !gjson.Valid(text) {
		return 0, fmt.Errorf("unrecognised prediction payload %q", text)
	}

	for _, path := range []string{"0", "predictions.0.score", "predictions.0", "prediction", "score"} {
		r := gjson.Get(text, path)
		if r.Type == gjson.Number {
			return r.Float(), nil
		}
	}
	return 0, fmt.Errorf("unrecognised prediction payload %q", text)
}
