// Package model provides the HTTP client for the external classifier
// serving endpoint. The classifier artifact itself (training, format,
// loading) is owned by the model-serving deployment, not this service.
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/lending/recovery-service/internal/config"
	"github.com/lending/recovery-service/internal/pkg/logger"
	"github.com/lending/recovery-service/internal/scoring"
)

// HTTPClient queries a model-serving endpoint exposing the pre-trained
// binary classifier. Calls go through a circuit breaker so a dead model
// server fails fast instead of stalling every assessment.
type HTTPClient struct {
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	log      *logger.Logger
}

// NewHTTPClient creates a classifier client from model configuration.
func NewHTTPClient(cfg *config.ModelConfig, log *logger.Logger) *HTTPClient {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     "risk-model",
		Interval: cfg.BreakerInterval,
		Timeout:  cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(cfg.BreakerFailures)
		},
	})

	return &HTTPClient{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.RequestTimeout},
		breaker:  breaker,
		log:      log.Named("model_client"),
	}
}

type predictRequest struct {
	Instances [][]float64 `json:"instances"`
}

// predictResponse carries one two-class probability row per instance:
// [P(no default), P(default)].
type predictResponse struct {
	Predictions [][]float64 `json:"predictions"`
}

type explainResponse struct {
	Contributions [][]float64 `json:"contributions"`
}

// PredictProbability returns the positive-class (default) probability for
// one feature vector: index 1 of the two-class probability row.
func (c *HTTPClient) PredictProbability(ctx context.Context, features scoring.FeatureVector) (float64, error) {
	body, err := c.post(ctx, c.endpoint+":predict", features)
	if err != nil {
		return 0, err
	}

	var resp predictResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("decoding model response: %w", err)
	}
	if len(resp.Predictions) == 0 || len(resp.Predictions[0]) < 2 {
		return 0, fmt.Errorf("model returned %d prediction rows, want 1 two-class row", len(resp.Predictions))
	}

	return resp.Predictions[0][1], nil
}

// Explain returns per-feature contribution scores for one feature vector,
// positional against the vector contract.
func (c *HTTPClient) Explain(ctx context.Context, features scoring.FeatureVector) ([scoring.FeatureVectorSize]float64, error) {
	var contributions [scoring.FeatureVectorSize]float64

	body, err := c.post(ctx, c.endpoint+":explain", features)
	if err != nil {
		return contributions, err
	}

	var resp explainResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return contributions, fmt.Errorf("decoding explanation response: %w", err)
	}
	if len(resp.Contributions) == 0 || len(resp.Contributions[0]) != scoring.FeatureVectorSize {
		return contributions, fmt.Errorf("explanation has wrong shape")
	}

	copy(contributions[:], resp.Contributions[0])
	return contributions, nil
}

// post sends one feature vector to the given URL through the breaker.
func (c *HTTPClient) post(ctx context.Context, url string, features scoring.FeatureVector) ([]byte, error) {
	payload, err := json.Marshal(predictRequest{Instances: [][]float64{features[:]}})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("model server returned status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		c.log.Warn("model call failed",
			logger.ErrorField(err),
			logger.DurationField("elapsed", time.Since(start)),
		)
		return nil, err
	}

	return result.([]byte), nil
}
