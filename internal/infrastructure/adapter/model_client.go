package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Model client – HTTP adapter for the default-probability model server
// ---------------------------------------------------------------------------

// ModelClientConfig holds configuration for the inference-service client.
type ModelClientConfig struct {
	// BaseURL is the base URL of the model server.
	BaseURL string
	// APIKey is the bearer credential for the model server, if any.
	APIKey string
	// TimeoutSeconds is the HTTP client timeout.
	TimeoutSeconds int
	// MaxRetries is the maximum number of retry attempts on transient failures.
	MaxRetries int
	// RetryBackoffMs is the base backoff duration in milliseconds between retries.
	RetryBackoffMs int
}

// DefaultModelClientConfig returns sensible defaults for development.
func DefaultModelClientConfig() ModelClientConfig {
	return ModelClientConfig{
		BaseURL:        "http://localhost:8500",
		TimeoutSeconds: 10,
		MaxRetries:     3,
		RetryBackoffMs: 200,
	}
}

// predictRequest is the wire form of a single-row inference call. Missing
// features travel as JSON null so the server-side pipeline can impute them.
type predictRequest struct {
	FeatureOrder []string            `json:"feature_order"`
	Features     map[string]*float64 `json:"features"`
}

type predictResponse struct {
	// Probability is the positive-class (default) probability.
	Probability float64 `json:"probability"`
}

// ModelClient calls a remote inference service over HTTP. It implements
// port.Classifier and retries transient failures with exponential backoff;
// the risk scorer above it handles total failure by falling back to the
// neutral probability.
type ModelClient struct {
	config ModelClientConfig
	client *http.Client
}

// NewModelClient creates a client with the given configuration.
func NewModelClient(config ModelClientConfig) *ModelClient {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ModelClient{
		config: config,
		client: &http.Client{Timeout: timeout},
	}
}

// PredictProba sends the feature vector to the model server and extracts the
// positive-class probability.
func (c *ModelClient) PredictProba(ctx context.Context, features valueobject.FeatureVector) (float64, error) {
	body, err := json.Marshal(encodeFeatures(features))
	if err != nil {
		return 0, fmt.Errorf("encode feature vector: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(c.config.RetryBackoffMs) * time.Millisecond * (1 << uint(attempt-1))
			jitter := time.Duration(rand.Int63n(int64(backoff)/2 + 1))
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}

		p, err := c.predictOnce(ctx, body)
		if err == nil {
			return p, nil
		}
		lastErr = err
	}

	return 0, fmt.Errorf("exhausted %d retries: %w", c.config.MaxRetries, lastErr)
}

func (c *ModelClient) predictOnce(ctx context.Context, body []byte) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call model server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("model server returned status %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode predict response: %w", err)
	}
	return out.Probability, nil
}

// encodeFeatures converts the NaN missing markers to JSON nulls.
func encodeFeatures(features valueobject.FeatureVector) predictRequest {
	values := make(map[string]*float64, features.Len())
	for _, name := range features.Names() {
		v, _ := features.Value(name)
		if math.IsNaN(v) {
			values[name] = nil
			continue
		}
		val := v
		values[name] = &val
	}
	return predictRequest{
		FeatureOrder: features.Names(),
		Features:     values,
	}
}
