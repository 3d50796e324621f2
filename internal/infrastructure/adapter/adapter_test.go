package adapter_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditscorepro/scoring-service/internal/domain/service"
	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
	"github.com/creditscorepro/scoring-service/internal/infrastructure/adapter"
)

func sampleFeatures() valueobject.FeatureVector {
	v := valueobject.NewFeatureVector(service.DefaultFeatureNames())
	v.Set("AMT_INCOME_TOTAL", 50_000)
	v.Set("AMT_CREDIT", 200_000)
	v.Set("AGE_YEARS", 35)
	return v
}

func TestStubClassifier_Deterministic(t *testing.T) {
	stub := adapter.NewStubClassifier()

	p1, err := stub.PredictProba(context.Background(), sampleFeatures())
	require.NoError(t, err)
	p2, err := stub.PredictProba(context.Background(), sampleFeatures())
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.GreaterOrEqual(t, p1, 0.05)
	assert.Less(t, p1, 0.45)
}

func TestStubClassifier_SensitiveToInputs(t *testing.T) {
	stub := adapter.NewStubClassifier()

	p1, err := stub.PredictProba(context.Background(), sampleFeatures())
	require.NoError(t, err)

	other := sampleFeatures()
	other.Set("AMT_CREDIT", 300_000)
	p2, err := stub.PredictProba(context.Background(), other)
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2)
}

func TestModelClient_Predict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req struct {
			FeatureOrder []string            `json:"feature_order"`
			Features     map[string]*float64 `json:"features"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.FeatureOrder, len(service.DefaultFeatureNames()))

		// Filled features arrive as numbers, missing ones as nulls.
		require.NotNil(t, req.Features["AMT_CREDIT"])
		assert.Equal(t, 200_000.0, *req.Features["AMT_CREDIT"])
		assert.Nil(t, req.Features["CODE_GENDER"])

		_ = json.NewEncoder(w).Encode(map[string]float64{"probability": 0.27})
	}))
	defer srv.Close()

	client := adapter.NewModelClient(adapter.ModelClientConfig{
		BaseURL:        srv.URL,
		APIKey:         "secret",
		TimeoutSeconds: 2,
		MaxRetries:     0,
	})

	p, err := client.PredictProba(context.Background(), sampleFeatures())
	require.NoError(t, err)
	assert.Equal(t, 0.27, p)
}

func TestModelClient_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]float64{"probability": 0.33})
	}))
	defer srv.Close()

	client := adapter.NewModelClient(adapter.ModelClientConfig{
		BaseURL:        srv.URL,
		TimeoutSeconds: 2,
		MaxRetries:     2,
		RetryBackoffMs: 1,
	})

	p, err := client.PredictProba(context.Background(), sampleFeatures())
	require.NoError(t, err)
	assert.Equal(t, 0.33, p)
	assert.Equal(t, int32(2), calls.Load())
}

func TestModelClient_ExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := adapter.NewModelClient(adapter.ModelClientConfig{
		BaseURL:        srv.URL,
		TimeoutSeconds: 2,
		MaxRetries:     1,
		RetryBackoffMs: 1,
	})

	_, err := client.PredictProba(context.Background(), sampleFeatures())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
