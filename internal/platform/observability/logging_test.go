package observability_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/creditscorepro/scoring-service/internal/platform/observability"
)

func TestInitLogger_Levels(t *testing.T) {
	tests := []struct {
		level   string
		debugOn bool
		infoOn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"warning", false, false},
		{"error", false, false},
		{"nonsense", false, true},
		{"", false, true},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run("level_"+tt.level, func(t *testing.T) {
			logger := observability.InitLogger(observability.LogConfig{Level: tt.level, Format: "json"})
			assert.Equal(t, tt.debugOn, logger.Handler().Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.infoOn, logger.Handler().Enabled(ctx, slog.LevelInfo))
		})
	}
}
