package grpc_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	grpcpresentation "github.com/creditscorepro/scoring-service/internal/presentation/grpc"
)

func TestNewServer_SelfSignedDevTLS(t *testing.T) {
	t.Setenv("GRPC_TLS_CERT_FILE", "")
	t.Setenv("GRPC_TLS_KEY_FILE", "")
	t.Setenv("GRPC_TLS_SELF_SIGNED", "true")

	srv := grpcpresentation.NewServer(newTestHandler(), slog.Default(), nil)
	require.NotNil(t, srv)
	defer srv.GracefulStop()

	certDir := filepath.Join(os.TempDir(), "scoring-service-dev-certs")
	for _, name := range []string{"ca.pem", "server.pem", "server-key.pem"} {
		_, err := os.Stat(filepath.Join(certDir, name))
		assert.NoError(t, err, name)
	}
}

func TestNewServer_NoTLSConfigured(t *testing.T) {
	t.Setenv("GRPC_TLS_CERT_FILE", "")
	t.Setenv("GRPC_TLS_KEY_FILE", "")
	t.Setenv("GRPC_TLS_SELF_SIGNED", "")

	srv := grpcpresentation.NewServer(newTestHandler(), slog.Default(), nil)
	require.NotNil(t, srv)
	srv.GracefulStop()
}
