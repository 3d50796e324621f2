package grpc

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/creditscorepro/scoring-service/internal/platform/auth"
	"github.com/creditscorepro/scoring-service/internal/platform/tlsutil"
)

// Server wraps a gRPC server with the scoring handler registered.
type Server struct {
	gs      *grpc.Server
	handler *ScoringHandler
	logger  *slog.Logger
}

// NewServer creates and configures the gRPC server. A nil jwtService disables
// authentication; intended for local development only.
func NewServer(handler *ScoringHandler, logger *slog.Logger, jwtService *auth.JWTService) *Server {
	var serverOpts []grpc.ServerOption

	if jwtService != nil {
		authInterceptor := auth.UnaryAuthInterceptor(jwtService,
			"/grpc.health.v1.Health/Check",
			"/grpc.health.v1.Health/Watch",
		)
		serverOpts = append(serverOpts, grpc.UnaryInterceptor(authInterceptor))
	} else {
		logger.Warn("gRPC auth not configured, all methods are unauthenticated")
	}

	// Optional TLS: set GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE to enable.
	// GRPC_TLS_SELF_SIGNED=true generates a throwaway dev CA and server cert
	// instead; never for production use.
	certFile, keyFile := os.Getenv("GRPC_TLS_CERT_FILE"), os.Getenv("GRPC_TLS_KEY_FILE")
	if certFile == "" && os.Getenv("GRPC_TLS_SELF_SIGNED") == "true" {
		certDir := filepath.Join(os.TempDir(), "scoring-service-dev-certs")
		if err := tlsutil.GenerateSelfSignedCert([]string{"localhost", "127.0.0.1"}, certDir); err != nil {
			logger.Error("failed to generate dev certificates, starting without TLS", "error", err)
		} else {
			certFile = filepath.Join(certDir, "server.pem")
			keyFile = filepath.Join(certDir, "server-key.pem")
			logger.Warn("using self-signed dev certificates", "dir", certDir)
		}
	}
	if certFile != "" && keyFile != "" {
		creds, err := tlsutil.ServerTLSConfig(certFile, keyFile)
		if err != nil {
			logger.Error("failed to load TLS credentials, starting without TLS", "error", err)
		} else {
			serverOpts = append(serverOpts, grpc.Creds(creds))
			logger.Info("gRPC TLS enabled", "cert", certFile, "key", keyFile)
		}
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	gs := grpc.NewServer(serverOpts...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(gs, healthSrv)
	healthSrv.SetServingStatus("scoring-service", healthpb.HealthCheckResponse_SERVING)

	// Only enable reflection when GRPC_REFLECTION=true.
	if os.Getenv("GRPC_REFLECTION") == "true" {
		reflection.Register(gs)
	}

	RegisterScoringServiceServer(gs, handler)

	return &Server{
		gs:      gs,
		handler: handler,
		logger:  logger,
	}
}

// Serve starts the gRPC server on the specified address.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	s.logger.Info("gRPC server listening", "addr", addr)
	return s.gs.Serve(lis)
}

// GracefulStop stops the server gracefully.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.gs.GracefulStop()
}
