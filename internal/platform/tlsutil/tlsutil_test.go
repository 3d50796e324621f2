package tlsutil_test

import (
	"crypto/tls"
	"crypto/x509"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditscorepro/scoring-service/internal/platform/tlsutil"
)

func generateDevCerts(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, tlsutil.GenerateSelfSignedCert([]string{"localhost", "127.0.0.1"}, dir))
	return dir
}

func TestGenerateSelfSignedCert_WritesSignedPair(t *testing.T) {
	dir := generateDevCerts(t)

	for _, name := range []string{"ca.pem", "ca-key.pem", "server.pem", "server-key.pem"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	caPEM, err := os.ReadFile(filepath.Join(dir, "ca.pem"))
	require.NoError(t, err)
	pool := x509.NewCertPool()
	require.True(t, pool.AppendCertsFromPEM(caPEM))

	// The server certificate must chain to the generated CA and cover the
	// requested hosts.
	cert, err := tls.LoadX509KeyPair(filepath.Join(dir, "server.pem"), filepath.Join(dir, "server-key.pem"))
	require.NoError(t, err)
	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)

	_, err = leaf.Verify(x509.VerifyOptions{Roots: pool, DNSName: "localhost"})
	assert.NoError(t, err)
	assert.NoError(t, leaf.VerifyHostname("127.0.0.1"))
}

func TestServerTLSConfig(t *testing.T) {
	dir := generateDevCerts(t)

	creds, err := tlsutil.ServerTLSConfig(filepath.Join(dir, "server.pem"), filepath.Join(dir, "server-key.pem"))
	require.NoError(t, err)
	assert.Equal(t, "tls", creds.Info().SecurityProtocol)

	_, err = tlsutil.ServerTLSConfig(filepath.Join(dir, "missing.pem"), filepath.Join(dir, "server-key.pem"))
	assert.Error(t, err)
}

func TestClientTLSConfig(t *testing.T) {
	dir := generateDevCerts(t)

	creds, err := tlsutil.ClientTLSConfig(filepath.Join(dir, "ca.pem"), false)
	require.NoError(t, err)
	assert.Equal(t, "tls", creds.Info().SecurityProtocol)

	// System pool fallback and dev skip-verify mode.
	_, err = tlsutil.ClientTLSConfig("", true)
	assert.NoError(t, err)

	// A key file is not a CA certificate.
	_, err = tlsutil.ClientTLSConfig(filepath.Join(dir, "ca-key.pem"), false)
	assert.Error(t, err)

	_, err = tlsutil.ClientTLSConfig(filepath.Join(dir, "missing.pem"), false)
	assert.Error(t, err)
}

func TestGeneratedCerts_Handshake(t *testing.T) {
	dir := generateDevCerts(t)

	serverCert, err := tls.LoadX509KeyPair(filepath.Join(dir, "server.pem"), filepath.Join(dir, "server-key.pem"))
	require.NoError(t, err)

	caPEM, err := os.ReadFile(filepath.Join(dir, "ca.pem"))
	require.NoError(t, err)
	pool := x509.NewCertPool()
	require.True(t, pool.AppendCertsFromPEM(caPEM))

	ln, err := tls.Listen("tcp", "127.0.0.1:0", &tls.Config{
		Certificates: []tls.Certificate{serverCert},
		MinVersion:   tls.VersionTLS12,
	})
	require.NoError(t, err)
	defer ln.Close()

	done := make(chan error, 1)
	go func() {
		conn, acceptErr := ln.Accept()
		if acceptErr != nil {
			done <- acceptErr
			return
		}
		defer conn.Close()
		done <- conn.(*tls.Conn).Handshake()
	}()

	conn, err := tls.Dial("tcp", ln.Addr().String(), &tls.Config{
		RootCAs:    pool,
		ServerName: "localhost",
		MinVersion: tls.VersionTLS12,
	})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.Handshake())
	require.NoError(t, <-done)
}

func TestGenerateSelfSignedCert_BadOutputDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	err := tlsutil.GenerateSelfSignedCert([]string{"localhost"}, file)
	assert.Error(t, err)
}
