package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when a token fails signature or claims validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned when a token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Config holds the key material for the JWT service. Exactly one of
// Secret (HS256) or the PEM key pair (RS256) must be set. A verifier-only
// deployment may set PublicKeyPEM without PrivateKeyPEM.
type Config struct {
	Secret        string
	PrivateKeyPEM []byte
	PublicKeyPEM  []byte
	Issuer        string
	TTL           time.Duration
}

// JWTService issues and verifies service tokens.
type JWTService struct {
	secret     []byte
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	ttl        time.Duration
}

// NewJWTService builds a JWTService from the given config.
func NewJWTService(cfg Config) (*JWTService, error) {
	s := &JWTService{issuer: cfg.Issuer, ttl: cfg.TTL}
	if s.issuer == "" {
		s.issuer = "scoring-service"
	}
	if s.ttl == 0 {
		s.ttl = time.Hour
	}

	switch {
	case len(cfg.PublicKeyPEM) > 0:
		pub, err := parsePublicKey(cfg.PublicKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("parse public key: %w", err)
		}
		s.publicKey = pub
		if len(cfg.PrivateKeyPEM) > 0 {
			priv, err := parsePrivateKey(cfg.PrivateKeyPEM)
			if err != nil {
				return nil, fmt.Errorf("parse private key: %w", err)
			}
			s.privateKey = priv
		}
	case cfg.Secret != "":
		s.secret = []byte(cfg.Secret)
	default:
		return nil, errors.New("auth: either a secret or a public key is required")
	}
	return s, nil
}

// Generate issues a signed token for the given subject and roles.
func (s *JWTService) Generate(userID uuid.UUID, roles []string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
		UserID: userID,
		Roles:  roles,
	}

	if s.privateKey != nil {
		token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
		return token.SignedString(s.privateKey)
	}
	if s.secret == nil {
		return "", errors.New("auth: service has no signing key")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string, returning its claims.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *JWTService) keyFunc(token *jwt.Token) (any, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodRSA:
		if s.publicKey == nil {
			return nil, errors.New("RSA token but no public key configured")
		}
		return s.publicKey, nil
	case *jwt.SigningMethodHMAC:
		if s.secret == nil {
			return nil, errors.New("HMAC token but no secret configured")
		}
		return s.secret, nil
	default:
		return nil, fmt.Errorf("unexpected signing method %s", token.Method.Alg())
	}
}

func parsePrivateKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("not an RSA private key")
	}
	return key, nil
}

func parsePublicKey(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("not an RSA public key")
	}
	return key, nil
}

// GenerateKeyPair creates a new RSA key pair in PEM form, for development
// and test environments without provisioned keys.
func GenerateKeyPair() (privatePEM, publicPEM []byte, err error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, err
	}
	privatePEM = pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, err
	}
	publicPEM = pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubBytes,
	})
	return privatePEM, publicPEM, nil
}
