package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ModelConfig points the service at the default-probability model server.
// An empty URL selects the deterministic stub classifier.
type ModelConfig struct {
	URL            string
	APIKey         string
	TimeoutSeconds int
	MaxRetries     int
	RetryBackoffMs int
}

type Config struct {
	GRPCPort    int
	HTTPPort    int
	DB          DatabaseConfig
	Kafka       KafkaConfig
	Model       ModelConfig
	Policy      valueobject.LendingPolicy
	ServiceName string
	// AuditEnabled controls whether decisions are persisted and published.
	AuditEnabled bool
}

// Validate panics on configuration that cannot produce a working process.
func (c Config) Validate() {
	if c.AuditEnabled && c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required when auditing is enabled")
	}
	if err := c.Policy.Validate(); err != nil {
		panic(fmt.Sprintf("invalid lending policy: %v", err))
	}
}

func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9095),
		HTTPPort: getEnvInt("HTTP_PORT", 8095),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "creditscore"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "creditscore_scoring"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "scoring-events"),
		},
		Model: ModelConfig{
			URL:            getEnv("MODEL_URL", ""),
			APIKey:         getEnv("MODEL_API_KEY", ""),
			TimeoutSeconds: getEnvInt("MODEL_TIMEOUT_SECONDS", 10),
			MaxRetries:     getEnvInt("MODEL_MAX_RETRIES", 3),
			RetryBackoffMs: getEnvInt("MODEL_RETRY_BACKOFF_MS", 200),
		},
		Policy:       valueobject.DefaultLendingPolicy(),
		ServiceName:  "scoring-service",
		AuditEnabled: getEnv("AUDIT_ENABLED", "true") == "true",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
