package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration. Values come from the
// environment so main stays lean and deployments stay twelve-factor.
type Server struct {
	Addr string

	// DataDir holds the flat JSON fixture and application files.
	DataDir string

	// DemoMode enables demo scaffolding: the force-match verification
	// identifier and the seeded demo login. Never enable in production.
	DemoMode bool

	JWTSigningKey string

	// AdminTokenHash is the bcrypt hash of the back-office admin token.
	AdminTokenHash string

	// PostgresURL switches the application store from the JSON file to
	// Postgres when set.
	PostgresURL string

	Redis RedisConfig
	Kafka KafkaConfig
}

// RedisConfig configures the optional tracking snapshot cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional audit event publisher.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// TrackingCacheTTL bounds how stale a cached tracking snapshot may be.
var TrackingCacheTTL = 30 * time.Second

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:           envOr("PASSPORTAL_ADDR", ":8080"),
		DataDir:        envOr("PASSPORTAL_DATA_DIR", "data"),
		DemoMode:       os.Getenv("PASSPORTAL_DEMO_MODE") == "true",
		JWTSigningKey:  envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		AdminTokenHash: os.Getenv("ADMIN_TOKEN_HASH"),
		PostgresURL:    os.Getenv("POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envIntOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka = KafkaConfig{
			Brokers: splitComma(brokers),
			Topic:   envOr("KAFKA_AUDIT_TOPIC", "passportal.audit"),
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitComma(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
