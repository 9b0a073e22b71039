package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process level configuration. Backing stores are optional:
// when a URL is absent the in-memory implementation is used, which keeps
// local development and unit tests free of external services.
type Server struct {
	Addr          string
	PostgresURL   string
	RedisURL      string
	KafkaBrokers  []string
	KafkaTopic    string
	JWTSigningKey string
}

// RedisConfig carries connection tuning for the shared Redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("WARDEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	topic := os.Getenv("WARDEN_KAFKA_TOPIC")
	if topic == "" {
		topic = "bot-events"
	}

	var brokers []string
	if raw := os.Getenv("WARDEN_KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	jwtSigningKey := os.Getenv("WARDEN_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          addr,
		PostgresURL:   os.Getenv("WARDEN_POSTGRES_URL"),
		RedisURL:      os.Getenv("WARDEN_REDIS_URL"),
		KafkaBrokers:  brokers,
		KafkaTopic:    topic,
		JWTSigningKey: jwtSigningKey,
	}
}

// Redis builds the Redis client config with defaults applied.
func (s Server) Redis() RedisConfig {
	return RedisConfig{
		URL:          s.RedisURL,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}
