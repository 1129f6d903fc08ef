package config

import (
	"os"
	"strings"
)

// Config holds the service configuration, loaded from environment variables.
type Config struct {
	Port    string
	DataDir string

	// JWTSecret enables the admin guard on product mutation endpoints when
	// non-empty. Empty leaves the endpoints open, matching the original
	// deployment where an external front-end calls them directly.
	JWTSecret string

	// KafkaBrokers enables sale event publishing when non-empty.
	KafkaBrokers []string

	// SerializeWrites funnels each collection's document reads and writes
	// through a mutex. Off by default for behavioral compatibility.
	SerializeWrites bool

	JaegerEndpoint string
	LogLevel       string
	Development    bool
}

// Load reads the configuration from the environment.
func Load() *Config {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		SerializeWrites: getEnv("STORE_SERIALIZE", "false") == "true",
		JaegerEndpoint:  getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Development:     getEnv("DEVELOPMENT", "false") == "true",
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
