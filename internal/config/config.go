// Package config provides environment configuration for the API server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration

	// NATS settings
	NATSURL      string
	NATSCAFile   string
	NATSCertFile string
	NATSKeyFile  string
	NATSToken    string

	// JWT settings (auth is enabled when a secret is set)
	JWTSecret string

	// LLM settings
	AnthropicAPIKey string
	OpenAIAPIKey    string
	DefaultPlanner  string
	PlannerModel    string

	// Arcade settings
	ArcadeAPIKey       string
	ArcadeBaseURL      string
	ArcadePollInterval time.Duration
	ArcadeAuthTimeout  time.Duration

	// Pipeline settings
	PlanTimeout         time.Duration
	FlightSearchEnabled bool

	// Gazetteer settings
	CitiesFile            string
	CityValidationEnabled bool

	// Rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Server
		ServerPort:         getEnv("PORT", "8080"),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second),

		// NATS
		NATSURL:      getEnv("NATS_URL", "nats://localhost:4222"),
		NATSCAFile:   getEnv("NATS_CA_FILE", ""),
		NATSCertFile: getEnv("NATS_CERT_FILE", ""),
		NATSKeyFile:  getEnv("NATS_KEY_FILE", ""),
		NATSToken:    getEnv("NATS_TOKEN", ""),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", ""),

		// LLM
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		DefaultPlanner:  getEnv("DEFAULT_PLANNER", "anthropic"),
		PlannerModel:    getEnv("PLANNER_MODEL", ""),

		// Arcade
		ArcadeAPIKey:       getEnv("ARCADE_API_KEY", ""),
		ArcadeBaseURL:      getEnv("ARCADE_BASE_URL", "https://api.arcade.dev"),
		ArcadePollInterval: getDurationEnv("ARCADE_POLL_INTERVAL", 2*time.Second),
		ArcadeAuthTimeout:  getDurationEnv("ARCADE_AUTH_TIMEOUT", 2*time.Minute),

		// Pipeline
		PlanTimeout:         getDurationEnv("PLAN_TIMEOUT", 10*time.Minute),
		FlightSearchEnabled: getBoolEnv("FLIGHT_SEARCH_ENABLED", false),

		// Gazetteer
		CitiesFile:            getEnv("CITIES_FILE", "cities.json"),
		CityValidationEnabled: getBoolEnv("CITY_VALIDATION_ENABLED", true),

		// Rate limiting
		RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

// Validate checks that required credentials are present. A missing credential
// at startup is the only fatal condition: the process must halt before
// accepting any trip.
func (c *Config) Validate() error {
	if c.ArcadeAPIKey == "" {
		return fmt.Errorf("ARCADE_API_KEY is required")
	}
	if c.AnthropicAPIKey == "" && c.OpenAIAPIKey == "" {
		return fmt.Errorf("one of ANTHROPIC_API_KEY or OPENAI_API_KEY is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
