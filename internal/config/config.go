package config

import (
	"os"
	"strconv"
	"time"
)

// MaxFilterLimit is the largest value accepted for the salary filter
// limits. The jobs backend stores limits as 32-bit signed integers.
const MaxFilterLimit = 1<<31 - 1

// DefaultPageSize is the number of jobs requested per listings page.
const DefaultPageSize = 20

type Config struct {
	HTTPAddr string

	JobsAPIBaseURL string
	JobsAPITimeout time.Duration

	PlacesAPIBaseURL string
	PlacesAPIKey     string
	PlacesAPITimeout time.Duration

	PageSize int

	NATSURL         string
	NATSConnTimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	GeocodeCacheTTL time.Duration

	OTLPCollectorURL string
}

func LoadConfig() (*Config, error) {
	config := &Config{
		HTTPAddr: getEnvString("HTTP_ADDR", ":3000"),

		JobsAPIBaseURL: getEnvString("JOBS_API_BASE_URL", "http://localhost:8080"),
		JobsAPITimeout: getEnvDuration("JOBS_API_TIMEOUT", 10*time.Second),

		PlacesAPIBaseURL: getEnvString("PLACES_API_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
		PlacesAPIKey:     getEnvString("PLACES_API_KEY", ""),
		PlacesAPITimeout: getEnvDuration("PLACES_API_TIMEOUT", 10*time.Second),

		PageSize: getEnvInt("PAGE_SIZE", DefaultPageSize),

		NATSURL:         getEnvString("NATS_URL", "nats://localhost:4222"),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),

		RedisAddr:     getEnvString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		GeocodeCacheTTL: getEnvDuration("GEOCODE_CACHE_TTL", 24*time.Hour),

		OTLPCollectorURL: getEnvString("OTLP_COLLECTOR_URL", ""),
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
