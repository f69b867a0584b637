package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	RefData RefDataConfig
	Cache   CacheConfig
	OTEL    OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RefDataConfig names the JSON reference tables loaded at startup.
type RefDataConfig struct {
	TriggersPath          string
	SystemAliasesPath     string
	IntroductionYearsPath string
	CalibrationTypesPath  string
	GoldenEstimatesPath   string
}

// CacheConfig holds result-cache configuration
type CacheConfig struct {
	Enabled    bool
	TTLSeconds int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RefData: RefDataConfig{
			TriggersPath:          getEnv("REFDATA_TRIGGERS_PATH", "config/calibration_triggers.json"),
			SystemAliasesPath:     getEnv("REFDATA_ALIASES_PATH", "config/system_aliases.json"),
			IntroductionYearsPath: getEnv("REFDATA_INTRO_YEARS_PATH", "config/adas_introduction_years.json"),
			CalibrationTypesPath:  getEnv("REFDATA_CAL_TYPES_PATH", "config/brand_calibration_types.json"),
			GoldenEstimatesPath:   getEnv("REFDATA_GOLDEN_PATH", "config/golden_estimates.json"),
		},
		Cache: CacheConfig{
			Enabled:    getEnvAsBool("RESULT_CACHE_ENABLED", true),
			TTLSeconds: getEnvAsInt("RESULT_CACHE_TTL_SECONDS", 3600),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "recalibr"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
