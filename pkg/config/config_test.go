package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_RedisConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("REDIS_HOST", "test-redis")
	os.Setenv("REDIS_PORT", "16379")
	defer func() {
		os.Unsetenv("REDIS_HOST")
		os.Unsetenv("REDIS_PORT")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "test-redis", cfg.Redis.Host)
	assert.Equal(t, 16379, cfg.Redis.Port)
	assert.Equal(t, "test-redis:16379", cfg.Redis.RedisAddr())
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("REDIS_HOST")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("RESULT_CACHE_TTL_SECONDS")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 3600, cfg.Cache.TTLSeconds)
	assert.Equal(t, "config/calibration_triggers.json", cfg.RefData.TriggersPath)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	os.Setenv("SERVER_PORT", "not-a-number")
	defer os.Unsetenv("SERVER_PORT")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}
