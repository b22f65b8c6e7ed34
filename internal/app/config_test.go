package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/odyssey-erp/odyssey-admin/internal/testing/guard"
)

// unsetEnv clears key for the duration of the test; envconfig treats an
// empty but present variable as set and skips the default.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	unsetEnv(t, "APP_ADDR", "APP_ENV", "JWT_TTL", "PASSWORD_SCHEME", "KAFKA_BROKERS", "DEFAULT_LANG", "AUDIT_RETENTION")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "md5", cfg.PasswordScheme)
	assert.Equal(t, "en", cfg.DefaultLang)
	assert.Equal(t, 90*24*time.Hour, cfg.AuditRetention)
	assert.False(t, cfg.KafkaEnabled())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PASSWORD_SCHEME", "BCRYPT")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("APP_ENV", "production")
	unsetEnv(t, "JWT_TTL")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "bcrypt", cfg.PasswordScheme)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	unsetEnv(t, "PASSWORD_SCHEME", "JWT_TTL")
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PASSWORD_SCHEME", "sha1")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "sha1")
}

func TestLoadConfigSkipsDotEnvInTestMode(t *testing.T) {
	require.True(t, InTestMode())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_ADDR=:9999\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("JWT_SECRET", "s3cret")
	unsetEnv(t, "APP_ADDR", "PASSWORD_SCHEME", "JWT_TTL")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
}

func TestSlogLevelFallback(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "loud"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warn"}).SlogLevel())
}

func TestNewLoggerTagsService(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &Config{AppEnv: "staging", LogFormat: "json", LogLevel: "info"})
	logger.Debug("hidden")
	logger.Info("visible")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "visible", line["msg"])
	assert.Equal(t, "odyssey-admin", line["service"])
	assert.Equal(t, "staging", line["env"])
	assert.Contains(t, line, "source")
}
