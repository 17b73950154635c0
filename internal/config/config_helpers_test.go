package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  int
	}{
		{name: "unset returns default", want: 42},
		{name: "valid integer", value: "100", set: true, want: 100},
		{name: "negative integer", value: "-10", set: true, want: -10},
		{name: "zero", value: "0", set: true, want: 0},
		{name: "garbage returns default", value: "not-a-number", set: true, want: 42},
		{name: "float returns default", value: "42.5", set: true, want: 42},
		{name: "empty returns default", value: "", set: true, want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("TEST_INT_VAR", tt.value)
			} else {
				os.Unsetenv("TEST_INT_VAR")
			}
			assert.Equal(t, tt.want, getEnvAsInt("TEST_INT_VAR", 42))
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	fallback := 5 * time.Minute

	tests := []struct {
		name  string
		value string
		set   bool
		want  time.Duration
	}{
		{name: "unset returns default", want: fallback},
		{name: "minutes", value: "10m", set: true, want: 10 * time.Minute},
		{name: "seconds", value: "30s", set: true, want: 30 * time.Second},
		{name: "compound", value: "1h30m45s", set: true, want: time.Hour + 30*time.Minute + 45*time.Second},
		{name: "garbage returns default", value: "not-a-duration", set: true, want: fallback},
		{name: "bare number returns default", value: "100", set: true, want: fallback},
		{name: "empty returns default", value: "", set: true, want: fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("TEST_DURATION_VAR", tt.value)
			} else {
				os.Unsetenv("TEST_DURATION_VAR")
			}
			assert.Equal(t, tt.want, getEnvAsDuration("TEST_DURATION_VAR", fallback))
		})
	}
}

func TestLoad_DatabasePoolConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 20, cfg.DBMaxConns)
		assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime)
	})

	t.Run("custom values", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("DB_MAX_CONNS", "50")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "10m")
		t.Setenv("DB_MAX_CONN_LIFETIME", "1h")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 50, cfg.DBMaxConns)
		assert.Equal(t, 10*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, time.Hour, cfg.DBMaxConnLifetime)
	})

	t.Run("invalid values fall back to defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("DB_MAX_CONNS", "not-a-number")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "invalid")
		t.Setenv("DB_MAX_CONN_LIFETIME", "bad-duration")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 20, cfg.DBMaxConns)
		assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime)
	})
}

func TestLoad_EventPublishingConfig(t *testing.T) {
	t.Run("zero defaults defer to bootstrap", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Zero(t, cfg.EventMaxRetries)
		assert.Zero(t, cfg.EventRetryDelay)
		assert.Empty(t, cfg.EventDeadLetterPath)
	})

	t.Run("custom values", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("EVENT_MAX_RETRIES", "8")
		t.Setenv("EVENT_RETRY_DELAY", "4s")
		t.Setenv("EVENT_DEADLETTER_PATH", "/tmp/dl.jsonl")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8, cfg.EventMaxRetries)
		assert.Equal(t, 4*time.Second, cfg.EventRetryDelay)
		assert.Equal(t, "/tmp/dl.jsonl", cfg.EventDeadLetterPath)
	})
}
