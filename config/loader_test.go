package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	t.Run("honours the unprefixed LOG_LEVEL variable", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		cfg := &Config{ProjectRoot: "/projects/demo"}
		applyDefaults(cfg)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("keeps an explicitly configured level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		cfg := &Config{ProjectRoot: "/projects/demo", Log: LogConfig{Level: LogLevelError}}
		applyDefaults(cfg)
		assert.Equal(t, LogLevelError, cfg.Log.Level)
	})

	t.Run("falls back to info", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "")
		cfg := &Config{ProjectRoot: "/projects/demo"}
		applyDefaults(cfg)
		assert.Equal(t, LogLevelInfo, cfg.Log.Level)
	})

	t.Run("fills sentinel defaults and trims the project root", func(t *testing.T) {
		cfg := &Config{ProjectRoot: "/projects/demo/"}
		applyDefaults(cfg)
		assert.Equal(t, "/projects/demo", cfg.ProjectRoot)
		assert.NotEmpty(t, cfg.Render.Sentinels)
	})
}
