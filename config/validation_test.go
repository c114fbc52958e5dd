package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meltano/kubernetes-ext/config"
)

func validConfig() *config.Config {
	return &config.Config{
		ProjectRoot: "/projects/demo",
		Environment: "dev",
		Meltano:     config.MeltanoConfig{Bin: "meltano"},
		Render: config.RenderConfig{
			Destination: "orchestrate/kubernetes",
			Image:       "meltano-project:dev",
			Sentinels:   []string{"@once"},
		},
		Log: config.LogConfig{Level: config.LogLevelInfo},
	}
}

func TestValidate(t *testing.T) {
	t.Run("accepts a complete config", func(t *testing.T) {
		assert.NoError(t, config.Validate(validConfig()))
	})
	t.Run("rejects a missing project root", func(t *testing.T) {
		conf := validConfig()
		conf.ProjectRoot = ""
		assert.Error(t, config.Validate(conf))
	})
	t.Run("rejects an empty image placeholder", func(t *testing.T) {
		conf := validConfig()
		conf.Render.Image = ""
		assert.Error(t, config.Validate(conf))
	})
	t.Run("rejects an unknown log level", func(t *testing.T) {
		conf := validConfig()
		conf.Log.Level = "verbose"
		assert.Error(t, config.Validate(conf))
	})
}

func TestDestinationDir(t *testing.T) {
	conf := validConfig()
	t.Run("resolves relative destination against project root", func(t *testing.T) {
		assert.Equal(t, "/projects/demo/orchestrate/kubernetes", conf.DestinationDir(""))
	})
	t.Run("prefers an absolute override", func(t *testing.T) {
		assert.Equal(t, "/tmp/out", conf.DestinationDir("/tmp/out"))
	})
	t.Run("resolves a relative override against project root", func(t *testing.T) {
		assert.Equal(t, "/projects/demo/out", conf.DestinationDir("out"))
	})
}
