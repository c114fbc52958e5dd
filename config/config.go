package config

import (
	"path/filepath"
)

const (
	// AppName identifies this extension to the host orchestrator
	AppName = "kubernetes-ext"
)

// Config carries everything the render pipeline needs. It is loaded once at
// startup and passed down explicitly so the templater and scaffolder stay
// pure functions of their inputs.
type Config struct {
	// ProjectRoot is the host project directory, read from
	// MELTANO_PROJECT_ROOT and defaulting to the working directory
	ProjectRoot string `mapstructure:"project_root"`

	// Environment is the active deployment environment, read from
	// MELTANO_ENVIRONMENT. Empty means no overlay is scaffolded.
	Environment string `mapstructure:"environment"`

	Meltano MeltanoConfig `mapstructure:"meltano"`
	Render  RenderConfig  `mapstructure:"render"`
	Log     LogConfig     `mapstructure:"log"`
}

type MeltanoConfig struct {
	// Bin is the host scheduling tool binary used both to list schedules and
	// inside the generated container command
	Bin string `mapstructure:"bin" default:"meltano"`
}

type RenderConfig struct {
	// Destination holds generated manifests, resolved against ProjectRoot
	// when relative
	Destination string `mapstructure:"destination" default:"orchestrate/kubernetes"`

	// Image is the placeholder container image baked into the base layer,
	// overlays are the supported mechanism for substituting the real one
	Image string `mapstructure:"image" default:"meltano-project:dev"`

	// Sentinels are the reserved non-cron interval keywords of the host tool,
	// kept as configuration since the host's set may grow
	Sentinels []string `mapstructure:"sentinels"`
}

type LogConfig struct {
	// Level also honours the host tool's unprefixed LOG_LEVEL variable,
	// falling back to info
	Level  string `mapstructure:"level"`  // log level - debug, info, warning, error, fatal
	Format string `mapstructure:"format"` // format strategy - plain, json
}

// DestinationDir returns the absolute manifest destination for the loaded
// project root, honouring an absolute override as is
func (c *Config) DestinationDir(override string) string {
	dest := c.Render.Destination
	if override != "" {
		dest = override
	}
	if filepath.IsAbs(dest) {
		return dest
	}
	return filepath.Join(c.ProjectRoot, dest)
}
