package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	saltconfig "github.com/raystack/salt/config"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/meltano/kubernetes-ext/models"
)

const (
	DefaultFilename      = "kubernetes-ext"
	DefaultFileExtension = "yaml"
	DefaultEnvPrefix     = "MELTANO"
)

var FS = afero.NewReadOnlyFs(afero.NewOsFs())

// Load reads configuration from an optional kubernetes-ext.yaml in the
// project root (or working directory) plus MELTANO_* environment variables.
// Env bindings follow the host tool convention: MELTANO_PROJECT_ROOT,
// MELTANO_ENVIRONMENT, MELTANO_LOG_LEVEL, MELTANO_RENDER_DESTINATION, etc.
func Load() (*Config, error) {
	cfg := &Config{}

	v := viper.New()
	v.SetFs(FS)

	opts := []saltconfig.LoaderOption{
		saltconfig.WithViper(v),
		saltconfig.WithName(DefaultFilename),
		saltconfig.WithType(DefaultFileExtension),
		saltconfig.WithEnvPrefix(DefaultEnvPrefix),
		saltconfig.WithEnvKeyReplacer(".", "_"),
	}

	if filePath := discoverConfigFile(FS); filePath != "" {
		opts = append(opts, saltconfig.WithFile(filePath))
	}

	l := saltconfig.NewLoader(opts...)
	if err := l.Load(cfg); err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// discoverConfigFile looks for kubernetes-ext.yaml in the project root first,
// then in the working directory. Missing files are fine, the tool runs on
// env vars and defaults alone.
func discoverConfigFile(fs afero.Fs) string {
	candidateDirs := []string{}
	if root := os.Getenv(DefaultEnvPrefix + "_PROJECT_ROOT"); root != "" {
		candidateDirs = append(candidateDirs, root)
	}
	if cwd, err := os.Getwd(); err == nil {
		candidateDirs = append(candidateDirs, cwd)
	}
	for _, dir := range candidateDirs {
		filePath := filepath.Join(dir, DefaultFilename+"."+DefaultFileExtension)
		if f, err := fs.Stat(filePath); err == nil && f.Mode().IsRegular() {
			return filePath
		}
	}
	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.ProjectRoot == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfg.ProjectRoot = cwd
		}
	}
	cfg.ProjectRoot = strings.TrimRight(cfg.ProjectRoot, string(filepath.Separator))
	if len(cfg.Render.Sentinels) == 0 {
		cfg.Render.Sentinels = models.DefaultSentinelIntervals
	}
	// MELTANO_LOG_LEVEL wins over the host tool's plain LOG_LEVEL
	if cfg.Log.Level == "" {
		cfg.Log.Level = os.Getenv("LOG_LEVEL")
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = LogLevelInfo
	}
}
