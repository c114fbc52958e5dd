package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
	LogLevelFatal   = "fatal"
)

// Validate checks the loaded config before the pipeline runs
func Validate(conf *Config) error {
	return validation.ValidateStruct(conf,
		validation.Field(&conf.ProjectRoot, validation.Required),
		validation.Field(&conf.Meltano, validation.By(func(interface{}) error {
			return validation.ValidateStruct(&conf.Meltano,
				validation.Field(&conf.Meltano.Bin, validation.Required),
			)
		})),
		validation.Field(&conf.Render, validation.By(func(interface{}) error {
			return validation.ValidateStruct(&conf.Render,
				validation.Field(&conf.Render.Destination, validation.Required),
				validation.Field(&conf.Render.Image, validation.Required),
			)
		})),
		validation.Field(&conf.Log, validation.By(func(interface{}) error {
			return validation.ValidateStruct(&conf.Log,
				validation.Field(&conf.Log.Level, validation.In(
					LogLevelDebug,
					LogLevelInfo,
					LogLevelWarning,
					LogLevelError,
					LogLevelFatal,
				)),
			)
		})),
	)
}
