package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Env holds settings taken from the environment. Command-line flags win
// over these when both are set.
type Env struct {
	ConfigPath string `envconfig:"SLACAL_CONFIG" default:"slacal.yaml"`
	Calendar   string `envconfig:"SLACAL_CALENDAR" default:""`
	LogLevel   string `envconfig:"SLACAL_LOG_LEVEL" default:""`
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (*Env, error) {
	env := new(Env)
	if err := envconfig.Process("", env); err != nil {
		return nil, errors.Wrap(err, "read environment")
	}
	return env, nil
}
