// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every setting read from the environment, ex: FOLDPREP_OUT
	EnvPrefix = "FOLDPREP"

	// DefaultOut is the output root when none is set: the working directory
	DefaultOut = "."
)

// Config is the root-level settings struct and is a mix
// of settings available in a settings file, the environment
// and those available from the command line
type Config struct {
	// Out is the directory or bucket URL the job directories are created in
	Out string `mapstructure:"out"`

	// Verbose logs every file written
	Verbose bool `mapstructure:"verbose"`

	// DryRun prints the job layout without writing it
	DryRun bool `mapstructure:"dry-run"`

	// Settings is the path to an optional YAML settings file
	Settings string `mapstructure:"settings"`
}

// New returns a new Config struct populated by Viper settings: flags bound
// in /cmd, FOLDPREP_ environment variables and the settings file, if one
// was passed.
func New() (*Config, error) {
	viper.SetDefault("out", DefaultOut)
	viper.SetDefault("verbose", false)
	viper.SetDefault("dry-run", false)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if settings := viper.GetString("settings"); settings != "" {
		viper.SetConfigFile(settings)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", settings, err)
		}
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}

	if c.Out == "" {
		c.Out = DefaultOut
	}

	return c, nil
}
