// Package config handles malt directory configuration.
package config

const (
	// DefaultDir is the project-local malt directory name.
	DefaultDir = ".malt"
	// HomeDir is the fallback malt directory, relative to the user's home.
	HomeDir = ".config/malt"
	// DefaultDataFile is the default store file name inside the malt directory.
	DefaultDataFile = "malt.txt"

	// ConfigFileName is the name of the config file within the malt directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2

	// EnvDir overrides directory discovery when set.
	EnvDir = "MALT_DIR"
)
