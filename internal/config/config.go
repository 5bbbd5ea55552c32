package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/malt/internal/clierr"
	"github.com/twiced-technology-gmbh/malt/internal/command"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no malt directory found (run 'malt init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents a malt directory's configuration.
type Config struct {
	Version     int               `yaml:"version"`
	DataFile    string            `yaml:"data_file"`
	Aliases     map[string]string `yaml:"aliases"`
	ActivityLog bool              `yaml:"activity_log"`

	// dir is the absolute path to the malt directory (not serialized).
	dir string `yaml:"-"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:     CurrentVersion,
		DataFile:    DefaultDataFile,
		Aliases:     map[string]string{},
		ActivityLog: true,
	}
}

// Dir returns the absolute path to the malt directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the malt directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// DataPath returns the absolute path to the store file. An absolute
// data_file is used as is.
func (c *Config) DataPath() string {
	if filepath.IsAbs(c.DataFile) {
		return c.DataFile
	}
	return filepath.Join(c.dir, c.DataFile)
}

// LockPath returns the path of the lock file guarding the store.
func (c *Config) LockPath() string {
	return c.DataPath() + ".lock"
}

// AliasNames returns the configured alias names in sorted order.
func (c *Config) AliasNames() []string {
	return slices.Sorted(maps.Keys(c.Aliases))
}

// SetAlias adds or replaces an alias. An empty target removes it.
func (c *Config) SetAlias(name, target string) {
	name = strings.ToLower(name)
	if target == "" {
		delete(c.Aliases, name)
		return
	}
	if c.Aliases == nil {
		c.Aliases = map[string]string{}
	}
	c.Aliases[name] = strings.ToLower(target)
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("%w: data_file is required", ErrInvalid)
	}
	for _, name := range c.AliasNames() {
		target := c.Aliases[name]
		if name == "" || strings.ContainsAny(name, " \t") {
			return fmt.Errorf("%w: alias %q must be a single word", ErrInvalid, name)
		}
		if command.IsCommand(name) {
			return fmt.Errorf("%w: alias %q shadows a command", ErrInvalid, name)
		}
		if !command.IsCommand(target) {
			return fmt.Errorf("%w: alias %q points at unknown command %q (allowed: %s)",
				ErrInvalid, name, target, strings.Join(command.Commands(), ", "))
		}
	}
	return nil
}

// Init creates a malt directory at dir with default settings and the given
// store file name. An empty dataFile uses DefaultDataFile.
func Init(dir, dataFile string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault()
	cfg.SetDir(absDir)
	if dataFile != "" {
		cfg.DataFile = dataFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating malt directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given malt directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir
	if cfg.Aliases == nil {
		cfg.Aliases = map[string]string{}
	}

	// Migrate old config versions forward before validating.
	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}

	// Persist migrated config so future loads skip re-migration.
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a malt directory
// containing config.yml. Returns the absolute path to the malt directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the malt directory itself.
		if filepath.Base(dir) == DefaultDir {
			if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.StoreNotFound,
				"no malt directory found (run 'malt init' to create one)")
		}
		dir = parent
	}
}

// DefaultHomeDir returns the path to ~/.config/malt.
func DefaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, HomeDir), nil
}

// ResolveDir picks the malt directory: explicit wins, then $MALT_DIR, then
// the nearest .malt directory above startDir, then ~/.config/malt.
func ResolveDir(explicit, startDir string) (string, error) {
	if explicit != "" {
		return filepath.Abs(explicit)
	}
	if env := os.Getenv(EnvDir); env != "" {
		return filepath.Abs(env)
	}

	dir, err := FindDir(startDir)
	if err == nil {
		return dir, nil
	}

	return DefaultHomeDir()
}

// LoadOrInit loads the config in dir, creating a default one when dir has
// none yet.
func LoadOrInit(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return Init(dir, "")
}
