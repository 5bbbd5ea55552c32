package cmd

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/malt/internal/clierr"
	"github.com/twiced-technology-gmbh/malt/internal/command"
	"github.com/twiced-technology-gmbh/malt/internal/config"
	"github.com/twiced-technology-gmbh/malt/internal/output"
)

const aliasKeyPrefix = "aliases."

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify malt configuration",
	Long: `View the full configuration, get a specific key, or set a writable value.
Aliases are set per name: malt config set aliases.td todo (an empty value removes it).`,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"data_file": {
			get: func(c *config.Config) any { return c.DataFile },
			set: func(c *config.Config, v string) error {
				c.DataFile = v
				return nil // validation rejects empty names
			},
			writable: true,
		},
		"data_path": {
			get: func(c *config.Config) any { return c.DataPath() },
		},
		"activity_log": {
			get: func(c *config.Config) any { return c.ActivityLog },
			set: func(c *config.Config, v string) error {
				b, err := strconv.ParseBool(v)
				if err != nil {
					return clierr.Newf(clierr.InvalidInput,
						"invalid activity_log %q: must be true or false", v)
				}
				c.ActivityLog = b
				return nil
			},
			writable: true,
		},
		"aliases": {
			get: func(c *config.Config) any { return c.Aliases },
		},
	}
}

// aliasAccessor serves the dynamic aliases.<name> keys.
func aliasAccessor(name string) configAccessor {
	return configAccessor{
		get: func(c *config.Config) any { return c.Aliases[strings.ToLower(name)] },
		set: func(c *config.Config, v string) error {
			if v != "" && !command.IsCommand(strings.ToLower(v)) {
				return clierr.Newf(clierr.InvalidInput,
					"invalid alias target %q; allowed: %s", v, strings.Join(command.Commands(), ", "))
			}
			c.SetAlias(name, v)
			return nil
		},
		writable: true,
	}
}

// lookupAccessor resolves key to its accessor.
func lookupAccessor(key string) (configAccessor, error) {
	if name, ok := strings.CutPrefix(key, aliasKeyPrefix); ok && name != "" {
		return aliasAccessor(name), nil
	}
	acc, ok := configAccessors()[key]
	if !ok {
		return configAccessor{}, clierr.Newf(clierr.InvalidConfigKey, "unknown config key %q", key).
			WithDetails(map[string]any{"key": key})
	}
	return acc, nil
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"data_file",
		"data_path",
		"activity_log",
		"aliases",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	for _, key := range allConfigKeys() {
		val := accessors[key].get(cfg)
		fmt.Fprintf(os.Stdout, "%-14s %v\n", key, formatConfigValue(val))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	acc, err := lookupAccessor(args[0])
	if err != nil {
		return err
	}

	val := acc.get(cfg)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}

	fmt.Fprintln(os.Stdout, formatConfigValue(val))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	acc, err := lookupAccessor(key)
	if err != nil {
		return err
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidConfigKey, "config key %q is read-only", key).
			WithDetails(map[string]any{"key": key})
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}

	output.Messagef(os.Stdout, "Set %s = %v", key, formatConfigValue(acc.get(cfg)))
	return nil
}

func formatConfigValue(val any) string {
	switch v := val.(type) {
	case map[string]string:
		if len(v) == 0 {
			return "--"
		}
		parts := make([]string, 0, len(v))
		for _, k := range slices.Sorted(maps.Keys(v)) {
			parts = append(parts, k+"="+v[k])
		}
		return strings.Join(parts, ", ")
	case string:
		if v == "" {
			return "--"
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
