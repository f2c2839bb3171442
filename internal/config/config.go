// Package config loads CLI configuration from defaults, an optional
// fieldline.yaml file, FIELDLINE_* environment variables, and command-line
// flags, in ascending precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Defaults.
const (
	DefaultFormat = "table"
)

// Config holds the effective CLI configuration.
type Config struct {
	// Format is the default output format: table, json, or csv.
	Format string `koanf:"format"`
	// Output is the default output file path; empty means stdout.
	Output string `koanf:"output"`
	// ReservedDatasources are pseudo-datasource tokens excluded from the
	// active-field scan.
	ReservedDatasources []string `koanf:"reserved_datasources"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// findConfigFile finds the config file to use.
// Priority: explicit path > fieldline.yaml > fieldline.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"fieldline.yaml", "fieldline.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load loads configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"format":               DefaultFormat,
		"output":               "",
		"reserved_datasources": []string{"Parameters"},
		"verbose":              false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if used := findConfigFile(cfgFile); used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// FIELDLINE_RESERVED_DATASOURCES -> reserved_datasources
	if err := k.Load(env.Provider("FIELDLINE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "FIELDLINE_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
