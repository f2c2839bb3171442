package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "table", cfg.Format)
	assert.Empty(t, cfg.Output)
	assert.Equal(t, []string{"Parameters"}, cfg.ReservedDatasources)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fieldline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`format: json
reserved_datasources:
  - Parameters
  - Scratch
`), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, []string{"Parameters", "Scratch"}, cfg.ReservedDatasources)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fieldline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\n"), 0644))
	t.Setenv("FIELDLINE_FORMAT", "csv")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Format)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("FIELDLINE_FORMAT", "csv")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "table", "")
	require.NoError(t, flags.Parse([]string{"--format", "json"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoadUnchangedFlagDoesNotOverride(t *testing.T) {
	t.Setenv("FIELDLINE_FORMAT", "csv")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "table", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Format, "a flag left at its default defers to env and file")
}
