package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tidy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "organized_emails", cfg.OutputDirName)
	assert.Equal(t, "labels.json", cfg.LabelsFileName)
	assert.Equal(t, 1000, cfg.ProgressInterval)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, "progress_interval: 50\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.ProgressInterval)
	assert.Equal(t, "organized_emails", cfg.OutputDirName)
	assert.Equal(t, "labels.json", cfg.LabelsFileName)
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfigFile(t, `
output_dir_name: sorted
labels_file_name: my-labels.json
progress_interval: 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Config{
		OutputDirName:    "sorted",
		LabelsFileName:   "my-labels.json",
		ProgressInterval: 10,
	}, cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfigFile(t, "output_dir_name: [broken\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(envOutputDirName, "by-label")
	t.Setenv(envProgressInterval, "25")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "by-label", cfg.OutputDirName)
	assert.Equal(t, 25, cfg.ProgressInterval)
	assert.Equal(t, "labels.json", cfg.LabelsFileName)
}

func TestLoadEnvOverridesBeatFile(t *testing.T) {
	path := writeConfigFile(t, "output_dir_name: from-file\n")
	t.Setenv(envOutputDirName, "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.OutputDirName)
}

func TestLoadBadEnvInterval(t *testing.T) {
	t.Setenv(envProgressInterval, "soon")

	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectedErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:        "empty output dir name",
			mutate:      func(c *Config) { c.OutputDirName = " " },
			expectedErr: "output_dir_name",
		},
		{
			name:        "output dir name with separator",
			mutate:      func(c *Config) { c.OutputDirName = "a/b" },
			expectedErr: "single path component",
		},
		{
			name:        "empty labels file name",
			mutate:      func(c *Config) { c.LabelsFileName = "" },
			expectedErr: "labels_file_name",
		},
		{
			name:        "labels file name with separator",
			mutate:      func(c *Config) { c.LabelsFileName = `sub\labels.json` },
			expectedErr: "single path component",
		},
		{
			name:        "non-positive progress interval",
			mutate:      func(c *Config) { c.ProgressInterval = 0 },
			expectedErr: "progress_interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := Validate(cfg)
			if tt.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}
