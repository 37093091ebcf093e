// Package config loads the optional tidy configuration file and its
// environment overrides. Precedence is flags > environment > file >
// defaults; the flag layer lives with the CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/seborama/proton-mail-export-cli-tidy/pkg/base"
)

const (
	// EnvConfigPath points at the YAML config file when no --config flag
	// is given.
	EnvConfigPath = "TIDY_CONFIG"

	envOutputDirName    = "TIDY_OUTPUT_DIR_NAME"
	envLabelsFileName   = "TIDY_LABELS_FILE_NAME"
	envProgressInterval = "TIDY_PROGRESS_INTERVAL"
)

// Config holds the run-wide tunables of the organizer.
type Config struct {
	OutputDirName    string `yaml:"output_dir_name"`
	LabelsFileName   string `yaml:"labels_file_name"`
	ProgressInterval int    `yaml:"progress_interval"`
}

// Default returns the configuration used when no file and no overrides are
// present. The values match the layout of a stock Proton export.
func Default() Config {
	return Config{
		OutputDirName:    base.OrganizedDirName,
		LabelsFileName:   base.LabelsFileName,
		ProgressInterval: base.DefaultProgressInterval,
	}
}

// Load reads configuration from a YAML file, starting from defaults so a
// partial file only overrides what it names. An empty path yields the
// defaults. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(envOutputDirName)); v != "" {
		cfg.OutputDirName = v
	}
	if v := strings.TrimSpace(os.Getenv(envLabelsFileName)); v != "" {
		cfg.LabelsFileName = v
	}
	if v := strings.TrimSpace(os.Getenv(envProgressInterval)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envProgressInterval, v, err)
		}
		cfg.ProgressInterval = n
	}
	return nil
}

// Validate rejects configurations the organizer cannot run with.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.OutputDirName) == "" {
		return fmt.Errorf("output_dir_name must not be empty")
	}
	if strings.ContainsAny(cfg.OutputDirName, `/\`) {
		return fmt.Errorf("output_dir_name %q must be a single path component", cfg.OutputDirName)
	}
	if strings.TrimSpace(cfg.LabelsFileName) == "" {
		return fmt.Errorf("labels_file_name must not be empty")
	}
	if strings.ContainsAny(cfg.LabelsFileName, `/\`) {
		return fmt.Errorf("labels_file_name %q must be a single path component", cfg.LabelsFileName)
	}
	if cfg.ProgressInterval <= 0 {
		return fmt.Errorf("progress_interval must be positive, got %d", cfg.ProgressInterval)
	}
	return nil
}
