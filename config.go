package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	tagrelease "github.com/pondersource/dev-stock/pkg"
)

const (
	configFileName = ".tagrelease.yaml"
	envPrefix      = "TAGRELEASE_"
)

// Config holds the settings that can come from the config file or the
// environment. Command line flags take precedence over both.
type Config struct {
	Remote    string   `yaml:"remote" env:"REMOTE"`
	Metadata  string   `yaml:"metadata" env:"METADATA"`
	Git       string   `yaml:"git" env:"GIT"`
	LogLevel  string   `yaml:"log_level" env:"LOG_LEVEL"`
	BumpFiles []string `yaml:"bump_files" env:"BUMP_FILES" envSeparator:","`
}

func defaultConfig() Config {
	return Config{
		Remote:   tagrelease.DefaultRemote,
		Metadata: tagrelease.DefaultMetadataPath,
		Git:      "git",
		LogLevel: "warn",
	}
}

// loadConfig layers defaults, the YAML file and TAGRELEASE_* variables.
// When path is empty, .tagrelease.yaml in baseDir is used if it exists.
// environ is only set by tests; nil means the process environment.
func loadConfig(path, baseDir string, environ map[string]string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(baseDir, configFileName)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// optional
	default:
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix, Environment: environ}); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
