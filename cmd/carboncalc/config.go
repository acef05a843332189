package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds settings for the calculation CLI. Values load from an
// optional YAML file first; CARBONCORE_* environment variables override
// the file.
type Config struct {
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// Pretty switches zerolog to human-readable console output.
	Pretty bool `yaml:"pretty"`

	// DefaultRegion fills in activity inputs that omit a region.
	DefaultRegion string `yaml:"default_region"`

	// DefaultYear fills in activity inputs that omit a reporting year.
	DefaultYear int `yaml:"default_year"`
}

func defaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		DefaultRegion: "Global",
		DefaultYear:   2024,
	}
}

// loadConfig reads the YAML file at path (if non-empty), then applies
// environment overrides.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if v := os.Getenv("CARBONCORE_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("CARBONCORE_PRETTY"); v != "" {
		config.Pretty = strings.EqualFold(v, "true") || v == "1"
	}
	if v := os.Getenv("CARBONCORE_DEFAULT_REGION"); v != "" {
		config.DefaultRegion = v
	}
	if v := os.Getenv("CARBONCORE_DEFAULT_YEAR"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CARBONCORE_DEFAULT_YEAR %q: %w", v, err)
		}
		config.DefaultYear = year
	}

	return config, nil
}
