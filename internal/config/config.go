// Package config loads labunify settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const EnvConfigPath = "LABUNIFY_CONFIG"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	DBPath           string  `yaml:"db_path"`
	Port             string  `yaml:"port"`
	LogLevel         string  `yaml:"log_level"`
	DefaultThreshold float64 `yaml:"default_threshold"`
	GraphCacheSize   int     `yaml:"graph_cache_size"`
	DefaultLanguage  string  `yaml:"default_language"`
}

func Default() Config {
	return Config{
		DBPath:           filepath.Join("data", "labunify.db"),
		Port:             "8080",
		LogLevel:         "info",
		DefaultThreshold: 80,
		GraphCacheSize:   128,
		DefaultLanguage:  "uk",
	}
}

// Load reads path when it is not empty, then applies environment overrides
// looked up through getenv. A nil getenv reads the process environment.
func Load(path string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
		}
	}

	cfg.DBPath = getEnv(getenv, "DB_PATH", cfg.DBPath)
	cfg.Port = getEnv(getenv, "PORT", cfg.Port)
	cfg.LogLevel = getEnv(getenv, "LOG_LEVEL", cfg.LogLevel)
	cfg.DefaultLanguage = getEnv(getenv, "DEFAULT_LANGUAGE", cfg.DefaultLanguage)

	if raw := getenv("DEFAULT_THRESHOLD"); raw != "" {
		threshold, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: DEFAULT_THRESHOLD: %v", ErrInvalidConfig, err)
		}
		cfg.DefaultThreshold = threshold
	}
	if raw := getenv("GRAPH_CACHE_SIZE"); raw != "" {
		size, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Config{}, fmt.Errorf("%w: GRAPH_CACHE_SIZE: %v", ErrInvalidConfig, err)
		}
		cfg.GraphCacheSize = size
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DBPath) == "" {
		return fmt.Errorf("%w: db_path is required", ErrInvalidConfig)
	}
	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("%w: port %q is not a valid TCP port", ErrInvalidConfig, cfg.Port)
	}
	if cfg.DefaultThreshold < 0 || cfg.DefaultThreshold > 100 {
		return fmt.Errorf("%w: default_threshold must be between 0 and 100", ErrInvalidConfig)
	}
	if cfg.GraphCacheSize < 0 {
		return fmt.Errorf("%w: graph_cache_size must not be negative", ErrInvalidConfig)
	}
	return nil
}

func getEnv(getenv func(string) string, key string, fallback string) string {
	value := strings.TrimSpace(getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
