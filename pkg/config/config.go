// Package config loads and validates tinysearch configuration from an
// optional YAML file with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Index   IndexConfig   `yaml:"index"`
	Search  SearchConfig  `yaml:"search"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// IndexConfig controls document discovery and index building.
type IndexConfig struct {
	// DirName is the name of the hidden artifact directory created inside
	// the indexed root.
	DirName string `yaml:"dirName"`
	// Extensions lists the file extensions treated as documents.
	Extensions []string `yaml:"extensions"`
	// Workers caps concurrent tokenization during a build.
	Workers int `yaml:"workers"`
}

// SearchConfig controls query result limits.
type SearchConfig struct {
	Limit int `yaml:"limit"`
}

// ServerConfig holds HTTP settings for the serve command.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Index: IndexConfig{
			DirName:    ".tinysearch",
			Extensions: []string{".txt"},
			Workers:    4,
		},
		Search: SearchConfig{
			Limit: 10,
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path yields
// the defaults; env overrides and validation apply either way.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides reads TINYSEARCH_* environment variables and overrides
// the corresponding fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TINYSEARCH_INDEX_DIR"); v != "" {
		cfg.Index.DirName = v
	}
	if v := os.Getenv("TINYSEARCH_EXTENSIONS"); v != "" {
		cfg.Index.Extensions = strings.Split(v, ",")
	}
	if v := os.Getenv("TINYSEARCH_WORKERS"); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			cfg.Index.Workers = workers
		}
	}
	if v := os.Getenv("TINYSEARCH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("TINYSEARCH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TINYSEARCH_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// Validate checks invariants the rest of the program relies on.
func (c *Config) Validate() error {
	if c.Index.DirName == "" || strings.ContainsAny(c.Index.DirName, `/\`) {
		return fmt.Errorf("index dirName must be a bare directory name, got %q", c.Index.DirName)
	}
	if len(c.Index.Extensions) == 0 {
		return fmt.Errorf("at least one document extension is required")
	}
	if c.Index.Workers < 1 {
		return fmt.Errorf("index workers must be positive, got %d", c.Index.Workers)
	}
	if c.Search.Limit < 1 {
		return fmt.Errorf("search limit must be positive, got %d", c.Search.Limit)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	return nil
}
