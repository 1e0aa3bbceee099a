package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration. Values come from an optional
// YAML file, then environment variables, then CLI flags.
type Config struct {
	Port       int           `yaml:"port"`
	DBPath     string        `yaml:"db-path"`
	DataDir    string        `yaml:"data-dir"` // Scratch space for downloaded archives
	LogLevel   string        `yaml:"log-level"`
	LogFormat  string        `yaml:"log-format"` // text|json
	Strategy   string        `yaml:"strategy"`   // merge|per-line
	Selection  string        `yaml:"selection"`  // linear|heap
	CacheTTL   time.Duration `yaml:"cache-ttl"`
	ImportFrom string        `yaml:"import"` // CLI flag: import an archive, then exit
	Serve      bool          `yaml:"serve"`
	From       string        `yaml:"-"`
	To         string        `yaml:"-"`
	ConfigFile string        `yaml:"-"`
}

// Load reads configuration from the file named by METROPATH_CONFIG (if any)
// and from environment variables, with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      8080,
		DBPath:    "./metropath.db",
		DataDir:   "./data",
		LogLevel:  "info",
		LogFormat: "text",
		Strategy:  "merge",
		Selection: "linear",
		CacheTTL:  5 * time.Minute,
	}

	if path := os.Getenv("METROPATH_CONFIG"); path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
		cfg.ConfigFile = path
	}

	cfg.Port = envInt("METROPATH_PORT", cfg.Port)
	cfg.DBPath = envStr("METROPATH_DB_PATH", cfg.DBPath)
	cfg.DataDir = envStr("METROPATH_DATA_DIR", cfg.DataDir)
	cfg.LogLevel = envStr("METROPATH_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envStr("METROPATH_LOG_FORMAT", cfg.LogFormat)
	cfg.Strategy = envStr("METROPATH_STRATEGY", cfg.Strategy)
	cfg.Selection = envStr("METROPATH_SELECTION", cfg.Selection)
	cfg.CacheTTL = envDuration("METROPATH_CACHE_TTL", cfg.CacheTTL)
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
