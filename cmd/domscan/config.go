package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML configuration for the daemon.
// Every field can be overridden by environment variables in main.
type fileConfig struct {
	Port          string        `yaml:"port"`
	CacheDB       string        `yaml:"cache_db"` // empty disables the analysis cache
	UserAgent     string        `yaml:"user_agent"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
	MaxFetchBytes int64         `yaml:"max_fetch_bytes"`
	HeadFraction  float64       `yaml:"head_fraction"`
	TailFraction  float64       `yaml:"tail_fraction"`
	LogLevel      string        `yaml:"log_level"`
}

// loadConfig reads a YAML configuration file. A missing path returns
// defaults only.
func loadConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *fileConfig) applyDefaults() {
	if c.Port == "" {
		c.Port = "8090"
	}
	if c.UserAgent == "" {
		c.UserAgent = "domscan/1.0"
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 30 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
