package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the application's configuration model.
type Config struct {
	Platform string        `yaml:"platform"`
	Storage  StorageConfig `yaml:"storage"`
	Server   ServerConfig  `yaml:"server"`
	Metrics  MetricsConfig `yaml:"metrics"`
	Logging  LoggingConfig `yaml:"logging"`
	Demo     DemoConfig    `yaml:"demo"`
	Batch    BatchConfig   `yaml:"batch"`
}

type StorageConfig struct {
	// SQLite file holding imported account snapshots. Empty disables the
	// snapshot source and every analysis is estimated.
	DBPath string `yaml:"dbPath"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// Token-bucket limit applied to every API request.
	RPS         float64  `yaml:"rps"`
	Burst       int      `yaml:"burst"`
	CorsOrigins []string `yaml:"corsOrigins"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "text"
}

type DemoConfig struct {
	// Serve the built-in demo accounts before falling back to generated data.
	Enabled bool `yaml:"enabled"`
}

type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Platform: "tiktok",
		Storage:  StorageConfig{DBPath: "./trustscope.db"},
		Server:   ServerConfig{Addr: ":8080", RPS: 5, Burst: 20, CorsOrigins: []string{"*"}},
		Metrics:  MetricsConfig{Addr: ""},
		Logging:  LoggingConfig{Level: "info", Format: "json"},
		Demo:     DemoConfig{Enabled: true},
		Batch:    BatchConfig{Workers: 4},
	}
}

// ResolveEnv fills in config fields from environment variables if set.
func (c *Config) ResolveEnv() {
	if v := os.Getenv("TRUSTSCOPE_PLATFORM"); v != "" {
		c.Platform = v
	}
	if v := os.Getenv("TRUSTSCOPE_DB_PATH"); v != "" {
		c.Storage.DBPath = v
	}
	if v := os.Getenv("TRUSTSCOPE_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("TRUSTSCOPE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.Server.RPS = f
		}
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = os.Getenv("METRICS_ADDR")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Load reads YAML config from path on top of the defaults. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg.ResolveEnv()
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.ResolveEnv()
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
