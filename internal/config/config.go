package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	Stats  StatsConfig  `yaml:"stats"`
	Reaper ReaperConfig `yaml:"reaper"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type StatsConfig struct {
	// Timezone for resolving day and week boundaries in period reports.
	Timezone string `yaml:"timezone"`
}

type ReaperConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
	MaxAgeSeconds   int `yaml:"max_age_seconds"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "breaktrack.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Stats: StatsConfig{
			Timezone: "Asia/Taipei",
		},
		Reaper: ReaperConfig{
			IntervalSeconds: 3600,
			MaxAgeSeconds:   86400,
		},
	}

	if path := os.Getenv("BREAKTRACK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("BREAKTRACK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("BREAKTRACK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BREAKTRACK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("BREAKTRACK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("BREAKTRACK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if tz := os.Getenv("BREAKTRACK_TIMEZONE"); tz != "" {
		cfg.Stats.Timezone = tz
	}
	if intervalStr := os.Getenv("BREAKTRACK_REAPER_INTERVAL"); intervalStr != "" {
		interval, err := strconv.Atoi(intervalStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BREAKTRACK_REAPER_INTERVAL: %w", err)
		}
		cfg.Reaper.IntervalSeconds = interval
	}
	if maxAgeStr := os.Getenv("BREAKTRACK_REAPER_MAX_AGE"); maxAgeStr != "" {
		maxAge, err := strconv.Atoi(maxAgeStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BREAKTRACK_REAPER_MAX_AGE: %w", err)
		}
		cfg.Reaper.MaxAgeSeconds = maxAge
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
