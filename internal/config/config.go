package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port        int      `yaml:"port"`
		Environment string   `yaml:"environment"`
		AdminToken  string   `yaml:"admin_token"`
		CORSOrigins []string `yaml:"cors_origins"`
		WriteRate   float64  `yaml:"write_rate_per_second"`
		WriteBurst  int      `yaml:"write_burst"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Backup struct {
		Enabled       bool   `yaml:"enabled"`
		IntervalHours int    `yaml:"interval_hours"`
		Path          string `yaml:"path"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"backup"`

	Redis struct {
		Address           string `yaml:"address"`
		Password          string `yaml:"password"`
		DB                int    `yaml:"db"`
		DayViewTTLSeconds int    `yaml:"day_view_ttl_seconds"`
	} `yaml:"redis"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Lectures struct {
		CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
	} `yaml:"lectures"`

	Classrooms struct {
		Path          string `yaml:"path"`
		ReloadSeconds int    `yaml:"reload_seconds"`
	} `yaml:"classrooms"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/classboard.db"
	}
	if cfg.Classrooms.Path == "" {
		cfg.Classrooms.Path = "configs/classrooms.yaml"
	}

	if err = os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) LectureCacheTTL() time.Duration {
	if c.Lectures.CacheTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Lectures.CacheTTLSeconds) * time.Second
}

func (c *Config) DayViewTTL() time.Duration {
	if c.Redis.DayViewTTLSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Redis.DayViewTTLSeconds) * time.Second
}

func (c *Config) ClassroomsReloadInterval() time.Duration {
	if c.Classrooms.ReloadSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Classrooms.ReloadSeconds) * time.Second
}
