package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Leaderboard backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Questions struct {
		// Path is the questions.json file; BankID selects a Postgres question bank instead.
		Path     string `yaml:"path"`
		BankID   string `yaml:"bank_id"`
		CacheTTL string `yaml:"cache_ttl"`
	} `yaml:"questions"`
	Quiz struct {
		SampleSize int `yaml:"sample_size"`
	} `yaml:"quiz"`
	Leaderboard struct {
		Backend       string `yaml:"backend"`
		Name          string `yaml:"name"`
		SQLitePath    string `yaml:"sqlite_path"`
		Timeout       string `yaml:"timeout"`
		CacheTTL      string `yaml:"cache_ttl"`
		LocalCapacity int    `yaml:"local_capacity"`
	} `yaml:"leaderboard"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Questions.Path = "questions.json"
	cfg.Quiz.SampleSize = 10
	cfg.Leaderboard.Backend = BackendMemory
	cfg.Leaderboard.Name = "global"
	cfg.Leaderboard.SQLitePath = "sainsquiz.db"
	cfg.Leaderboard.Timeout = "5s"
	cfg.Leaderboard.CacheTTL = "30s"
	cfg.Leaderboard.LocalCapacity = 10
	return cfg
}

// Load reads YAML config from path on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks the values Load cannot fix up.
func (c Config) Validate() error {
	switch c.Leaderboard.Backend {
	case BackendMemory, "":
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("leaderboard backend %q needs redis.addr", c.Leaderboard.Backend)
		}
	case BackendPostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("leaderboard backend %q needs postgres.url", c.Leaderboard.Backend)
		}
	case BackendSQLite:
		if c.Leaderboard.SQLitePath == "" {
			return fmt.Errorf("leaderboard backend %q needs leaderboard.sqlite_path", c.Leaderboard.Backend)
		}
	default:
		return fmt.Errorf("unknown leaderboard backend %q", c.Leaderboard.Backend)
	}
	if c.Questions.BankID != "" && c.Postgres.URL == "" {
		return fmt.Errorf("questions.bank_id needs postgres.url")
	}
	if c.Quiz.SampleSize < 0 {
		return fmt.Errorf("quiz.sample_size must not be negative")
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
