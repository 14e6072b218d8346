package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Commission CommissionConfig `yaml:"commission"`
	Worker     WorkerConfig     `yaml:"worker"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type CommissionConfig struct {
	RatePercent float64 `yaml:"rate_percent"`
}

const (
	defaultArchiveSweepMinutes = 10
	defaultCatalogCacheTTLSecs = 60
)

type WorkerConfig struct {
	ArchiveSweepMinutes int `yaml:"archive_sweep_minutes"`
	CatalogCacheTTLSecs int `yaml:"catalog_cache_ttl_seconds"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Commission.RatePercent < 0 || cfg.Commission.RatePercent > 100 {
		return nil, fmt.Errorf("commission.rate_percent must be within [0, 100], got %v", cfg.Commission.RatePercent)
	}
	// zero intervals would make the worker's tickers panic
	if cfg.Worker.ArchiveSweepMinutes <= 0 {
		cfg.Worker.ArchiveSweepMinutes = defaultArchiveSweepMinutes
	}
	if cfg.Worker.CatalogCacheTTLSecs <= 0 {
		cfg.Worker.CatalogCacheTTLSecs = defaultCatalogCacheTTLSecs
	}

	return &cfg, nil
}
