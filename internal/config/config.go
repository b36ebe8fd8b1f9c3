package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Env      string   `yml:"env" default:"local"`
	Server   Server   `yml:"server" env-required:"true"`
	Storage  Storage  `yml:"storage"`
	Postgres Postgres `yml:"postgres"`
	Redis    Redis    `yml:"redis"`
	OpenAI   OpenAI   `yml:"openai"`
}

type Server struct {
	Host    string        `yml:"host" default:"localhost"`
	Port    string        `yml:"port" default:"8080"`
	Timeout time.Duration `yml:"timeout" default:"5s"`
}

type Storage struct {
	// Driver selects the review store backend: "memory" (reference
	// behavior, seeds demo data) or "postgres".
	Driver string `yml:"driver" env:"STORAGE_DRIVER" default:"memory"`
}

type Postgres struct {
	Username        string        `env:"POSTGRES_USER"`
	Password        string        `env:"POSTGRES_PASSWORD"`
	Host            string        `yml:"host" default:"localhost"`
	Port            string        `env:"POSTGRES_PORT" default:"5432"`
	Database        string        `env:"POSTGRES_DB"`
	MaxOpenConns    int           `yml:"max_open_conns" default:"50"`
	MaxIdleConns    int           `yml:"max_idle_conns" default:"10"`
	ConnMaxLifetime time.Duration `yml:"conn_max_lifetime" default:"5m"`
	ConnMaxIdleTime time.Duration `yml:"conn_max_idle_time" default:"1m"`
}

type Redis struct {
	// Addr enables the cross-instance comment fan-out bridge when set.
	Addr     string `yml:"addr" env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
}

type OpenAI struct {
	APIKey      string        `env:"OPENAI_API_KEY"`
	BaseURL     string        `yml:"base_url" default:"https://api.openai.com/v1"`
	Model       string        `yml:"model" default:"gpt-4"`
	Temperature float64       `yml:"temperature" default:"0.3"`
	MaxTokens   int           `yml:"max_tokens" default:"2000"`
	Timeout     time.Duration `yml:"timeout" default:"60s"`
}

func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return nil, errors.New("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file does not exist: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if cfg.Storage.Driver != StorageMemory && cfg.Storage.Driver != StoragePostgres {
		return nil, fmt.Errorf("unknown storage driver '%s'", cfg.Storage.Driver)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}

	return cfg
}
