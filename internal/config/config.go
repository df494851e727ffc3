// Package config loads runtime configuration from an optional YAML file
// with environment variable overrides. A .env file in the working
// directory is picked up for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "30s" parse.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type ServerConfig struct {
	ListenAddr   string   `yaml:"listen_addr"`
	APIToken     string   `yaml:"api_token"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
	IdleTimeout  Duration `yaml:"idle_timeout"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

// ConnString builds a lib/pq connection string.
func (c DatabaseConfig) ConnString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type MarketConfig struct {
	BaseURL      string   `yaml:"base_url"`
	CacheTTL     Duration `yaml:"cache_ttl"`
	FetchTimeout Duration `yaml:"fetch_timeout"`
	Limit        int      `yaml:"limit"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Market   MarketConfig   `yaml:"market"`
	Log      LogConfig      `yaml:"log"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:   ":8080",
			APIToken:     "dev-token",
			ReadTimeout:  Duration(10 * time.Second),
			WriteTimeout: Duration(15 * time.Second),
			IdleTimeout:  Duration(60 * time.Second),
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			Name:     "agentfolio",
			SSLMode:  "disable",
		},
		Market: MarketConfig{
			BaseURL:      "https://api.coingecko.com/api/v3",
			CacheTTL:     Duration(30 * time.Second),
			FetchTimeout: Duration(10 * time.Second),
			Limit:        10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration in three layers: compiled defaults, an
// optional YAML file named by CONFIG_FILE, and environment variables on
// top. Missing .env and config files are not errors.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		body, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("read config file %q: %w", path, err)
			}
		} else if err := yaml.Unmarshal(body, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Server.ListenAddr = envOrDefault("SERVER_LISTEN_ADDR", cfg.Server.ListenAddr)
	cfg.Server.APIToken = envOrDefault("API_TOKEN", cfg.Server.APIToken)

	var err error
	if cfg.Server.ReadTimeout, err = envDuration("SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout); err != nil {
		return err
	}
	if cfg.Server.WriteTimeout, err = envDuration("SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout); err != nil {
		return err
	}
	if cfg.Server.IdleTimeout, err = envDuration("SERVER_IDLE_TIMEOUT", cfg.Server.IdleTimeout); err != nil {
		return err
	}

	cfg.Database.Host = envOrDefault("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = envOrDefault("DB_PORT", cfg.Database.Port)
	cfg.Database.User = envOrDefault("DB_USER", cfg.Database.User)
	cfg.Database.Password = envOrDefault("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = envOrDefault("DB_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = envOrDefault("DB_SSL_MODE", cfg.Database.SSLMode)

	cfg.Market.BaseURL = envOrDefault("MARKET_BASE_URL", cfg.Market.BaseURL)
	if cfg.Market.CacheTTL, err = envDuration("MARKET_CACHE_TTL", cfg.Market.CacheTTL); err != nil {
		return err
	}
	if cfg.Market.FetchTimeout, err = envDuration("MARKET_FETCH_TIMEOUT", cfg.Market.FetchTimeout); err != nil {
		return err
	}
	if cfg.Market.Limit, err = envInt("MARKET_LIMIT", cfg.Market.Limit); err != nil {
		return err
	}

	cfg.Log.Level = envOrDefault("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = envOrDefault("LOG_FORMAT", cfg.Log.Format)

	return nil
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envDuration(key string, fallback Duration) (Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be > 0", key)
	}
	return Duration(d), nil
}

func envInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid %s: must be > 0", key)
	}
	return v, nil
}
