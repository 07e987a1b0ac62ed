package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/viper"
)

const CONFIG_NAME = "library-client"

// Config is read from the environment (BACKEND_URL, REDIS_URL, LISTEN_ADDR,
// ACTIVITY_MAX, LOG_LEVEL), falling back to an optional library-client.yaml.
type Config struct {
	BackendURL  string
	RedisURL    string
	ListenAddr  string
	ActivityMax int
	LogLevel    string
}

func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("backend_url", "http://localhost:8080")
	v.SetDefault("redis_url", "")
	v.SetDefault("listen_addr", ":8081")
	v.SetDefault("activity_max", 3)
	v.SetDefault("log_level", "info")

	v.SetConfigName(CONFIG_NAME)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		BackendURL:  v.GetString("backend_url"),
		RedisURL:    v.GetString("redis_url"),
		ListenAddr:  v.GetString("listen_addr"),
		ActivityMax: v.GetInt("activity_max"),
		LogLevel:    v.GetString("log_level"),
	}

	return cfg, cfg.validate()
}

func (cfg Config) validate() error {
	parsed, err := url.Parse(cfg.BackendURL)
	if err != nil {
		return fmt.Errorf("backend_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("backend_url %q: scheme must be http or https", cfg.BackendURL)
	}
	if cfg.ActivityMax < 1 {
		return fmt.Errorf("activity_max must be positive, got %d", cfg.ActivityMax)
	}
	return nil
}
