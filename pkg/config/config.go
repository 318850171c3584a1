// Package config loads the staticsnap server configuration from defaults,
// an optional YAML file and STATICSNAP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Maps      MapsConfig      `mapstructure:"maps"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// MapsConfig holds the values injected into every snapshot URL.
type MapsConfig struct {
	Host   string `mapstructure:"host"`
	Sensor string `mapstructure:"sensor"`
}

type CacheConfig struct {
	Size int           `mapstructure:"size"`
	TTL  time.Duration `mapstructure:"ttl"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration. When file is empty, staticsnap.yaml is looked up
// in . and ./configs and skipped if missing; an explicit file must exist.
func Load(file string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("maps.host", "maps.google.com")
	v.SetDefault("maps.sensor", "false")
	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("ratelimit.rps", 20)
	v.SetDefault("ratelimit.burst", 40)
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.addr", "")

	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("staticsnap")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// STATICSNAP_MAPS_HOST → maps.host
	v.SetEnvPrefix("STATICSNAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []string

	if c.Maps.Host == "" {
		errs = append(errs, "maps.host is required")
	}
	if strings.ContainsAny(c.Maps.Host, "/?&") {
		errs = append(errs, fmt.Sprintf("maps.host must be a bare host name, got %q", c.Maps.Host))
	}
	if c.Maps.Sensor != "true" && c.Maps.Sensor != "false" {
		errs = append(errs, fmt.Sprintf("maps.sensor must be true or false, got %q", c.Maps.Sensor))
	}
	if c.Cache.Size <= 0 {
		errs = append(errs, fmt.Sprintf("cache.size must be positive, got %d", c.Cache.Size))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, "cache.ttl must be positive")
	}
	if c.RateLimit.RPS <= 0 {
		errs = append(errs, "ratelimit.rps must be positive")
	}
	if c.RateLimit.Burst <= 0 {
		errs = append(errs, "ratelimit.burst must be positive")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ParseLevel converts a log.level value to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level must be debug, info, warn or error, got %q", level)
	}
	return l, nil
}
