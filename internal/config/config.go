// Package config loads application settings from an optional config file
// and the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Storage backend names
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds all application settings
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

// ServerConfig points at the remote dart game service
type ServerConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

// StorageConfig selects the local persistence backend
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
}

// RedisConfig configures the redis storage backend
type RedisConfig struct {
	URL          string `mapstructure:"url"`
	KeyPrefix    string `mapstructure:"key_prefix"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

// Load reads configuration from the given file (optional) with
// STEELDART_* environment variables taking precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STEELDART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.endpoint", "http://localhost:5000")
	v.SetDefault("storage.backend", StorageMemory)
	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("redis.key_prefix", "steeldart")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Storage.Backend != StorageMemory && cfg.Storage.Backend != StorageRedis {
		return nil, fmt.Errorf("invalid storage backend %q: must be %q or %q",
			cfg.Storage.Backend, StorageMemory, StorageRedis)
	}

	return &cfg, nil
}
