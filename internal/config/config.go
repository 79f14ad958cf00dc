// Package config loads the serve command's TOML configuration.
//
// All fields are optional; the zero config runs the server on the default
// address with an in-memory store and no shared cache.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults.
const (
	DefaultAddr     = ":8080"
	DefaultCacheTTL = 24 * time.Hour
	DefaultDatabase = "flowgraph"
)

// Config is the root configuration for the web server.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects the artifact cache backend. When RedisAddr is set the
// Redis backend is used; otherwise Dir selects a file cache, and leaving
// both empty disables caching.
type CacheConfig struct {
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       duration `toml:"ttl"`
}

// StoreConfig selects the analysis store backend. When MongoURI is set the
// MongoDB backend is used; otherwise analyses are kept in memory.
type StoreConfig struct {
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// duration wraps time.Duration so TTLs can be written as "12h" in TOML.
type duration time.Duration

// UnmarshalText implements toml's text unmarshaling for durations.
func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// TTL returns the configured cache TTL, or the default when unset.
func (c CacheConfig) CacheTTL() time.Duration {
	if c.TTL == 0 {
		return DefaultCacheTTL
	}
	return time.Duration(c.TTL)
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: DefaultAddr},
		Store:  StoreConfig{Database: DefaultDatabase},
	}
}

// Load reads a TOML config file and fills unset fields with defaults.
// An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Store.Database == "" {
		cfg.Store.Database = DefaultDatabase
	}
	return cfg, nil
}
