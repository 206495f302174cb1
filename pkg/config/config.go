// Package config loads sketchcoach settings.
//
// Settings are layered: built-in defaults, then an optional TOML file, then
// environment variables. Command-line flags are applied last by the CLI.
//
// Example file:
//
//	host = "127.0.0.1"
//	port = 8080
//	allowed_origin = "https://water-ants.onrender.com"
//	static_dir = "./static"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[prompt]
//	id = "cube_001"
//	image_url = "/static/prompts/cube_001.png"
//	instructions = "Draw this cube as accurately as possible."
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/waterants/sketchcoach/pkg/analysis"
	"github.com/waterants/sketchcoach/pkg/cache"
	"github.com/waterants/sketchcoach/pkg/tasks"
)

// Defaults.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8000
	DefaultAllowedOrigin   = "https://water-ants.onrender.com"
	DefaultMaxUploadBytes  = 10 << 20
	DefaultShutdownTimeout = 10 * time.Second
	DefaultCacheNamespace  = "sketchcoach:"
)

// Config holds all service settings.
type Config struct {
	Host string `toml:"host" env:"HOST"`
	Port int    `toml:"port" env:"PORT"`

	// AllowedOrigin is the single origin granted cross-origin access.
	AllowedOrigin string `toml:"allowed_origin" env:"SKETCHCOACH_ALLOWED_ORIGIN"`

	// StaticDir, when set, is served under /static/.
	StaticDir string `toml:"static_dir" env:"SKETCHCOACH_STATIC_DIR"`

	MaxUploadBytes    int64         `toml:"max_upload_bytes"`
	MaxImageDimension int           `toml:"max_image_dimension"`
	MaxImagePixels    int           `toml:"max_image_pixels"`
	ShutdownTimeout   time.Duration `toml:"shutdown_timeout"`

	Cache CacheConfig `toml:"cache"`

	// Prompt is the task returned by GET /task.
	Prompt tasks.Task `toml:"prompt"`

	// NextTask is what the fixed selector hands back after a submission.
	NextTask tasks.Task `toml:"next_task"`
}

// CacheConfig selects the analysis cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend" env:"SKETCHCOACH_CACHE"`
	Dir       string `toml:"dir" env:"SKETCHCOACH_CACHE_DIR"`
	RedisAddr string `toml:"redis_addr" env:"SKETCHCOACH_REDIS_ADDR"`
	RedisDB   int    `toml:"redis_db"`
	Namespace string `toml:"namespace"`

	// RedisPassword is only read from the environment.
	RedisPassword string `toml:"-" env:"SKETCHCOACH_REDIS_PASSWORD"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Host:              DefaultHost,
		Port:              DefaultPort,
		AllowedOrigin:     DefaultAllowedOrigin,
		MaxUploadBytes:    DefaultMaxUploadBytes,
		MaxImageDimension: analysis.DefaultMaxDimension,
		MaxImagePixels:    analysis.DefaultMaxPixels,
		ShutdownTimeout:   DefaultShutdownTimeout,
		Cache: CacheConfig{
			Backend:   cache.BackendNone,
			Namespace: DefaultCacheNamespace,
		},
		Prompt:   tasks.DefaultPrompt,
		NextTask: tasks.DefaultPrompt,
	}
}

// Load builds a Config from defaults, the TOML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.AllowedOrigin == "" {
		return fmt.Errorf("allowed_origin is required")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive")
	}
	if c.MaxImageDimension < 0 {
		return fmt.Errorf("max_image_dimension cannot be negative")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}
	if c.MaxImagePixels < 0 {
		return fmt.Errorf("max_image_pixels cannot be negative")
	}
	if err := c.Prompt.Validate(); err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	if err := c.NextTask.Validate(); err != nil {
		return fmt.Errorf("next_task: %w", err)
	}

	switch c.Cache.Backend {
	case "", cache.BackendNone:
	case cache.BackendFile:
		if c.Cache.Dir == "" {
			return fmt.Errorf("cache.dir is required for the file backend")
		}
	case cache.BackendRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// CacheOptions converts the cache section for cache.Open.
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		},
	}
}
