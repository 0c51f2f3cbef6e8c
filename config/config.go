// Package config loads the noticepdf TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/wudi/noticepdf/fonts"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Server ServerConfig `toml:"server"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Log    LogConfig    `toml:"log"`
}

type ServerConfig struct {
	Addr                   string  `toml:"addr"`
	ShutdownTimeoutSeconds int     `toml:"shutdown_timeout_seconds"`
	MaxInputBytes          int64   `toml:"max_input_bytes"`
	RateLimit              float64 `toml:"rate_limit"` // requests per second, 0 disables
	RateBurst              int     `toml:"rate_burst"`
}

type RenderConfig struct {
	WidthModel    string `toml:"width_model"`
	HeadingScript string `toml:"heading_script"` // path to a JavaScript heading rule
	Title         string `toml:"title"`
	Subtitle      string `toml:"subtitle"`
}

type CacheConfig struct {
	RedisAddr  string `toml:"redis_addr"` // empty selects the in-process cache
	RedisDB    int    `toml:"redis_db"`
	TTLSeconds int    `toml:"ttl_seconds"`
	MaxEntries int    `toml:"max_entries"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:                   ":8080",
			ShutdownTimeoutSeconds: 10,
			MaxInputBytes:          1 << 20,
			RateLimit:              20,
			RateBurst:              40,
		},
		Render: RenderConfig{WidthModel: fonts.ModelHeuristic},
		Cache:  CacheConfig{TTLSeconds: 600, MaxEntries: 256},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults. A missing file is an error; an empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Server.Addr == "":
		return fmt.Errorf("%w: server.addr is empty", ErrInvalid)
	case c.Server.MaxInputBytes <= 0:
		return fmt.Errorf("%w: server.max_input_bytes must be positive", ErrInvalid)
	case c.Server.ShutdownTimeoutSeconds < 0:
		return fmt.Errorf("%w: server.shutdown_timeout_seconds is negative", ErrInvalid)
	case c.Server.RateLimit < 0 || c.Server.RateBurst < 0:
		return fmt.Errorf("%w: rate limits are negative", ErrInvalid)
	case c.Server.RateLimit > 0 && c.Server.RateBurst == 0:
		return fmt.Errorf("%w: server.rate_burst must be positive when rate_limit is set", ErrInvalid)
	case c.Cache.TTLSeconds < 0 || c.Cache.MaxEntries < 0:
		return fmt.Errorf("%w: cache limits are negative", ErrInvalid)
	}
	switch c.Render.WidthModel {
	case "", fonts.ModelHeuristic, fonts.ModelSFNT, fonts.ModelShaped:
	default:
		return fmt.Errorf("%w: render.width_model %q", ErrInvalid, c.Render.WidthModel)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}
