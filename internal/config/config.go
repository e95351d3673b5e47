// Package config loads infoboard settings from a YAML or JSON file and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvAPIToken   = "INFOBOARD_API_TOKEN"
	EnvAPIBaseURL = "INFOBOARD_API_BASE_URL"
	EnvRedisAddr  = "INFOBOARD_REDIS_ADDR"
)

// Cache drivers.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config is the full application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api" json:"api"`
	Cache   CacheConfig   `mapstructure:"cache" json:"cache"`
	Machine MachineConfig `mapstructure:"machine" json:"machine"`
	UI      UIConfig      `mapstructure:"ui" json:"ui"`
	Server  ServerConfig  `mapstructure:"server" json:"server"`
	Log     LogConfig     `mapstructure:"log" json:"log"`
}

// APIConfig describes the upstream info endpoint.
type APIConfig struct {
	BaseURL  string        `mapstructure:"base_url" json:"base_url"`
	Endpoint string        `mapstructure:"endpoint" json:"endpoint"`
	Token    string        `mapstructure:"token" json:"-"`
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout"`
}

// CacheConfig selects where the last good header is kept.
type CacheConfig struct {
	Driver string        `mapstructure:"driver" json:"driver"`
	TTL    time.Duration `mapstructure:"ttl" json:"ttl"`
	Redis  RedisConfig   `mapstructure:"redis" json:"redis"`
}

// RedisConfig holds the redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" json:"addr"`
	Password string `mapstructure:"password" json:"-"`
	DB       int    `mapstructure:"db" json:"db"`
	Prefix   string `mapstructure:"prefix" json:"prefix"`
}

// MachineConfig tunes the state machine.
type MachineConfig struct {
	Workers int `mapstructure:"workers" json:"workers"`
	Buffer  int `mapstructure:"buffer" json:"buffer"`
}

// UIConfig controls presentation.
type UIConfig struct {
	ErrorDisplay time.Duration `mapstructure:"error_display" json:"error_display"`
	TimeFormat   string        `mapstructure:"time_format" json:"time_format"`
	Timezone     string        `mapstructure:"timezone" json:"timezone"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `mapstructure:"port" json:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:  "http://localhost:8080",
			Endpoint: "/info",
			Timeout:  10 * time.Second,
		},
		Cache: CacheConfig{
			Driver: CacheNone,
			TTL:    10 * time.Minute,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "infoboard:",
			},
		},
		Machine: MachineConfig{
			Workers: 4,
			Buffer:  16,
		},
		UI: UIConfig{
			ErrorDisplay: 3 * time.Second,
			TimeFormat:   "15:04",
			Timezone:     "Local",
		},
		Server: ServerConfig{Port: 8080},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path, or a missing file, yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := Decode(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return raw, nil
	}

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return raw, nil
}

// Decode merges raw settings into cfg. Durations accept strings such as "3s".
// Unknown keys are rejected.
func Decode(raw map[string]any, cfg *Config) error {
	if len(raw) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIToken); ok {
		c.API.Token = v
	}
	if v, ok := lookup(EnvAPIBaseURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookup(EnvRedisAddr); ok && v != "" {
		c.Cache.Redis.Addr = v
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.API.Endpoint == "" {
		return errors.New("api.endpoint is required")
	}
	if c.API.Timeout < 0 {
		return errors.New("api.timeout must not be negative")
	}

	switch c.Cache.Driver {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Cache.Redis.Addr == "" {
			return errors.New("cache.redis.addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown cache driver %q", c.Cache.Driver)
	}

	if c.Machine.Workers <= 0 {
		return fmt.Errorf("machine.workers must be positive, got %d", c.Machine.Workers)
	}
	if c.Machine.Buffer < 0 {
		return fmt.Errorf("machine.buffer must not be negative, got %d", c.Machine.Buffer)
	}

	if c.UI.ErrorDisplay < 0 {
		return errors.New("ui.error_display must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// Location resolves the configured timezone. Empty and "Local" mean the host zone.
func (c Config) Location() (*time.Location, error) {
	switch c.UI.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.UI.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown ui.timezone %q: %w", c.UI.Timezone, err)
	}
	return loc, nil
}
