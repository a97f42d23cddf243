// Package config handles configuration loading and defaults.
//
// Precedence, lowest first: built-in defaults, the TOML file, variables
// from a .env file, then the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Default values.
const (
	DefaultConfigFile   = "kanban.toml"
	DefaultEnvFile      = ".env"
	DefaultStorage      = StorageFile
	DefaultKey          = "kanbanColumns"
	DefaultLogLevel     = "warn"
	DefaultTheme        = "classic"
	DefaultDateFormat   = "1/2/2006, 3:04:05 PM"
	DefaultRedisTimeout = 2 * time.Second
)

// Storage backends.
const (
	StorageFile  = "file"
	StorageRedis = "redis"
)

// Config holds the full configuration for kanban.
type Config struct {
	// Persistence
	Storage string      `toml:"storage"`  // file or redis
	DataDir string      `toml:"data_dir"` // file backend only; empty means working dir
	Key     string      `toml:"key"`
	Redis   RedisConfig `toml:"redis"`

	// Logging
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`

	// Presentation
	Theme      string `toml:"theme"`
	DateFormat string `toml:"date_format"`

	// Path of the file the config was read from, if any.
	Path string `toml:"-"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	URL      string        `toml:"url"`
	Addr     string        `toml:"addr"`
	Password string        `toml:"password"`
	DB       int           `toml:"db"`
	Prefix   string        `toml:"prefix"`
	Timeout  time.Duration `toml:"timeout"`
}

// Default returns a Config with every field at its default.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	if cfg.Storage == "" {
		cfg.Storage = DefaultStorage
	}
	if cfg.Key == "" {
		cfg.Key = DefaultKey
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = DefaultDateFormat
	}
	if cfg.Redis.Timeout <= 0 {
		cfg.Redis.Timeout = DefaultRedisTimeout
	}
}

// Load reads configuration from path. An empty path falls back to
// $KANBAN_CONFIG, then to kanban.toml in the working directory; only an
// explicitly named file has to exist.
func Load(path string) (*Config, error) {
	if err := loadEnvFile(DefaultEnvFile); err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		if p := strings.TrimSpace(os.Getenv("KANBAN_CONFIG")); p != "" {
			path, explicit = p, true
		} else {
			path = DefaultConfigFile
		}
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			cfg = &Config{}
		} else {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	} else {
		cfg.Path = path
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	setDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFile loads KEY=VALUE pairs without overriding variables that are
// already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("env file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	str := map[string]*string{
		"KANBAN_STORAGE":        &cfg.Storage,
		"KANBAN_DATA_DIR":       &cfg.DataDir,
		"KANBAN_KEY":            &cfg.Key,
		"KANBAN_LOG_LEVEL":      &cfg.LogLevel,
		"KANBAN_LOG_FILE":       &cfg.LogFile,
		"KANBAN_THEME":          &cfg.Theme,
		"KANBAN_REDIS_URL":      &cfg.Redis.URL,
		"KANBAN_REDIS_ADDR":     &cfg.Redis.Addr,
		"KANBAN_REDIS_PASSWORD": &cfg.Redis.Password,
		"KANBAN_REDIS_PREFIX":   &cfg.Redis.Prefix,
	}
	for name, dst := range str {
		if v, ok := os.LookupEnv(name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	if v := strings.TrimSpace(os.Getenv("KANBAN_REDIS_DB")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid KANBAN_REDIS_DB: %w", err)
		}
		cfg.Redis.DB = n
	}
	return nil
}

// Validate checks values that have no sensible fallback.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageFile:
	case StorageRedis:
		if c.Redis.URL == "" && c.Redis.Addr == "" {
			return errors.New("config: redis storage needs redis.addr or redis.url")
		}
	default:
		return fmt.Errorf("config: unknown storage %q (want %s or %s)", c.Storage, StorageFile, StorageRedis)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("config: redis.db must be >= 0, got %d", c.Redis.DB)
	}
	return nil
}
