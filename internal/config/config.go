// Package config loads the asset service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidConfig is returned when parsed values are out of range.
	ErrInvalidConfig = errors.New("invalid config")
)

// Source selects where asset bytes are read from.
type Source string

const (
	SourceFS    Source = "fs"
	SourceRedis Source = "redis"
)

// Config is the asset service configuration.
type Config struct {
	Capacity           int      `env:"RESCACHE_CAPACITY" envDefault:"256"`
	PreloadConcurrency int      `env:"RESCACHE_PRELOAD_CONCURRENCY" envDefault:"4"`
	Preload            []string `env:"RESCACHE_PRELOAD" envSeparator:","`
	MaxAssetSize       int      `env:"RESCACHE_MAX_ASSET_SIZE" envDefault:"67108864"`

	Source    Source `env:"RESCACHE_SOURCE" envDefault:"fs"`
	AssetRoot string `env:"RESCACHE_ASSET_ROOT" envDefault:"./assets"`

	RedisURL           string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisPrefix        string        `env:"REDIS_KEY_PREFIX" envDefault:"assets:"`
	RedisRetryAttempts int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RedisRetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	RedisTimeout       time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`

	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads the optional .env files, then parses the environment into a
// Config and validates it. Missing .env files are not an error.
func Load(dotenv ...string) (Config, error) {
	_ = godotenv.Load(dotenv...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports values that would leave the service unusable.
func (c Config) Validate() error {
	var errs []error
	if c.Capacity < 1 {
		errs = append(errs, fmt.Errorf("capacity must be at least 1, got %d", c.Capacity))
	}
	if c.PreloadConcurrency < 1 {
		errs = append(errs, fmt.Errorf("preload concurrency must be at least 1, got %d", c.PreloadConcurrency))
	}
	switch c.Source {
	case SourceFS:
		if c.AssetRoot == "" {
			errs = append(errs, errors.New("asset root is required for the fs source"))
		}
	case SourceRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("redis url is required for the redis source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source %q", c.Source))
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
}
