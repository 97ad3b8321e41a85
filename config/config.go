package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmaze/maze"
	"github.com/katalvlaran/lvmaze/solver"
)

// Environment variables that override file values.
const (
	EnvRows      = "LVMAZE_ROWS"
	EnvCols      = "LVMAZE_COLS"
	EnvStrategy  = "LVMAZE_STRATEGY"
	EnvPrune     = "LVMAZE_PRUNE"
	EnvLogLevel  = "LVMAZE_LOG_LEVEL"
	EnvHTTPAddr  = "LVMAZE_HTTP_ADDR"
	EnvMaxCells  = "LVMAZE_MAX_CELLS"
	EnvRedisAddr = "LVMAZE_REDIS_ADDR"
	EnvCacheTTL  = "LVMAZE_CACHE_TTL"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds all lvmaze configuration.
type Config struct {
	// Grid dimensions used when a request or command does not give its own.
	Maze maze.Config `yaml:"maze"`

	// Search settings
	Solver SolverConfig `yaml:"solver"`

	// HTTP API
	Server ServerConfig `yaml:"server"`

	// Result cache
	Cache CacheConfig `yaml:"cache"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// SolverConfig configures package solver.
type SolverConfig struct {
	Strategy          string `yaml:"strategy"` // auto, recursive, iterative
	MaxRecursiveCells int    `yaml:"max_recursive_cells"`
	Prune             bool   `yaml:"prune"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr     string `yaml:"addr"`
	BaseURL  string `yaml:"base_url"`
	MaxCells int    `yaml:"max_cells"` // largest rows×cols a request may ask for
	GinMode  string `yaml:"gin_mode"`

	// SolveTimeout bounds one search; 0 disables the limit.
	SolveTimeout time.Duration `yaml:"solve_timeout"`
}

// CacheConfig configures the result cache. An empty RedisAddr selects the
// in-memory store.
type CacheConfig struct {
	Enabled   bool   `yaml:"enabled"`
	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`

	// TTL is how long an entry lives; 0 keeps entries until evicted.
	TTL time.Duration `yaml:"ttl"`

	// MaxEntries caps the in-memory store; 0 leaves it unbounded.
	MaxEntries int `yaml:"max_entries"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Maze: maze.DefaultConfig(),
		Solver: SolverConfig{
			Strategy:          "auto",
			MaxRecursiveCells: solver.DefaultMaxRecursiveCells,
			Prune:             false,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			BaseURL:      "/api",
			MaxCells:     4096,
			GinMode:      "release",
			SolveTimeout: 5 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 1024,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped if it
// does not exist or path is empty), a .env file in the working directory if
// present, and LVMAZE_* environment variables, in that order.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
			// Defaults apply when the file is absent
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides copies set LVMAZE_* variables over file values.
func (c *Config) applyEnvOverrides() error {
	if err := envInt(EnvRows, &c.Maze.Rows); err != nil {
		return err
	}
	if err := envInt(EnvCols, &c.Maze.Cols); err != nil {
		return err
	}
	if err := envInt(EnvMaxCells, &c.Server.MaxCells); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvPrune); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be a boolean: %v", ErrInvalid, EnvPrune, err)
		}
		c.Solver.Prune = b
	}
	envString(EnvStrategy, &c.Solver.Strategy)
	envString(EnvLogLevel, &c.Logging.Level)
	envString(EnvHTTPAddr, &c.Server.Addr)
	if v, ok := os.LookupEnv(EnvRedisAddr); ok {
		c.Cache.RedisAddr = v
		c.Cache.Enabled = true
	}
	if v, ok := os.LookupEnv(EnvCacheTTL); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be a duration: %v", ErrInvalid, EnvCacheTTL, err)
		}
		c.Cache.TTL = d
	}

	return nil
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalid, key, err)
	}
	*dst = n

	return nil
}

// Validate checks dimensions, strategy, log level and cache limits.
func (c *Config) Validate() error {
	if err := c.Maze.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := solver.ParseStrategy(c.Solver.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Server.MaxCells <= 0 {
		return fmt.Errorf("%w: server.max_cells must be positive", ErrInvalid)
	}
	if c.Server.SolveTimeout < 0 {
		return fmt.Errorf("%w: server.solve_timeout must not be negative", ErrInvalid)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Logging.Level)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("%w: cache.ttl must not be negative", ErrInvalid)
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("%w: cache.max_entries must not be negative", ErrInvalid)
	}

	return nil
}

// Strategy returns the parsed solver strategy.
func (c *Config) Strategy() solver.Strategy {
	s, _ := solver.ParseStrategy(c.Solver.Strategy)
	return s
}

// SolverOptions converts the solver section into solver options.
func (c *Config) SolverOptions() []solver.Option {
	opts := []solver.Option{
		solver.WithStrategy(c.Strategy()),
		solver.WithMaxRecursiveCells(c.Solver.MaxRecursiveCells),
	}
	if c.Solver.Prune {
		opts = append(opts, solver.WithPrune())
	}

	return opts
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
