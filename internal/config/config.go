// Package config loads labyrinth settings from a YAML file, a .env file and
// LABYRINTH_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no config path is given and it exists.
const DefaultFile = "labyrinth.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LABYRINTH_"

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Level names a maze by difficulty.
type Level struct {
	Name string `mapstructure:"name" yaml:"name"`
	Maze string `mapstructure:"maze" yaml:"maze"`
}

// Animation controls the frame delays of animated searches.
type Animation struct {
	StepDelay time.Duration `mapstructure:"step_delay" yaml:"step_delay"`
	WalkDelay time.Duration `mapstructure:"walk_delay" yaml:"walk_delay"`
}

// Server configures the HTTP and MCP SSE listeners.
type Server struct {
	Port int `mapstructure:"port" yaml:"port"`
}

// Store selects the session store backend.
type Store struct {
	Kind string `mapstructure:"kind" yaml:"kind"`
	Path string `mapstructure:"path" yaml:"path"`
}

// Redis configures the redis session store and locker.
type Redis struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// Config is the full application configuration.
type Config struct {
	MazeDir         string    `mapstructure:"maze_dir" yaml:"maze_dir"`
	DefaultStrategy string    `mapstructure:"default_strategy" yaml:"default_strategy"`
	Levels          []Level   `mapstructure:"levels" yaml:"levels"`
	Animation       Animation `mapstructure:"animation" yaml:"animation"`
	Server          Server    `mapstructure:"server" yaml:"server"`
	Store           Store     `mapstructure:"store" yaml:"store"`
	Redis           Redis     `mapstructure:"redis" yaml:"redis"`
	LogLevel        string    `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MazeDir:         "mazes",
		DefaultStrategy: string(domain.StrategyBFS),
		Levels: []Level{
			{Name: "easy", Maze: "easy"},
			{Name: "medium", Maze: "medium"},
			{Name: "hard", Maze: "hard"},
			{Name: "very-hard", Maze: "very-hard"},
			{Name: "impossible", Maze: "impossible"},
		},
		Animation: Animation{
			StepDelay: 50 * time.Millisecond,
			WalkDelay: 100 * time.Millisecond,
		},
		Server: Server{Port: 8080},
		Store:  Store{Kind: StoreFile},
		Redis: Redis{
			Addr:   "localhost:6379",
			Prefix: "labyrinth:session:",
		},
		LogLevel: "info",
	}
}

// envKeys maps each environment override to its path in the YAML tree.
var envKeys = map[string][]string{
	"MAZE_DIR":             {"maze_dir"},
	"DEFAULT_STRATEGY":     {"default_strategy"},
	"ANIMATION_STEP_DELAY": {"animation", "step_delay"},
	"ANIMATION_WALK_DELAY": {"animation", "walk_delay"},
	"SERVER_PORT":          {"server", "port"},
	"STORE_KIND":           {"store", "kind"},
	"STORE_PATH":           {"store", "path"},
	"REDIS_ADDR":           {"redis", "addr"},
	"REDIS_PASSWORD":       {"redis", "password"},
	"REDIS_DB":             {"redis", "db"},
	"REDIS_PREFIX":         {"redis", "prefix"},
	"REDIS_TTL":            {"redis", "ttl"},
	"LOG_LEVEL":            {"log_level"},
}

// Load reads path (or DefaultFile when path is empty and the file exists),
// applies environment overrides and validates the result.
// A .env file in the working directory is loaded first if present; variables
// already set in the environment win over it.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	raw := map[string]any{}
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	}

	applyEnv(raw, os.LookupEnv)

	cfg, err := decode(raw)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(raw map[string]any, lookup func(string) (string, bool)) {
	for suffix, keyPath := range envKeys {
		value, ok := lookup(EnvPrefix + suffix)
		if !ok {
			continue
		}
		node := raw
		for _, key := range keyPath[:len(keyPath)-1] {
			child, ok := node[key].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[key] = child
			}
			node = child
		}
		node[keyPath[len(keyPath)-1]] = value
	}
}

func decode(raw map[string]any) (Config, error) {
	cfg := Default()
	// A configured list replaces the default levels instead of merging into them.
	if _, ok := raw["levels"]; ok {
		cfg.Levels = nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks values that decoding cannot.
func (c Config) Validate() error {
	if _, err := domain.ParseStrategy(c.DefaultStrategy); err != nil {
		return fmt.Errorf("invalid default_strategy: %w", err)
	}
	switch c.Store.Kind {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("invalid store.kind %q (want memory, file or redis)", c.Store.Kind)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Animation.StepDelay < 0 || c.Animation.WalkDelay < 0 {
		return errors.New("animation delays must not be negative")
	}
	seen := make(map[string]bool, len(c.Levels))
	for _, l := range c.Levels {
		if l.Name == "" || l.Maze == "" {
			return fmt.Errorf("level %q needs both name and maze", l.Name)
		}
		if seen[l.Name] {
			return fmt.Errorf("duplicate level %q", l.Name)
		}
		seen[l.Name] = true
	}
	return nil
}

// Strategy returns the parsed default strategy. Validate guarantees it parses.
func (c Config) Strategy() domain.Strategy {
	s, err := domain.ParseStrategy(c.DefaultStrategy)
	if err != nil {
		return domain.StrategyBFS
	}
	return s
}

// Level looks up a level by name.
func (c Config) Level(name string) (Level, bool) {
	for _, l := range c.Levels {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return Level{}, false
}

// ResolveMaze maps a level name to its maze. Other names pass through unchanged.
func (c Config) ResolveMaze(name string) string {
	if l, ok := c.Level(name); ok {
		return l.Maze
	}
	return name
}
