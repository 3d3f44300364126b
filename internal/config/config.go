// Package config loads hexboard settings from a YAML file, a .env file and
// HEXBOARD_* environment variables, in that order of precedence (lowest
// first).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/talgya/hexboard/internal/hexmap"
	"github.com/talgya/hexboard/internal/terrain"
	"github.com/talgya/hexboard/internal/topo"
)

// Board kinds.
const (
	KindSpiral = "spiral"
	KindBattle = "battle"
)

// Config holds all hexboard configuration.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Terrain TerrainConfig `yaml:"terrain"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
}

// BoardConfig describes the board to generate.
type BoardConfig struct {
	Name         string   `yaml:"name"`
	Kind         string   `yaml:"kind"`     // spiral | battle
	Topology     string   `yaml:"topology"` // ew | ns
	Radius       float64  `yaml:"radius"`
	NHexes       int      `yaml:"nhexes"` // district order
	MHexes       int      `yaml:"mhexes"` // meta-hex order, spiral only
	Palette      []string `yaml:"palette"`
	DefaultColor string   `yaml:"default_color"`
}

// TerrainConfig controls the terrain facet.
type TerrainConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Seed          int64   `yaml:"seed"`
	LakeLevel     float64 `yaml:"lake_level"`
	MountainLevel float64 `yaml:"mountain_level"`
}

// StoreConfig holds output locations.
type StoreConfig struct {
	Path        string `yaml:"path"`
	ScenarioLog string `yaml:"scenario_log"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns a usable configuration without any file.
func Default() *Config {
	tc := terrain.DefaultConfig()
	return &Config{
		Board: BoardConfig{
			Name:         "hexboard",
			Kind:         KindSpiral,
			Topology:     "ew",
			Radius:       60,
			NHexes:       3,
			MHexes:       2,
			Palette:      hexmap.DefaultPalette,
			DefaultColor: hexmap.DefaultColor,
		},
		Terrain: TerrainConfig{
			Enabled:       true,
			LakeLevel:     tc.LakeLevel,
			MountainLevel: tc.MountainLevel,
		},
		Store: StoreConfig{
			Path:        "hexboard.db",
			ScenarioLog: "scenario.log",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults (an empty path skips
// the file), applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using system environment variables")
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("environment override: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key string) (string, bool) {
	v, ok := os.LookupEnv("HEXBOARD_" + key)
	return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
}

func (c *Config) applyEnv() error {
	if v, ok := getEnv("KIND"); ok {
		c.Board.Kind = v
	}
	if v, ok := getEnv("TOPOLOGY"); ok {
		c.Board.Topology = v
	}
	if v, ok := getEnv("DB_PATH"); ok {
		c.Store.Path = v
	}
	if v, ok := getEnv("LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"NHEXES", &c.Board.NHexes},
		{"MHEXES", &c.Board.MHexes},
	}
	for _, e := range ints {
		if v, ok := getEnv(e.key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("HEXBOARD_%s: %w", e.key, err)
			}
			*e.dst = n
		}
	}
	if v, ok := getEnv("SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("HEXBOARD_SEED: %w", err)
		}
		c.Terrain.Seed = n
	}
	return nil
}

// Validate checks that the board can be generated as configured.
func (c *Config) Validate() error {
	var errs []error
	t, err := topo.ParseTopology(c.Board.Topology)
	if err != nil {
		errs = append(errs, err)
	}
	if c.Board.Radius <= 0 {
		errs = append(errs, fmt.Errorf("board radius must be positive, got %v", c.Board.Radius))
	}
	switch c.Board.Kind {
	case KindSpiral:
		if c.Board.NHexes < 1 || c.Board.MHexes < 1 {
			errs = append(errs, fmt.Errorf("spiral board needs nhexes and mhexes >= 1, got %d and %d", c.Board.NHexes, c.Board.MHexes))
		}
		if err == nil && c.Board.MHexes > 1 && t != topo.EW {
			errs = append(errs, fmt.Errorf("mhexes %d requires topology ew", c.Board.MHexes))
		}
	case KindBattle:
		if c.Board.NHexes < 2 || c.Board.NHexes > 8 {
			errs = append(errs, fmt.Errorf("battle board needs nhexes in 2..8, got %d", c.Board.NHexes))
		}
		if err == nil && t != topo.NS {
			errs = append(errs, errors.New("battle board requires topology ns"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown board kind %q", c.Board.Kind))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Logging.Level))
	}
	return errors.Join(errs...)
}

// MapConfig returns the construction parameters for hexmap.New. Call it
// on a validated config.
func (c *Config) MapConfig() hexmap.Config {
	t, _ := topo.ParseTopology(c.Board.Topology)
	return hexmap.Config{
		Radius:       c.Board.Radius,
		Topology:     t,
		Palette:      c.Board.Palette,
		DefaultColor: c.Board.DefaultColor,
	}
}

// NoiseConfig returns the terrain generation parameters.
func (c *Config) NoiseConfig() terrain.Config {
	return terrain.Config{
		Seed:          c.Terrain.Seed,
		LakeLevel:     c.Terrain.LakeLevel,
		MountainLevel: c.Terrain.MountainLevel,
	}
}
