package core

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/animaconv/engine/math"
)

const (
	MAX_BONE_INFLUENCES     = 4
	DEFAULT_LOG_LEVEL       = "info"
	DEFAULT_ASSET_EXTENSION = ".ceasset"
)

// MaxInfluences is clamped to [1, MAX_BONE_INFLUENCES]. PruneToFixedPoint repeats
// the joint prune pass until nothing else is removed.
type ImportConfig struct {
	MaxInfluences      int  `toml:"max_influences"`
	PruneToFixedPoint  bool `toml:"prune_to_fixed_point"`
	OptimizeAnimations bool `toml:"optimize_animations"`
}

type ExportConfig struct {
	OutputDir    string `toml:"output_dir"`
	Texture      string `toml:"texture"`
	FlipTextureY bool   `toml:"flip_texture_y"`
}

type Config struct {
	LogLevel string       `toml:"log_level"`
	Import   ImportConfig `toml:"import"`
	Export   ExportConfig `toml:"export"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: DEFAULT_LOG_LEVEL,
		Import: ImportConfig{
			MaxInfluences:      MAX_BONE_INFLUENCES,
			OptimizeAnimations: true,
		},
	}
}

// LoadConfig reads a TOML file on top of the defaults. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := ParseConfig(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func ParseConfig(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	cfg.Normalize()
	return nil
}

func (c *Config) Normalize() {
	if c.LogLevel == "" {
		c.LogLevel = DEFAULT_LOG_LEVEL
	}
	if c.Import.MaxInfluences != math.Clamp(c.Import.MaxInfluences, 1, MAX_BONE_INFLUENCES) {
		LogWarn("max_influences %d out of range, clamping to [1, %d]", c.Import.MaxInfluences, MAX_BONE_INFLUENCES)
		c.Import.MaxInfluences = math.Clamp(c.Import.MaxInfluences, 1, MAX_BONE_INFLUENCES)
	}
}

func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
