// Package config loads kbgen's optional TOML configuration file.
//
// A config file sets defaults for a project so the command line only needs
// the layout path:
//
//	# kbgen.toml
//	output   = "src/keyboard.h"
//	template = "src/keyboard.h.in"
//
//	[geometry]
//	key_width  = 64
//	key_height = 64
//	margin_x   = 0
//	margin_y   = 0
//
// Precedence is flags, then the config file, then built-in defaults.
package config

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/klawa/kbgen/pkg/errors"
	"github.com/klawa/kbgen/pkg/geometry"
)

// DefaultFile is the config file looked up in the working directory when
// no path is given.
const DefaultFile = "kbgen.toml"

// DefaultOutput is where the artifact is written when nothing overrides it.
const DefaultOutput = "src/keyboard.h"

// Config is the decoded configuration file.
type Config struct {
	Output   string   `toml:"output"`
	Template string   `toml:"template"`
	Geometry Geometry `toml:"geometry"`
}

// Geometry holds pixel scaling overrides. Nil fields keep the default.
type Geometry struct {
	KeyWidth  *float64 `toml:"key_width"`
	KeyHeight *float64 `toml:"key_height"`
	MarginX   *int     `toml:"margin_x"`
	MarginY   *int     `toml:"margin_y"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Output: DefaultOutput}
}

// Load reads the config file at path. With an empty path it tries
// DefaultFile and silently falls back to Default when that does not exist.
// An explicitly named file must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig,
			"%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	g := c.Geometry
	if g.KeyWidth != nil && *g.KeyWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "geometry.key_width must be positive")
	}
	if g.KeyHeight != nil && *g.KeyHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "geometry.key_height must be positive")
	}
	if g.MarginX != nil && *g.MarginX < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "geometry.margin_x cannot be negative")
	}
	if g.MarginY != nil && *g.MarginY < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "geometry.margin_y cannot be negative")
	}
	return nil
}

// GeometryOptions applies the overrides to the built-in geometry options.
func (c Config) GeometryOptions() geometry.Options {
	opts := geometry.DefaultOptions()
	g := c.Geometry
	if g.KeyWidth != nil {
		opts.KeyWidth = *g.KeyWidth
	}
	if g.KeyHeight != nil {
		opts.KeyHeight = *g.KeyHeight
	}
	if g.MarginX != nil {
		opts.MarginX = *g.MarginX
	}
	if g.MarginY != nil {
		opts.MarginY = *g.MarginY
	}
	return opts
}
