// Package config loads the optional run configuration file shared by the
// commands. Flags still win: commands load this first and bind flags on top.
package config

import (
	"forest-ca/internal/errx"
	"forest-ca/internal/terrain"
)

// EnvPrefix namespaces environment overrides, e.g. FORESTCA_FIRE_STEPS=50.
const EnvPrefix = "FORESTCA"

// Config is the root of a run configuration file.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Scene  SceneConfig  `mapstructure:"scene"`
	Fire   FireConfig   `mapstructure:"fire"`
	Output OutputConfig `mapstructure:"output"`
}

// LogConfig controls the zap logger built by package logs.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
	Dev        bool   `mapstructure:"dev"`
}

// SceneConfig overrides a terrain preset. Zero values keep the preset's.
type SceneConfig struct {
	Preset        string       `mapstructure:"preset"`
	Width         int          `mapstructure:"width"`
	Height        int          `mapstructure:"height"`
	SlopeDegrees  *float64     `mapstructure:"slope_deg"`
	LeafThickness *int         `mapstructure:"leaf_thickness"`
	Passes        []string     `mapstructure:"passes"`
	Trees         []TreeConfig `mapstructure:"trees"`
}

// TreeConfig places one tree. Base accepts "x:y" or {x: .., y: ..}.
type TreeConfig struct {
	Base         terrain.Point `mapstructure:"base"`
	Height       int           `mapstructure:"height"`
	Thickness    int           `mapstructure:"thickness"`
	TrunkHeight  int           `mapstructure:"trunk_height"`
	Sharpness    float64       `mapstructure:"sharpness"`
	Ratio        float64       `mapstructure:"ratio"`
	BranchStride int           `mapstructure:"branch_stride"`
}

// FireConfig holds the combustion run settings.
type FireConfig struct {
	Steps        int             `mapstructure:"steps"`
	Seed         int64           `mapstructure:"seed"`
	Ignite       []terrain.Point `mapstructure:"ignite"`
	IgniteRandom int             `mapstructure:"ignite_random"`
	WoodBurnTime float64         `mapstructure:"wood_burn_time"`
	IgniteNear   float64         `mapstructure:"ignite_near"`
	IgniteAlone  float64         `mapstructure:"ignite_alone"`
	Workers      int             `mapstructure:"workers"`
}

// OutputConfig describes where snapshot files and images go.
type OutputConfig struct {
	Dir     string `mapstructure:"dir"`
	Pattern string `mapstructure:"pattern"`
	Header  bool   `mapstructure:"header"`
	Scale   int    `mapstructure:"scale"`
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	if c.Fire.Steps < 0 {
		return errx.ErrInvalidConfig.Withf("fire.steps must not be negative").With("steps", c.Fire.Steps)
	}
	if c.Fire.Workers < 0 {
		return errx.ErrInvalidConfig.Withf("fire.workers must not be negative").With("workers", c.Fire.Workers)
	}
	for key, v := range map[string]float64{
		"fire.wood_burn_time": c.Fire.WoodBurnTime,
		"fire.ignite_near":    c.Fire.IgniteNear,
		"fire.ignite_alone":   c.Fire.IgniteAlone,
	} {
		if v < 0 {
			return errx.ErrInvalidConfig.Withf("%s must not be negative", key).With("value", v)
		}
	}
	if c.Output.Scale < 1 {
		return errx.ErrInvalidConfig.Withf("output.scale must be at least 1").With("scale", c.Output.Scale)
	}
	if c.Scene.Preset != "" {
		if _, ok := terrain.Preset(c.Scene.Preset); !ok {
			return errx.ErrInvalidConfig.Withf("unknown preset %q", c.Scene.Preset).With("known", terrain.PresetNames())
		}
	}
	return nil
}

// TerrainConfig resolves the scene into a terrain.Config: the named preset
// (hillside when empty) with every set field applied on top.
func (s SceneConfig) TerrainConfig() (terrain.Config, error) {
	name := s.Preset
	if name == "" {
		name = "hillside"
	}
	c, ok := terrain.Preset(name)
	if !ok {
		return terrain.Config{}, errx.ErrInvalidConfig.Withf("unknown preset %q", name).With("known", terrain.PresetNames())
	}
	if s.Width != 0 {
		c.Width = s.Width
	}
	if s.Height != 0 {
		c.Height = s.Height
	}
	if s.SlopeDegrees != nil {
		c.SlopeDegrees = *s.SlopeDegrees
	}
	if s.LeafThickness != nil {
		c.LeafThickness = *s.LeafThickness
	}
	if len(s.Passes) > 0 {
		c.Passes = append([]string(nil), s.Passes...)
	}
	if len(s.Trees) > 0 {
		c.Trees = make([]terrain.TreeSpec, len(s.Trees))
		for i, t := range s.Trees {
			c.Trees[i] = terrain.TreeSpec{
				Base:        t.Base,
				Height:      t.Height,
				Thickness:   t.Thickness,
				TrunkHeight: t.TrunkHeight,
				Options: terrain.TreeOptions{
					Sharpness:    t.Sharpness,
					Ratio:        t.Ratio,
					BranchStride: t.BranchStride,
				},
			}
		}
	}
	return c, c.Validate()
}
