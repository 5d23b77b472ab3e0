package config

import (
	"forest-ca/internal/codec"
	"forest-ca/internal/core"
	"forest-ca/internal/sims/fire"
)

// FireRun resolves the scene and fire sections into a fire.Config.
func (c Config) FireRun() (fire.Config, error) {
	scene, err := c.Scene.TerrainConfig()
	if err != nil {
		return fire.Config{}, err
	}
	fc := fire.DefaultConfig()
	fc.Scene = scene
	fc.Seed = c.Fire.Seed
	fc.Ignite = append(fc.Ignite[:0:0], c.Fire.Ignite...)
	fc.IgniteRandom = c.Fire.IgniteRandom
	c.Fire.Apply(func(key string, v float64) bool { return fire.SetConstant(&fc.Properties, key, v) })
	return fc, nil
}

// Constants returns the material constants the section sets, keyed like
// fire.ConstantKeys. Zero means unset.
func (f FireConfig) Constants() map[string]float64 {
	out := map[string]float64{}
	for key, v := range map[string]float64{
		"wood_burn_time": f.WoodBurnTime,
		"ignite_near":    f.IgniteNear,
		"ignite_alone":   f.IgniteAlone,
	} {
		if v > 0 {
			out[key] = v
		}
	}
	return out
}

// Apply passes every set constant to set.
func (f FireConfig) Apply(set func(key string, value float64) bool) {
	for key, v := range f.Constants() {
		set(key, v)
	}
}

// ApplyTo pushes the set constants into a running sim that accepts them.
func (f FireConfig) ApplyTo(sim core.Sim) {
	if s, ok := sim.(core.FloatParameterSetter); ok {
		f.Apply(s.SetFloatParameter)
	}
}

// Sequence describes the snapshot files of a w×h run.
func (o OutputConfig) Sequence(w, h int) codec.Sequence {
	format := codec.FormatLegacy
	if o.Header {
		format = codec.FormatV1
	}
	return codec.Sequence{Dir: o.Dir, Pattern: o.Pattern, Width: w, Height: h, Format: format}
}
