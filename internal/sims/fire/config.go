package fire

import (
	"strconv"
	"strings"

	"forest-ca/internal/core"
	"forest-ca/internal/errx"
	"forest-ca/internal/terrain"
)

// Config controls a combustion run.
type Config struct {
	// Scene is generated when Input is empty.
	Scene terrain.Config
	// Input is a saved cell file to burn instead of a generated scene. Legacy
	// files are read with the Scene dimensions.
	Input string

	Seed int64
	// Ignite lists cells set burning on every reset. When empty,
	// IgniteRandom flammable cells are picked with the seeded RNG.
	Ignite       []terrain.Point
	IgniteRandom int

	Properties  core.PropertyTable
	Environment core.Environment
}

// DefaultConfig burns the reference hillside from one random cell.
func DefaultConfig() Config {
	return Config{
		Scene:        terrain.DefaultConfig(),
		Seed:         1,
		IgniteRandom: 1,
		Properties:   core.DefaultProperties,
		Environment:  core.DefaultEnvironment,
	}
}

// FromMap builds a Config from flag-style key/value pairs, starting from
// DefaultConfig. See Override for the keys.
func FromMap(cfg map[string]string) (Config, error) {
	return DefaultConfig().Override(cfg)
}

// Override applies flag-style key/value pairs on top of c. Scene keys are
// those of terrain.Config.Override; the fire keys are input, seed, ignite
// ("x:y;x:y"), ignite_random and the ConstantKeys.
func (c Config) Override(cfg map[string]string) (Config, error) {
	scene, err := c.Scene.Override(cfg)
	if err != nil {
		return Config{}, err
	}
	c.Scene = scene
	c.Ignite = append([]terrain.Point(nil), c.Ignite...)
	if v, ok := cfg["input"]; ok {
		c.Input = strings.TrimSpace(v)
	}
	if v, ok := cfg["seed"]; ok {
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return Config{}, badValue("seed", v, err)
		}
		c.Seed = parsed
	}
	if v, ok := cfg["ignite"]; ok {
		pts, err := terrain.ParsePoints(v)
		if err != nil {
			return Config{}, err
		}
		c.Ignite = pts
	}
	if v, ok := cfg["ignite_random"]; ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || parsed < 0 {
			return Config{}, badValue("ignite_random", v, err)
		}
		c.IgniteRandom = parsed
	}

	for _, key := range ConstantKeys {
		v, ok := cfg[key]
		if !ok {
			continue
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
		if err != nil || !SetConstant(&c.Properties, key, parsed) {
			return Config{}, badValue(key, v, err)
		}
	}
	return c, nil
}

// ConstantKeys names the material constants SetConstant accepts.
var ConstantKeys = []string{"wood_burn_time", "leaf_burn_time", "ignite_near", "ignite_alone", "energy_out"}

// SetConstant writes one named material constant into p. Leaf burn time
// covers both leaf kinds; the ignition thresholds and the burning output
// apply to every flammable material. Negative values and unknown keys are
// rejected.
func SetConstant(p *core.PropertyTable, key string, value float64) bool {
	if value < 0 {
		return false
	}
	v := float32(value)
	switch key {
	case "wood_burn_time":
		p[core.MaterialWood].BurnTime = v
	case "leaf_burn_time":
		p[core.MaterialLeaf].BurnTime = v
		p[core.MaterialDryLeaf].BurnTime = v
	case "ignite_near":
		setFlammable(p, func(m *core.MaterialProperties) { m.IgniteNear = v })
	case "ignite_alone":
		setFlammable(p, func(m *core.MaterialProperties) { m.IgniteAlone = v })
	case "energy_out":
		setFlammable(p, func(m *core.MaterialProperties) { m.EnergyOut[core.StateBurning] = v })
	default:
		return false
	}
	return true
}

// setFlammable applies fn to the properties of every flammable material.
func setFlammable(p *core.PropertyTable, fn func(*core.MaterialProperties)) {
	for m := core.Material(0); m < core.MaterialCount; m++ {
		if m.Flammable() {
			fn(&p[m])
		}
	}
}

func badValue(key, value string, cause error) error {
	e := errx.ErrInvalidConfig.Withf("parameter %q has an invalid value", key).With("value", value)
	if cause != nil {
		return e.WithCause(cause)
	}
	return e
}
