package app

import (
	"flag"
	"strings"

	"forest-ca/internal/errx"
)

// Config holds the viewer's command-line parameters.
type Config struct {
	Sim    string
	Scale  int
	TPS    int
	Rate   int
	Seed   int64
	HUD    int
	File   string
	Params string
}

// NewConfig returns the viewer defaults.
func NewConfig() *Config {
	return &Config{Sim: "fire", Scale: 3, TPS: 60, Rate: 10, Seed: 42, HUD: 260}
}

// Bind attaches the configuration to fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.IntVar(&c.Rate, "rate", c.Rate, "simulation steps per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.HUD, "hud", c.HUD, "width of the parameter panel in pixels (0 hides it)")
	fs.StringVar(&c.File, "config", c.File, "optional YAML/TOML/JSON config file, reloaded on change")
	fs.StringVar(&c.Params, "params", c.Params, "comma-separated key=value simulation parameters")
}

// ParamMap splits Params into the key/value form sim factories accept.
func (c *Config) ParamMap() (map[string]string, error) {
	return ParseParams(c.Params)
}

// ParseParams parses "k=v,k=v". Values may not contain commas; use ';' to
// separate list items such as ignition points.
func ParseParams(s string) (map[string]string, error) {
	out := map[string]string{}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, errx.ErrInvalidConfig.Withf("parameter %q is not key=value", pair)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}
