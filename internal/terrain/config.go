package terrain

import (
	"errors"
	"strconv"
	"strings"

	"forest-ca/internal/errx"
)

// TreeSpec places one tree in a scene.
type TreeSpec struct {
	Base        Point
	Height      int
	Thickness   int
	TrunkHeight int
	Options     TreeOptions
}

// Config describes a whole scene: grid size, shape parameters and the order
// in which passes stamp them.
type Config struct {
	Width  int
	Height int

	SlopeDegrees  float64
	LeafThickness int
	Trees         []TreeSpec

	// Passes lists pass names in execution order; later passes win where
	// regions overlap.
	Passes []string
}

// DefaultConfig returns the reference scene: a 30° hillside with one tree,
// leaf litter stamped last.
func DefaultConfig() Config {
	return Config{
		Width:         150,
		Height:        100,
		SlopeDegrees:  30,
		LeafThickness: 3,
		Trees: []TreeSpec{{
			Base:        Point{X: 40, Y: 25},
			Height:      50,
			Thickness:   2,
			TrunkHeight: 10,
			Options:     DefaultTreeOptions(),
		}},
		Passes: []string{PassSlope, PassTree, PassFallenLeaf},
	}
}

// Clone returns a copy that shares no slices with c.
func (c Config) Clone() Config {
	out := c
	out.Trees = append([]TreeSpec(nil), c.Trees...)
	out.Passes = append([]string(nil), c.Passes...)
	return out
}

// Validate checks the parts of the config that generators cannot recover from.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errx.ErrInvalidConfig.Withf("scene dimensions must be positive").
			With("width", c.Width).With("height", c.Height)
	}
	if c.LeafThickness < 0 {
		return errx.ErrInvalidConfig.Withf("leaf thickness must not be negative").With("leaf_thickness", c.LeafThickness)
	}
	for i, t := range c.Trees {
		if t.Height <= 0 {
			return errx.ErrInvalidConfig.Withf("tree height must be positive").With("tree", i).With("height", t.Height)
		}
	}
	for _, name := range c.Passes {
		if _, ok := passes[name]; !ok {
			return errx.ErrInvalidConfig.Withf("unknown pass %q", name).With("known", PassNames())
		}
	}
	return nil
}

// FromMap builds a Config from flag-style key/value pairs, starting from
// DefaultConfig. See Override for the keys.
func FromMap(cfg map[string]string) (Config, error) {
	return DefaultConfig().Override(cfg)
}

// Override applies flag-style key/value pairs on top of c. A "preset" key
// replaces c with that preset before the other keys apply. Tree keys address
// the first tree, creating one if needed.
func (c Config) Override(cfg map[string]string) (Config, error) {
	c = c.Clone()
	if name, ok := cfg["preset"]; ok && name != "" {
		p, found := Preset(name)
		if !found {
			return Config{}, errx.ErrInvalidConfig.Withf("unknown preset %q", name).With("known", PresetNames())
		}
		c = p
	}

	p := mapParser{src: cfg}
	p.intVal("w", &c.Width)
	p.intVal("h", &c.Height)
	p.floatVal("slope_deg", &c.SlopeDegrees)
	p.intVal("leaf_thickness", &c.LeafThickness)
	if v, ok := cfg["passes"]; ok {
		c.Passes = splitList(v)
	}

	if p.hasAny("tree_x", "tree_y", "tree_height", "tree_thickness", "trunk_height", "sharpness", "ratio", "branch_stride") {
		if len(c.Trees) == 0 {
			c.Trees = []TreeSpec{DefaultConfig().Trees[0]}
		}
		t := &c.Trees[0]
		p.intVal("tree_x", &t.Base.X)
		p.intVal("tree_y", &t.Base.Y)
		p.intVal("tree_height", &t.Height)
		p.intVal("tree_thickness", &t.Thickness)
		p.intVal("trunk_height", &t.TrunkHeight)
		p.floatVal("sharpness", &t.Options.Sharpness)
		p.floatVal("ratio", &t.Options.Ratio)
		p.intVal("branch_stride", &t.Options.BranchStride)
	}
	if p.err != nil {
		return Config{}, p.err
	}
	return c, c.Validate()
}

type mapParser struct {
	src map[string]string
	err error
}

func (p *mapParser) hasAny(keys ...string) bool {
	for _, k := range keys {
		if _, ok := p.src[k]; ok {
			return true
		}
	}
	return false
}

func (p *mapParser) intVal(key string, dst *int) {
	v, ok := p.src[key]
	if !ok || p.err != nil {
		return
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		p.err = errx.ErrInvalidConfig.Withf("parameter %q is not an integer", key).With("value", v).WithCause(err)
		return
	}
	*dst = parsed
}

func (p *mapParser) floatVal(key string, dst *float64) {
	v, ok := p.src[key]
	if !ok || p.err != nil {
		return
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		p.err = errx.ErrInvalidConfig.Withf("parameter %q is not a number", key).With("value", v).WithCause(err)
		return
	}
	*dst = parsed
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParsePoint parses "x:y" (a comma is accepted in place of the colon).
func ParsePoint(s string) (Point, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, ":,")
	if sep < 0 {
		return Point{}, errx.ErrInvalidConfig.Withf("point %q is not x:y", s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(s[:sep]))
	y, errY := strconv.Atoi(strings.TrimSpace(s[sep+1:]))
	if err := errors.Join(errX, errY); err != nil {
		return Point{}, errx.ErrInvalidConfig.Withf("point %q is not x:y", s).WithCause(err)
	}
	return Point{X: x, Y: y}, nil
}

// ParsePoints parses a list of points separated by semicolons or spaces.
func ParsePoints(s string) ([]Point, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ' ' })
	out := make([]Point, 0, len(fields))
	for _, f := range fields {
		p, err := ParsePoint(f)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (p Point) String() string { return strconv.Itoa(p.X) + ":" + strconv.Itoa(p.Y) }
