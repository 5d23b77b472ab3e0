package terrain

import (
	"sort"

	"forest-ca/internal/core"
	"forest-ca/internal/errx"
)

// Pass names accepted in Config.Passes.
const (
	PassSlope      = "slope"
	PassTree       = "tree"
	PassFallenLeaf = "fallen_leaf"
)

// Pass is one ordered stamping step of scene generation.
type Pass interface {
	Name() string
	Run(g *core.Grid, c Config) error
}

type passFunc struct {
	name string
	run  func(g *core.Grid, c Config) error
}

func (p passFunc) Name() string                      { return p.name }
func (p passFunc) Run(g *core.Grid, c Config) error { return p.run(g, c) }

var passes = map[string]Pass{
	PassSlope: passFunc{PassSlope, func(g *core.Grid, c Config) error {
		return Slope(g, c.SlopeDegrees)
	}},
	PassFallenLeaf: passFunc{PassFallenLeaf, func(g *core.Grid, c Config) error {
		return FallenLeaf(g, c.SlopeDegrees, c.LeafThickness)
	}},
	PassTree: passFunc{PassTree, func(g *core.Grid, c Config) error {
		for _, t := range c.Trees {
			if err := Tree(g, t.Base, t.Height, t.Thickness, t.TrunkHeight, t.Options); err != nil {
				return err
			}
		}
		return nil
	}},
}

// PassNames lists the known pass names in sorted order.
func PassNames() []string {
	names := make([]string, 0, len(passes))
	for name := range passes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build allocates a fresh all-air grid and runs the configured passes on it.
func Build(c Config) (*core.Grid, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	g, err := core.NewGrid(c.Width, c.Height)
	if err != nil {
		return nil, err
	}
	if err := Apply(g, c); err != nil {
		return nil, err
	}
	return g, nil
}

// Apply runs the configured passes, in order, on an existing grid.
func Apply(g *core.Grid, c Config) error {
	for _, name := range c.Passes {
		p, ok := passes[name]
		if !ok {
			return errx.ErrInvalidConfig.Withf("unknown pass %q", name).With("known", PassNames())
		}
		if err := p.Run(g, c); err != nil {
			return err
		}
	}
	return nil
}
