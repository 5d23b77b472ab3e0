// Package fire is the combustion automaton: neighbours radiate energy by
// state, cells ignite once they have absorbed enough, and burning cells run
// a timer until they are burned.
package fire

import (
	"go.uber.org/zap"

	"forest-ca/internal/codec"
	"forest-ca/internal/core"
	"forest-ca/internal/errx"
	"forest-ca/internal/render"
	"forest-ca/internal/terrain"
)

// Stats counts flammable cells by state.
type Stats struct {
	Step    int
	Normal  int
	Burning int
	Burned  int
}

// World runs the combustion rules over a grid it owns.
type World struct {
	cfg   Config
	props core.PropertyTable

	pristine *core.Grid
	grid     *core.Grid
	out      []float32
	display  []uint8

	step int
	rng  *core.RNG
	log  *zap.Logger
}

// New wraps an existing grid. The grid is copied; Reset returns to it.
func New(g *core.Grid, cfg Config) (*World, error) {
	for _, p := range cfg.Ignite {
		if !g.InBounds(p.X, p.Y) {
			return nil, errx.ErrBounds.Withf("ignition point outside the grid").
				With("x", p.X).With("y", p.Y).With("width", g.W).With("height", g.H)
		}
	}
	cfg.Scene.Width, cfg.Scene.Height = g.W, g.H
	w := &World{
		cfg:      cfg,
		props:    cfg.Properties,
		pristine: g.Clone(),
		out:      make([]float32, g.W*g.H),
		display:  make([]uint8, g.W*g.H),
		rng:      core.NewRNG(cfg.Seed),
		log:      zap.NewNop(),
	}
	w.Reset(0)
	return w, nil
}

// NewWithConfig loads cfg.Input, or builds cfg.Scene when no input is set.
func NewWithConfig(cfg Config) (*World, error) {
	g, err := LoadScene(cfg)
	if err != nil {
		return nil, err
	}
	return New(g, cfg)
}

// LoadScene returns the unburned grid a run of cfg starts from.
func LoadScene(cfg Config) (*core.Grid, error) {
	if cfg.Input != "" {
		g, _, err := codec.LoadAuto(cfg.Input, cfg.Scene.Width, cfg.Scene.Height)
		return g, err
	}
	return terrain.Build(cfg.Scene)
}

// SetLogger routes step logging to l.
func (w *World) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	w.log = l
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "fire" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return w.grid.Size() }

// Cells returns display codes, top row first.
func (w *World) Cells() []uint8 { return w.display }

// Grid exposes the live grid. Callers must not keep it across Reset.
func (w *World) Grid() *core.Grid { return w.grid }

// StepCount is the number of steps since the last reset.
func (w *World) StepCount() int { return w.step }

// Properties returns the material table in use.
func (w *World) Properties() core.PropertyTable { return w.props }

// Reset restores the initial grid and sets the ignition cells burning. A
// zero seed reuses the configured one.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.rng = core.NewRNG(seed)
	w.grid = w.pristine.Clone()
	w.step = 0

	if len(w.cfg.Ignite) > 0 {
		for _, p := range w.cfg.Ignite {
			_ = w.Ignite(p.X, p.Y)
		}
	} else {
		cells := w.grid.Cells()
		for i := 0; i < w.cfg.IgniteRandom; i++ {
			idx := w.rng.Pick(len(cells), func(i int) bool {
				return cells[i].Material.Flammable() && cells[i].State == core.StateNormal
			})
			if idx < 0 {
				break
			}
			cells[idx].State = core.StateBurning
		}
	}
	w.rebuildDisplay()
}

// Ignite sets the cell at (x, y) burning. Non-flammable cells are left alone.
func (w *World) Ignite(x, y int) error {
	c, err := w.grid.Get(x, y)
	if err != nil {
		return err
	}
	if !c.Material.Flammable() || c.State != core.StateNormal {
		return nil
	}
	c.State = core.StateBurning
	return w.grid.Set(x, y, c)
}

// Step advances one generation: energy first, then ignition and burn-out.
func (w *World) Step() {
	w.accumulateEnergy()
	w.ignite()
	w.step++
	w.rebuildDisplay()
	if ce := w.log.Check(zap.DebugLevel, "fire step"); ce != nil {
		s := w.Stats()
		ce.Write(zap.Int("step", s.Step), zap.Int("burning", s.Burning), zap.Int("burned", s.Burned))
	}
}

// Active reports whether any cell is still burning.
func (w *World) Active() bool {
	for _, c := range w.grid.Cells() {
		if c.State == core.StateBurning {
			return true
		}
	}
	return false
}

// Stats counts flammable cells by state.
func (w *World) Stats() Stats {
	s := Stats{Step: w.step}
	for _, c := range w.grid.Cells() {
		if !c.Material.Flammable() {
			continue
		}
		switch c.State {
		case core.StateNormal:
			s.Normal++
		case core.StateBurning:
			s.Burning++
		case core.StateBurned:
			s.Burned++
		}
	}
	return s
}

// accumulateEnergy adds to every cell the output of its eight neighbours,
// all read from the grid as it was before this step.
func (w *World) accumulateEnergy() {
	g := w.grid
	cells := g.Cells()
	for i, c := range cells {
		w.out[i] = w.props[c.Material].EnergyOut[c.State]
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			var sum float32
			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= g.H {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					nx := x + dx
					if nx < 0 || nx >= g.W || (dx == 0 && dy == 0) {
						continue
					}
					sum += w.out[g.Index(nx, ny)]
				}
			}
			cells[g.Index(x, y)].Energy += sum
		}
	}
}

// ignite updates states in place, x outer and y inner, so a cell that
// ignites is already a burning neighbour for cells visited after it.
func (w *World) ignite() {
	g := w.grid
	cells := g.Cells()
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			c := &cells[g.Index(x, y)]
			if c.Material == core.MaterialAir || c.Material == core.MaterialSoil {
				continue
			}
			p := w.props[c.Material]
			switch c.State {
			case core.StateBurning:
				c.Time++
				if c.Time >= p.BurnTime {
					c.State = core.StateBurned
				}
			case core.StateNormal:
				threshold := p.IgniteAlone
				if w.hasBurningNeighbor(x, y) {
					threshold = p.IgniteNear
				}
				if c.Energy >= threshold {
					c.State = core.StateBurning
				}
			}
		}
	}
}

func (w *World) hasBurningNeighbor(x, y int) bool {
	g := w.grid
	cells := g.Cells()
	for dx := -1; dx <= 1; dx++ {
		nx := x + dx
		if nx < 0 || nx >= g.W {
			continue
		}
		for dy := -1; dy <= 1; dy++ {
			ny := y + dy
			if ny < 0 || ny >= g.H || (dx == 0 && dy == 0) {
				continue
			}
			if cells[g.Index(nx, ny)].State == core.StateBurning {
				return true
			}
		}
	}
	return false
}

func (w *World) rebuildDisplay() {
	w.display = render.DisplayCodes(w.grid, w.display)
}

func init() {
	core.Register("fire", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return NewWithConfig(c)
	})
}
