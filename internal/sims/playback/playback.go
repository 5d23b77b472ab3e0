// Package playback replays a directory of step snapshots as a simulation,
// one file per step.
package playback

import (
	"strconv"
	"strings"

	"forest-ca/internal/codec"
	"forest-ca/internal/core"
	"forest-ca/internal/errx"
	"forest-ca/internal/render"
)

// Config locates a snapshot sequence.
type Config struct {
	Dir     string
	Pattern string
	// Width and Height are required for legacy files; zero accepts the
	// header of versioned ones.
	Width  int
	Height int
	// Loop restarts at the first frame after the last.
	Loop bool
}

// DefaultConfig reads the reference run's output from the working directory.
func DefaultConfig() Config {
	return Config{Dir: ".", Pattern: codec.DefaultStepPattern, Width: 150, Height: 100}
}

// FromMap reads the keys dir, pattern, w, h and loop.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if v, ok := cfg["dir"]; ok {
		c.Dir = v
	}
	if v, ok := cfg["pattern"]; ok && v != "" {
		c.Pattern = v
	}
	for key, dst := range map[string]*int{"w": &c.Width, "h": &c.Height} {
		v, ok := cfg[key]
		if !ok {
			continue
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || parsed < 0 {
			return Config{}, errx.ErrInvalidConfig.Withf("parameter %q is not a size", key).With("value", v)
		}
		*dst = parsed
	}
	if v, ok := cfg["loop"]; ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, errx.ErrInvalidConfig.Withf("parameter \"loop\" is not a boolean").With("value", v).WithCause(err)
		}
		c.Loop = parsed
	}
	return c, nil
}

// Player steps through a snapshot sequence.
type Player struct {
	cfg     Config
	seq     codec.Sequence
	count   int
	frame   int
	grid    *core.Grid
	display []uint8
	err     error
}

// New opens the sequence and loads its first frame.
func New(cfg Config) (*Player, error) {
	seq := codec.Sequence{Dir: cfg.Dir, Pattern: cfg.Pattern, Width: cfg.Width, Height: cfg.Height}
	count, err := seq.Count()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errx.ErrIO.Withf("no snapshot files found").With("first", seq.Path(1))
	}
	first, err := seq.Frame(1)
	if err != nil {
		return nil, err
	}
	// Pin the size so every later frame must match the first.
	seq.Width, seq.Height = first.W, first.H
	p := &Player{cfg: cfg, seq: seq, count: count}
	p.show(1, first)
	return p, nil
}

// Name returns the simulation identifier.
func (p *Player) Name() string { return "playback" }

// Size reports the frame dimensions.
func (p *Player) Size() core.Size { return p.grid.Size() }

// Cells returns display codes of the current frame, top row first.
func (p *Player) Cells() []uint8 { return p.display }

// Grid exposes the current frame.
func (p *Player) Grid() *core.Grid { return p.grid }

// Frame is the 1-based number of the frame on show.
func (p *Player) Frame() int { return p.frame }

// Count is the number of frames found when the player was opened.
func (p *Player) Count() int { return p.count }

// Err reports the error of the last failed frame load, if any. The previous
// frame stays on show when a load fails.
func (p *Player) Err() error { return p.err }

// Done reports whether a non-looping player has shown its last frame.
func (p *Player) Done() bool { return !p.cfg.Loop && p.frame >= p.count }

// Reset rewinds to the first frame. The seed is ignored.
func (p *Player) Reset(int64) { p.Seek(1) }

// Step advances one frame.
func (p *Player) Step() {
	next := p.frame + 1
	if next > p.count {
		if !p.cfg.Loop {
			return
		}
		next = 1
	}
	p.Seek(next)
}

// Seek shows frame n, clamped to [1, Count].
func (p *Player) Seek(n int) {
	n = min(max(n, 1), p.count)
	g, err := p.seq.Frame(n)
	if err != nil {
		p.err = err
		return
	}
	p.err = nil
	p.show(n, g)
}

func (p *Player) show(n int, g *core.Grid) {
	p.frame = n
	p.grid = g
	p.display = render.DisplayCodes(g, p.display)
}

// Parameters reports the sequence location and position.
func (p *Player) Parameters() core.ParameterSnapshot {
	burning := p.grid.CountState(core.StateBurning)
	burned := p.grid.CountState(core.StateBurned)
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Sequence",
			Params: []core.Parameter{
				core.StringParam("dir", "Directory", p.seq.Dir),
				core.StringParam("pattern", "Pattern", p.seq.Pattern),
				core.IntParam("w", "Width", p.grid.W),
				core.IntParam("h", "Height", p.grid.H),
			},
		},
		{
			Name: "Frame",
			Params: []core.Parameter{
				core.IntParam("frame", "Frame", p.frame),
				core.IntParam("count", "Frames", p.count),
				core.IntParam("burning", "Burning", burning),
				core.IntParam("burned", "Burned", burned),
			},
		},
	}}
}

func init() {
	core.Register("playback", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return New(c)
	})
}
