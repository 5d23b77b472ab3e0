//go:build ebiten

package app

import (
	"time"

	"forest-ca/internal/core"
	"forest-ca/internal/render"
	"forest-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const maxRate = 240

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	timer   *core.FixedStep
	updates chan func(core.Sim)

	scale    int
	rate     int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for sim. rate is in simulation steps per second and
// hudWidth may be 0 to hide the parameter panel.
func New(sim core.Sim, scale, rate, hudWidth int, seed int64) *Game {
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(sim, hudWidth),
		overlay: ui.NewOverlay(sim),
		timer:   core.NewFixedStep(rate),
		updates: make(chan func(core.Sim), 16),
		scale:   max(scale, 1),
		rate:    rate,
		seed:    seed,
	}
}

// Apply queues fn to run against the sim on the game loop. It is safe to
// call from other goroutines; when the queue is full fn is dropped and
// Apply reports false.
func (g *Game) Apply(fn func(core.Sim)) bool {
	select {
	case g.updates <- fn:
		return true
	default:
		return false
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeftBracket) {
		g.setRate(g.rate / 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRightBracket) {
		g.setRate(g.rate * 2)
	}

	for drained := false; !drained; {
		select {
		case fn := <-g.updates:
			fn(g.sim)
		default:
			drained = true
		}
	}

	g.hud.Update(g.viewWidth())
	status := ""
	if g.paused {
		status = "paused"
	}
	g.overlay.Update(status)

	if g.tickOnce || (!g.paused && g.timer.ShouldStep()) {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) setRate(rate int) {
	g.rate = min(max(rate, 1), maxRate)
	g.timer.SetRate(g.rate)
}

func (g *Game) viewWidth() int { return g.sim.Size().W * g.scale }

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

// Layout returns the logical screen size: the scaled grid plus the HUD.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
