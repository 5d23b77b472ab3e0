//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"forest-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// HUD renders the combustion controls to the right of the simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	title      string

	controls []controlState
	setter   core.FloatParameterSetter
	offsetX  int

	pixel *ebiten.Image
}

type controlState struct {
	control  core.ParameterControl
	value    float64
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	controlsTop    = panelPadding + headerBaseline + 14
)

var (
	panelColor  = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor   = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	buttonColor = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	idleColor   = color.RGBA{R: 32, G: 34, B: 40, A: 255}
)

// NewHUD builds a panel of the given width. Sims without adjustable
// parameters get a panel that only shows the title.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), title: sim.Name() + " controls"}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if p, ok := sim.(core.ParameterControlsProvider); ok {
		for i, ctrl := range p.ParameterControls() {
			top := controlsTop + i*lineHeight
			y := top + (lineHeight-buttonSize)/2
			plus := image.Rect(h.width-panelPadding-buttonSize, y, h.width-panelPadding, y+buttonSize)
			minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
			h.controls = append(h.controls, controlState{control: ctrl, top: top, minusRect: minus, plusRect: plus})
		}
	}
	h.setter, _ = sim.(core.FloatParameterSetter)
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes control values from the sim and applies button clicks.
func (h *HUD) Update(offsetX int) {
	if h == nil || h.width == 0 {
		return
	}
	h.offsetX = offsetX
	if p, ok := h.sim.(parameterProvider); ok {
		snap := p.Parameters()
		for i := range h.controls {
			c := &h.controls[i]
			c.hasValue = false
			if param, ok := snap.Lookup(c.control.Key); ok {
				if v, err := strconv.ParseFloat(param.Value, 64); err == nil {
					c.value, c.hasValue = v, true
				}
			}
		}
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	pt := image.Pt(mx-h.offsetX, my)
	for i := range h.controls {
		c := &h.controls[i]
		switch {
		case pt.In(c.minusRect):
			h.adjust(c, -1)
			return
		case pt.In(c.plusRect):
			h.adjust(c, 1)
			return
		}
	}
}

func (h *HUD) adjust(c *controlState, dir float64) {
	target, ok := h.target(c, dir)
	if !ok {
		return
	}
	if h.setter.SetFloatParameter(c.control.Key, target) {
		c.value = target
	}
}

// target is the value one step in dir, clamped to the control's range.
func (h *HUD) target(c *controlState, dir float64) (float64, bool) {
	if h.setter == nil || !c.hasValue {
		return 0, false
	}
	t := c.value + dir*c.control.Step
	if c.control.Max > c.control.Min {
		t = math.Max(c.control.Min, math.Min(c.control.Max, t))
	}
	return t, math.Abs(t-c.value) > 1e-9
}

// Draw paints the panel at offsetX, as tall as the scaled sim view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, scale int) {
	if h == nil || h.width == 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, controlsTop+labelBaseline, mutedColor)
	}
	for i := range h.controls {
		c := &h.controls[i]
		y := c.top + labelBaseline
		text.Draw(h.panel, c.control.Label, face, panelPadding, y, textColor)

		value, col := "--", mutedColor
		if c.hasValue {
			value, col = formatValue(c.control.Step, c.value), textColor
		}
		w := text.BoundString(face, value).Dx()
		text.Draw(h.panel, value, face, c.minusRect.Min.X-buttonGap-w, y, col)

		_, canDown := h.target(c, -1)
		_, canUp := h.target(c, 1)
		h.drawButton(c.minusRect, "-", canDown)
		h.drawButton(c.plusRect, "+", canUp)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(r image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, textColor
	if !enabled {
		bg, fg = idleColor, mutedColor
	}
	fillRect(h.panel, h.pixel, r, bg)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := r.Min.X + (r.Dx()-b.Dx())/2
	y := r.Min.Y + (r.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

// fillRect stretches a white pixel over r, tinted to col.
func fillRect(dst, pixel *ebiten.Image, r image.Rectangle, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.ScaleWithColor(col)
	dst.DrawImage(pixel, op)
}

func formatValue(step, v float64) string {
	prec := 0
	switch {
	case step <= 0:
		prec = 2
	case step < 0.01:
		prec = 3
	case step < 1:
		prec = 2
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
