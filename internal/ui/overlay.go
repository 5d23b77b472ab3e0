//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"forest-ca/internal/core"
	"forest-ca/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	swatchSize = 10
	rowHeight  = 15
	boxPadding = 6
)

var (
	boxColor   = color.RGBA{R: 0, G: 0, B: 0, A: 160}
	helpLines  = []string{"space pause", "n step", "r reset", "s new seed", "[ ] speed", "l legend", "h help", "q quit"}
	labelColor = color.RGBA{R: 235, G: 235, B: 240, A: 255}
)

// Overlay draws the material legend, the run status and the key help over
// the simulation view.
type Overlay struct {
	sim        core.Sim
	pixel      *ebiten.Image
	legend     []render.Swatch
	showLegend bool
	showHelp   bool
	status     string
}

// NewOverlay builds an overlay with the legend shown and help hidden.
func NewOverlay(sim core.Sim) *Overlay {
	o := &Overlay{sim: sim, legend: render.Legend(), showLegend: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles panels and refreshes the status line. extra is appended to
// the status, e.g. the pause state.
func (o *Overlay) Update(extra string) {
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		o.showLegend = !o.showLegend
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHelp = !o.showHelp
	}
	o.status = extra
	if p, ok := o.sim.(parameterProvider); ok {
		if s := StatusLine(p.Parameters()); s != "" {
			o.status = s + "  " + extra
		}
	}
}

// Draw paints the enabled panels in the top-left corner.
func (o *Overlay) Draw(screen *ebiten.Image) {
	face := basicfont.Face7x13
	y := boxPadding
	if o.status != "" {
		w := text.BoundString(face, o.status).Dx()
		fillRect(screen, o.pixel, image.Rect(0, 0, w+2*boxPadding, rowHeight+boxPadding), boxColor)
		text.Draw(screen, o.status, face, boxPadding, y+rowHeight-4, labelColor)
		y += rowHeight + boxPadding
	}
	if o.showLegend {
		box := image.Rect(0, y, 110, y+len(o.legend)*rowHeight+boxPadding)
		fillRect(screen, o.pixel, box, boxColor)
		for i, s := range o.legend {
			top := y + boxPadding/2 + i*rowHeight
			fillRect(screen, o.pixel, image.Rect(boxPadding, top+2, boxPadding+swatchSize, top+2+swatchSize), s.Color)
			text.Draw(screen, s.Name, face, boxPadding+swatchSize+6, top+rowHeight-3, labelColor)
		}
		y = box.Max.Y + boxPadding
	}
	if o.showHelp {
		box := image.Rect(0, y, 110, y+len(helpLines)*rowHeight+boxPadding)
		fillRect(screen, o.pixel, box, boxColor)
		for i, line := range helpLines {
			text.Draw(screen, line, face, boxPadding, y+(i+1)*rowHeight-1, labelColor)
		}
	}
}
