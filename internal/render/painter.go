//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter keeps one RGBA image in sync with a sim's display codes.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette []color.RGBA
}

// NewGridPainter allocates a painter for a w×h grid using the fire palette.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{
		w:       w,
		h:       h,
		img:     ebiten.NewImage(w, h),
		buf:     make([]byte, 4*w*h),
		palette: Palette(),
	}
}

// Blit uploads codes into the painter image and draws it scaled onto dst.
// Frames of the wrong size are dropped.
func (gp *GridPainter) Blit(dst *ebiten.Image, codes []uint8, scale int) {
	if len(codes) != gp.w*gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, codes, gp.palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
