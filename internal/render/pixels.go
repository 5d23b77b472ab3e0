package render

import (
	"image"
	"image/color"

	"forest-ca/internal/core"
)

// DisplayCodes writes one display code per cell into dst, top row first, so
// the ground row (y = 0) ends up at the bottom of the image. dst is reused
// when it has the right length.
func DisplayCodes(g *core.Grid, dst []uint8) []uint8 {
	n := g.W * g.H
	if len(dst) != n {
		dst = make([]uint8, n)
	}
	cells := g.Cells()
	for row := 0; row < g.H; row++ {
		y := g.H - 1 - row
		src := cells[g.Index(0, y) : g.Index(0, y)+g.W]
		out := dst[row*g.W : (row+1)*g.W]
		for x, c := range src {
			out[x] = DisplayCode(c)
		}
	}
	return dst
}

// Image renders g at one pixel per cell.
func Image(g *core.Grid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	fillPaletteRGBA(img.Pix, DisplayCodes(g, nil), Palette())
	return img
}

// fillPaletteRGBA converts display codes into RGBA pixels in buf. Codes past
// the end of the palette use its last entry; an empty palette clears buf to
// transparent black.
func fillPaletteRGBA(buf []byte, codes []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(codes)])
		return
	}
	last := len(palette) - 1
	for i, c := range codes {
		col := palette[min(int(c), last)]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
