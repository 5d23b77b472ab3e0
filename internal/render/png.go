package render

import (
	"image"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"

	"forest-ca/internal/core"
	"forest-ca/internal/errx"
)

// Scaled renders g with each cell drawn as a scale×scale block.
func Scaled(g *core.Grid, scale int) image.Image {
	img := Image(g)
	if scale <= 1 {
		return img
	}
	return transform.Resize(img, g.W*scale, g.H*scale, transform.NearestNeighbor)
}

// SavePNG writes g to path as a PNG image.
func SavePNG(g *core.Grid, path string, scale int) error {
	if err := imgio.Save(path, Scaled(g, scale), imgio.PNGEncoder()); err != nil {
		return errx.ErrIO.Withf("write png %s", path).WithCause(err)
	}
	return nil
}
