package snowflake

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/image/vector"

	"forest-ca/internal/errx"
)

var (
	background = color.RGBA{0x0B, 0x1D, 0x3A, 0xFF}
	ice        = color.RGBA{0xE8, 0xF4, 0xFF, 0xFF}
)

// Bounds returns the smallest radius around the origin that contains p.
func (p Polygon) Bounds() float64 {
	r := 0.0
	for _, v := range p {
		r = math.Max(r, v.Len())
	}
	return r
}

// Rasterize fills p into a size×size image, scaled to fit with a small
// margin and with y pointing up.
func Rasterize(p Polygon, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	if len(p) < 3 {
		return img
	}
	half := float64(size) / 2
	scale := 0.95 * half / math.Max(p.Bounds(), 1e-9)
	project := func(v Vec) (float32, float32) {
		return float32(half + v.X*scale), float32(half - v.Y*scale)
	}

	z := vector.NewRasterizer(size, size)
	z.MoveTo(project(p[0]))
	for _, v := range p[1:] {
		z.LineTo(project(v))
	}
	z.ClosePath()
	z.Draw(img, img.Bounds(), image.NewUniform(ice), image.Point{})
	return img
}

// SavePNG rasterizes p to path.
func SavePNG(p Polygon, path string, size int) error {
	if size <= 0 {
		return errx.ErrInvalidConfig.Withf("image size must be positive").With("size", size)
	}
	if err := imgio.Save(path, Rasterize(p, size), imgio.PNGEncoder()); err != nil {
		return errx.ErrIO.Withf("write png %s", path).WithCause(err)
	}
	return nil
}
