// Package render turns grids into pixels: display codes, palettes, PNG
// export and the ebiten painter.
package render

import (
	"image/color"

	"forest-ca/internal/core"
)

// Display codes above the material range mark fire states. Codes 0..4 are the
// material codes themselves.
const (
	CodeBurning uint8 = uint8(core.MaterialCount) + iota
	CodeBurned

	// CodeCount is the number of display codes.
	CodeCount = int(core.MaterialCount) + 2
)

// Swatch names one palette entry.
type Swatch struct {
	Code  uint8
	Name  string
	Hex   string
	Color color.RGBA
}

var swatches = [CodeCount]Swatch{
	{Code: uint8(core.MaterialAir), Name: "air", Hex: "#87CEEB", Color: color.RGBA{0x87, 0xCE, 0xEB, 0xFF}},
	{Code: uint8(core.MaterialSoil), Name: "soil", Hex: "#000000", Color: color.RGBA{0x00, 0x00, 0x00, 0xFF}},
	{Code: uint8(core.MaterialWood), Name: "wood", Hex: "#A52A2A", Color: color.RGBA{0xA5, 0x2A, 0x2A, 0xFF}},
	{Code: uint8(core.MaterialLeaf), Name: "leaf", Hex: "#008000", Color: color.RGBA{0x00, 0x80, 0x00, 0xFF}},
	{Code: uint8(core.MaterialDryLeaf), Name: "dry_leaf", Hex: "#FFFF00", Color: color.RGBA{0xFF, 0xFF, 0x00, 0xFF}},
	{Code: CodeBurning, Name: "burning", Hex: "#FFA500", Color: color.RGBA{0xFF, 0xA5, 0x00, 0xFF}},
	{Code: CodeBurned, Name: "burned", Hex: "#696969", Color: color.RGBA{0x69, 0x69, 0x69, 0xFF}},
}

// Legend returns every swatch in display-code order.
func Legend() []Swatch {
	out := make([]Swatch, len(swatches))
	copy(out, swatches[:])
	return out
}

// Palette returns the colours indexed by display code.
func Palette() []color.RGBA {
	out := make([]color.RGBA, len(swatches))
	for i, s := range swatches {
		out[i] = s.Color
	}
	return out
}

// DisplayCode maps a cell to its display code. Fire states take precedence
// over the material.
func DisplayCode(c core.Cell) uint8 {
	switch c.State {
	case core.StateBurning:
		return CodeBurning
	case core.StateBurned:
		return CodeBurned
	}
	return uint8(c.Material)
}
