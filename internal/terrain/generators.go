package terrain

import (
	"math"

	"forest-ca/internal/core"
	"forest-ca/internal/errx"
)

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// TreeOptions holds the empirically tuned shape constants of Tree. Zero
// fields fall back to the defaults.
type TreeOptions struct {
	// Sharpness is the half-angle (radians) of the leaf cone and branch fan.
	Sharpness float64
	// Ratio scales height to get the top of the leaf cone.
	Ratio float64
	// BranchStride is the row distance between branches.
	BranchStride int
}

const (
	DefaultSharpness    = math.Pi / 12
	DefaultRatio        = 1.2
	DefaultBranchStride = 3
)

// DefaultTreeOptions returns the reference tree shape constants.
func DefaultTreeOptions() TreeOptions {
	return TreeOptions{Sharpness: DefaultSharpness, Ratio: DefaultRatio, BranchStride: DefaultBranchStride}
}

func (o TreeOptions) withDefaults() TreeOptions {
	if o.Sharpness == 0 {
		o.Sharpness = DefaultSharpness
	}
	if o.Ratio == 0 {
		o.Ratio = DefaultRatio
	}
	if o.BranchStride <= 0 {
		o.BranchStride = DefaultBranchStride
	}
	return o
}

var (
	soilCell    = core.Cell{State: core.StateNormal, Material: core.MaterialSoil}
	dryLeafCell = core.Cell{State: core.StateNormal, Material: core.MaterialDryLeaf}
	woodCell    = core.Cell{State: core.StateNormal, Material: core.MaterialWood}
	leafCell    = core.Cell{State: core.StateNormal, Material: core.MaterialLeaf, Time: core.LeafReadyTime}
)

// Slope fills every column x with soil up to the ramp line ⌊tan(degrees)·x⌋,
// clipped to the grid height. Cells above the line are left untouched.
func Slope(g *core.Grid, degrees float64) error {
	a := slopeFactor(degrees)
	for x := 0; x < g.W; x++ {
		top := rampRow(a, x, g.H)
		for y := 0; y < top; y++ {
			if err := g.Set(x, y, soilCell); err != nil {
				return err
			}
		}
	}
	return nil
}

// FallenLeaf lays thickness rows of dry leaves starting on the ramp line of
// the same angle. Run it after Slope; the reverse order buries the leaves.
func FallenLeaf(g *core.Grid, degrees float64, thickness int) error {
	a := slopeFactor(degrees)
	for x := 0; x < g.W; x++ {
		y := rampRow(a, x, g.H)
		end := min(y+thickness, g.H)
		for row := y; row < end; row++ {
			if err := g.Set(x, row, dryLeafCell); err != nil {
				return err
			}
		}
	}
	return nil
}

// Tree stamps a tree rooted at base in three passes: a leaf cone, a tapering
// trunk over it, then branches every opts.BranchStride rows that poke through
// the foliage. Rows are checked before they are written, so a bounds error
// never leaves a half-written row.
func Tree(g *core.Grid, base Point, height, thickness, trunkHeight int, opts TreeOptions) error {
	if height <= 0 {
		return errx.ErrInvalidConfig.Withf("tree height must be positive").With("height", height)
	}
	opts = opts.withDefaults()
	tanS := math.Tan(opts.Sharpness)

	crown := int(math.Floor(float64(height) * opts.Ratio))
	for y := trunkHeight; y < crown; y++ {
		hw := int(math.Floor(tanS * float64(crown-y)))
		if err := fillSpan(g, base.Y+y, base.X-hw, base.X+hw, leafCell); err != nil {
			return err
		}
	}

	for rel := 0; rel <= height; rel++ {
		hw := trunkHalfWidth(thickness, height, rel)
		if err := fillSpan(g, base.Y+rel, base.X-hw, base.X+hw, woodCell); err != nil {
			return err
		}
	}

	for y := trunkHeight + 2; y < height; y += opts.BranchStride {
		hw := int(math.Floor(tanS * float64(height-y)))
		if err := fillSpan(g, base.Y+y, base.X-hw, base.X+hw, woodCell); err != nil {
			return err
		}
	}
	return nil
}

// trunkHalfWidth is ⌊thickness/height·(height−rel)⌋+1.
func trunkHalfWidth(thickness, height, rel int) int {
	return int(math.Floor(float64(thickness)*float64(height-rel)/float64(height))) + 1
}

func slopeFactor(degrees float64) float64 {
	return math.Tan(math.Pi * degrees / 180)
}

// rampRow returns the ramp height at column x truncated toward zero and
// capped at limit.
func rampRow(a float64, x, limit int) int {
	v := math.Trunc(a * float64(x))
	if math.IsNaN(v) {
		return 0
	}
	if v >= float64(limit) {
		return limit
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int(v)
}

// fillSpan writes c to columns [x0, x1] of row y. An inverted span is empty.
func fillSpan(g *core.Grid, y, x0, x1 int, c core.Cell) error {
	if x1 < x0 {
		return nil
	}
	if !g.InBounds(x0, y) || !g.InBounds(x1, y) {
		return errx.ErrBounds.With("row", y).With("from", x0).With("to", x1).
			With("width", g.W).With("height", g.H)
	}
	row := g.Cells()[g.Index(x0, y) : g.Index(x1, y)+1]
	for i := range row {
		row[i] = c
	}
	return nil
}
