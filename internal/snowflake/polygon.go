// Package snowflake grows a six-fold crystal outline by repeatedly pushing
// its sharp vertices outward and resampling the edges.
package snowflake

import (
	"math"

	"forest-ca/internal/errx"
)

// Vec is a point or direction in the plane.
type Vec struct {
	X, Y float64
}

func (a Vec) Add(b Vec) Vec { return Vec{a.X + b.X, a.Y + b.Y} }
func (a Vec) Sub(b Vec) Vec { return Vec{a.X - b.X, a.Y - b.Y} }
func (a Vec) Scale(k float64) Vec { return Vec{a.X * k, a.Y * k} }
func (a Vec) Dot(b Vec) float64 { return a.X*b.X + a.Y*b.Y }
func (a Vec) Len() float64 { return math.Sqrt(a.Dot(a)) }
func (a Vec) Neg() Vec { return Vec{-a.X, -a.Y} }
func (a Vec) Perp() Vec { return Vec{-a.Y, a.X} }
func (a Vec) Unit() Vec { return a.Scale(1 / a.Len()) }

// Polygon is a closed outline; the last vertex connects back to the first.
type Polygon []Vec

// countEps absorbs rounding when an edge length is an exact multiple of the
// sampling interval.
const countEps = 1e-9

// Hexagon returns the unit hexagon the crystal grows from, starting at the
// upper-right vertex and running clockwise.
func Hexagon() Polygon {
	h := math.Sqrt(3) / 2
	return Polygon{{0.5, h}, {1, 0}, {0.5, -h}, {-0.5, -h}, {-1, 0}, {-0.5, h}}
}

// Clone returns a copy of p.
func (p Polygon) Clone() Polygon { return append(Polygon(nil), p...) }

func (p Polygon) at(i int) Vec {
	n := len(p)
	return p[((i%n)+n)%n]
}

// Subdivide splits every edge into ⌊length/interval⌋ equal parts, keeping
// the original vertices.
func Subdivide(p Polygon, interval float64) (Polygon, error) {
	if interval <= 0 {
		return nil, errx.ErrInvalidConfig.Withf("subdivision interval must be positive").With("interval", interval)
	}
	out := make(Polygon, 0, len(p))
	for i, a := range p {
		edge := p.at(i + 1).Sub(a)
		n := int(edge.Len()/interval + countEps)
		out = append(out, a)
		for j := 1; j < n; j++ {
			out = append(out, a.Add(edge.Scale(float64(j)/float64(n))))
		}
	}
	return out, nil
}

// arms returns the unit vectors from vertex i to its two neighbours.
func (p Polygon) arms(i int) (Vec, Vec, error) {
	b := p.at(i)
	ba := p.at(i - 1).Sub(b)
	bc := p.at(i + 1).Sub(b)
	if ba.Len() == 0 || bc.Len() == 0 {
		return Vec{}, Vec{}, errx.ErrInvalidConfig.Withf("degenerate edge at vertex %d", i).With("vertex", b)
	}
	return ba.Unit(), bc.Unit(), nil
}

// Sharpness is the interior angle at vertex i in degrees: 180 on a straight
// edge, 120 at a hexagon corner.
func Sharpness(p Polygon, i int) (float64, error) {
	u, v, err := p.arms(i)
	if err != nil {
		return 0, err
	}
	cos := math.Max(-1, math.Min(1, u.Dot(v)))
	return math.Acos(cos) * 180 / math.Pi, nil
}

// SharpVertices lists the vertices whose angle is at most border degrees.
func SharpVertices(p Polygon, border float64) ([]int, error) {
	var out []int
	for i := range p {
		s, err := Sharpness(p, i)
		if err != nil {
			return nil, err
		}
		if s <= border {
			out = append(out, i)
		}
	}
	return out, nil
}

// Bisector returns the unit vector splitting the angle at vertex i, oriented
// away from the origin. On a straight edge it is the edge normal.
func Bisector(p Polygon, i int) (Vec, error) {
	u, v, err := p.arms(i)
	if err != nil {
		return Vec{}, err
	}
	var d Vec
	if u == v.Neg() {
		d = u.Perp()
	} else {
		d = u.Add(v)
	}
	if d.Dot(p.at(i)) <= 0 {
		d = d.Neg()
	}
	return d.Unit(), nil
}

// Grow pushes each listed vertex, and the wideness/interval vertices on either
// side of it, along the vertex's bisector by length. Vertices are processed in
// order on the progressively moved outline.
func Grow(p Polygon, vertices []int, length, wideness, interval float64) (Polygon, error) {
	if interval <= 0 {
		return nil, errx.ErrInvalidConfig.Withf("growth interval must be positive").With("interval", interval)
	}
	out := p.Clone()
	reach := int(wideness/interval + countEps)
	n := len(out)
	for _, i := range vertices {
		dir, err := Bisector(out, i)
		if err != nil {
			return nil, err
		}
		step := dir.Scale(length)
		for j := i - reach; j <= i+reach; j++ {
			k := ((j % n) + n) % n
			out[k] = out[k].Add(step)
		}
	}
	return out, nil
}
