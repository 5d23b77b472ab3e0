package snowflake

import "forest-ca/internal/errx"

// Stage is one growth round followed by a resample.
type Stage struct {
	Length   float64
	Wideness float64
	// Resample is the edge interval applied after growing.
	Resample float64
}

// Options drives Generate.
type Options struct {
	// Border is the largest angle, in degrees, that counts as sharp.
	Border float64
	// Interval is the initial edge interval, also used to turn Wideness into
	// a vertex count.
	Interval float64
	Stages   []Stage
}

// DefaultOptions is the two-stage growth of the reference crystal.
func DefaultOptions() Options {
	return Options{
		Border:   130,
		Interval: 0.02,
		Stages: []Stage{
			{Length: 0.3, Wideness: 0.1, Resample: 0.02},
			{Length: 0.2, Wideness: 0.2, Resample: 0.02},
		},
	}
}

// BranchedOptions is the four-stage variant with a wider sharpness border
// and finer late resampling.
func BranchedOptions() Options {
	return Options{
		Border:   150,
		Interval: 0.02,
		Stages: []Stage{
			{Length: 1.2, Wideness: 0.3, Resample: 0.02},
			{Length: 0.7, Wideness: 0.1, Resample: 0.02},
			{Length: 0.3, Wideness: 0.05, Resample: 0.01},
			{Length: 0.2, Wideness: 0.02, Resample: 0.01},
		},
	}
}

// Generate grows a crystal from Hexagon. It returns the outline after every
// stage; the last element is the finished crystal.
func Generate(opts Options) ([]Polygon, error) {
	if opts.Border <= 0 || opts.Border > 180 {
		return nil, errx.ErrInvalidConfig.Withf("sharpness border must be in (0, 180]").With("border", opts.Border)
	}
	p, err := Subdivide(Hexagon(), opts.Interval)
	if err != nil {
		return nil, err
	}
	stages := make([]Polygon, 0, len(opts.Stages))
	for i, s := range opts.Stages {
		sharp, err := SharpVertices(p, opts.Border)
		if err != nil {
			return nil, err
		}
		if p, err = Grow(p, sharp, s.Length, s.Wideness, opts.Interval); err != nil {
			return nil, err
		}
		if p, err = Subdivide(p, s.Resample); err != nil {
			return nil, errx.ErrInvalidConfig.Withf("stage %d", i+1).WithCause(err)
		}
		stages = append(stages, p)
	}
	return stages, nil
}
