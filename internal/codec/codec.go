// Package codec reads and writes grids in the fixed-layout cell file format.
//
// A legacy file is a bare sequence of width×height records, x-outer /
// y-inner, each record four little-endian float32 values:
// state, material, energy, time. Nothing in the file records its dimensions,
// so readers must be given the producer's width and height. A versioned file
// prefixes the same records with a Header.
package codec

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"

	"forest-ca/internal/core"
	"forest-ca/internal/errx"
)

// RecordSize is the encoded size of one cell in bytes.
const RecordSize = 16

var byteOrder = binary.LittleEndian

// Encode writes the legacy record stream for g to w.
func Encode(w io.Writer, g *core.Grid) error {
	bw := bufio.NewWriter(w)
	var rec [RecordSize]byte
	cells := g.Cells()
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			putRecord(rec[:], cells[g.Index(x, y)])
			if _, err := bw.Write(rec[:]); err != nil {
				return errx.ErrIO.Withf("write cell records").WithCause(err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return errx.ErrIO.Withf("flush cell records").WithCause(err)
	}
	return nil
}

// Decode parses a legacy record stream of exactly width·height records.
func Decode(data []byte, width, height int) (*core.Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errx.ErrInvalidConfig.Withf("grid dimensions must be positive").
			With("width", width).With("height", height)
	}
	want := int64(width) * int64(height) * RecordSize
	if int64(len(data)) != want {
		return nil, errx.ErrFormat.Withf("cell data length does not match dimensions").
			With("bytes", len(data)).With("expected", want).
			With("width", width).With("height", height)
	}
	g, err := core.NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	cells := g.Cells()
	off := 0
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			c, err := readRecord(data[off : off+RecordSize])
			if err != nil {
				return nil, err.(*errx.Error).With("x", x).With("y", y)
			}
			cells[g.Index(x, y)] = c
			off += RecordSize
		}
	}
	return g, nil
}

// Save writes g to path in the legacy header-less layout.
func Save(g *core.Grid, path string) error {
	return writeFile(path, func(w io.Writer) error { return Encode(w, g) })
}

// Load reads a legacy file written for a width×height grid. A file of any
// other length fails with errx.ErrFormat before a grid is built.
func Load(path string, width, height int) (*core.Grid, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	g, err := Decode(data, width, height)
	if err != nil {
		return nil, tagPath(err, path)
	}
	return g, nil
}

func putRecord(dst []byte, c core.Cell) {
	byteOrder.PutUint32(dst[0:], math.Float32bits(float32(c.State)))
	byteOrder.PutUint32(dst[4:], math.Float32bits(float32(c.Material)))
	byteOrder.PutUint32(dst[8:], math.Float32bits(c.Energy))
	byteOrder.PutUint32(dst[12:], math.Float32bits(c.Time))
}

// readRecord decodes one record, truncating state and material toward zero
// and rejecting values outside their enum domains.
func readRecord(src []byte) (core.Cell, error) {
	state := math.Float32frombits(byteOrder.Uint32(src[0:]))
	material := math.Float32frombits(byteOrder.Uint32(src[4:]))

	s, ok := enumValue(state, core.StateCount)
	if !ok {
		return core.Cell{}, errx.ErrFormat.Withf("invalid cell state").With("value", state)
	}
	m, ok := enumValue(material, core.MaterialCount)
	if !ok {
		return core.Cell{}, errx.ErrFormat.Withf("invalid cell material").With("value", material)
	}
	return core.Cell{
		State:    core.State(s),
		Material: core.Material(m),
		Energy:   math.Float32frombits(byteOrder.Uint32(src[8:])),
		Time:     math.Float32frombits(byteOrder.Uint32(src[12:])),
	}, nil
}

func enumValue(v float32, count int) (uint8, bool) {
	f := math.Trunc(float64(v))
	if math.IsNaN(f) || f < 0 || f >= float64(count) {
		return 0, false
	}
	return uint8(f), true
}

// writeFile streams into a temporary sibling of path and renames it into
// place, so a failed write never leaves a truncated file at path.
func writeFile(path string, write func(io.Writer) error) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return errx.ErrIO.Withf("create %s", path).WithCause(err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if err = write(tmp); err != nil {
		return tagPath(err, path)
	}
	if err = tmp.Close(); err != nil {
		return errx.ErrIO.Withf("close %s", path).WithCause(err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errx.ErrIO.Withf("rename into %s", path).WithCause(err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errx.ErrIO.Withf("read %s", path).WithCause(err)
	}
	return data, nil
}

func tagPath(err error, path string) error {
	if e, ok := err.(*errx.Error); ok {
		return e.With("path", path)
	}
	return err
}
