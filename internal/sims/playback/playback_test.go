package playback

import (
	"errors"
	"testing"

	"forest-ca/internal/codec"
	"forest-ca/internal/core"
	"forest-ca/internal/errx"
)

// writeRun stores n frames whose burning cell walks along the bottom row.
func writeRun(t *testing.T, dir string, n int, f codec.Format) {
	t.Helper()
	seq := codec.Sequence{Dir: dir, Width: 5, Height: 2, Format: f}
	for step := 1; step <= n; step++ {
		g, _ := core.NewGrid(5, 2)
		_ = g.Set(step-1, 0, core.Cell{State: core.StateBurning, Material: core.MaterialWood})
		if err := seq.Write(step, g); err != nil {
			t.Fatal(err)
		}
	}
}

func burningColumn(t *testing.T, p *Player) int {
	t.Helper()
	for x := 0; x < p.Grid().W; x++ {
		if c, _ := p.Grid().Get(x, 0); c.State == core.StateBurning {
			return x
		}
	}
	t.Fatal("no burning cell in frame")
	return -1
}

func TestPlayerStepsAndStops(t *testing.T) {
	dir := t.TempDir()
	writeRun(t, dir, 3, codec.FormatLegacy)
	p, err := New(Config{Dir: dir, Width: 5, Height: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Count() != 3 || p.Frame() != 1 || burningColumn(t, p) != 0 {
		t.Fatalf("unexpected start: frame %d of %d", p.Frame(), p.Count())
	}
	p.Step()
	p.Step()
	if p.Frame() != 3 || burningColumn(t, p) != 2 || !p.Done() {
		t.Fatalf("frame %d, done %v", p.Frame(), p.Done())
	}
	p.Step()
	if p.Frame() != 3 {
		t.Fatalf("non-looping player moved past the end to %d", p.Frame())
	}
	p.Reset(99)
	if p.Frame() != 1 {
		t.Fatalf("Reset should rewind, frame %d", p.Frame())
	}
	// Bottom row ends up as the last display row.
	if codes := p.Cells(); codes[5] != 5 {
		t.Fatalf("display codes %v", codes)
	}
}

func TestPlayerLoops(t *testing.T) {
	dir := t.TempDir()
	writeRun(t, dir, 2, codec.FormatV1)
	p, err := New(Config{Dir: dir, Loop: true})
	if err != nil {
		t.Fatalf("New with header sizes: %v", err)
	}
	p.Step()
	p.Step()
	if p.Frame() != 1 || p.Done() {
		t.Fatalf("looping player at frame %d", p.Frame())
	}
}

func TestPlayerEmptyDirectory(t *testing.T) {
	if _, err := New(Config{Dir: t.TempDir(), Width: 5, Height: 2}); !errors.Is(err, errx.ErrIO) {
		t.Fatalf("err = %v, want io error", err)
	}
}

func TestPlayerKeepsFrameOnLoadError(t *testing.T) {
	dir := t.TempDir()
	writeRun(t, dir, 2, codec.FormatLegacy)
	p, err := New(Config{Dir: dir, Width: 5, Height: 2})
	if err != nil {
		t.Fatal(err)
	}
	bad, _ := core.NewGrid(3, 3)
	if err := codec.Save(bad, codec.StepPath(dir, "", 2)); err != nil {
		t.Fatal(err)
	}
	p.Step()
	if !errors.Is(p.Err(), errx.ErrFormat) || p.Frame() != 1 {
		t.Fatalf("err = %v, frame = %d", p.Err(), p.Frame())
	}
}

func TestFromMap(t *testing.T) {
	c, err := FromMap(map[string]string{"dir": "run", "w": "10", "h": "0", "loop": "true"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Dir != "run" || c.Width != 10 || c.Height != 0 || !c.Loop {
		t.Fatalf("config %+v", c)
	}
	if _, err := FromMap(map[string]string{"loop": "sometimes"}); !errors.Is(err, errx.ErrInvalidConfig) {
		t.Fatalf("err = %v", err)
	}
}
