package codec

import (
	"errors"
	"path/filepath"
	"testing"

	"forest-ca/internal/core"
	"forest-ca/internal/errx"
)

func TestStepPath(t *testing.T) {
	got := StepPath("out", "", 3)
	if want := filepath.Join("out", "cells_state_step_3.bin"); got != want {
		t.Fatalf("StepPath = %q, want %q", got, want)
	}
	if got := StepPath("", "frame_%04d.fca", 12); got != "frame_0012.fca" {
		t.Fatalf("custom pattern = %q", got)
	}
}

func TestSequenceWriteCountFrame(t *testing.T) {
	seq := Sequence{Dir: filepath.Join(t.TempDir(), "run"), Width: 4, Height: 3}
	for step := 1; step <= 3; step++ {
		g, _ := core.NewGrid(4, 3)
		_ = g.Set(step, 0, core.Cell{Material: core.MaterialWood})
		if err := seq.Write(step, g); err != nil {
			t.Fatalf("Write(%d): %v", step, err)
		}
	}
	n, err := seq.Count()
	if err != nil || n != 3 {
		t.Fatalf("Count = %d, %v; want 3", n, err)
	}
	g, err := seq.Frame(2)
	if err != nil {
		t.Fatalf("Frame(2): %v", err)
	}
	if c, _ := g.Get(2, 0); c.Material != core.MaterialWood {
		t.Fatalf("frame 2 lost its marker: %+v", c)
	}
	if _, err := seq.Frame(4); !errors.Is(err, errx.ErrIO) {
		t.Fatalf("Frame(4) err = %v, want io error", err)
	}
	if _, err := seq.Frame(0); !errors.Is(err, errx.ErrBounds) {
		t.Fatalf("Frame(0) err = %v, want bounds error", err)
	}
}

func TestSequenceCountStopsAtGap(t *testing.T) {
	seq := Sequence{Dir: t.TempDir(), Width: 2, Height: 2, Format: FormatV1}
	g, _ := core.NewGrid(2, 2)
	for _, step := range []int{1, 2, 4} {
		if err := seq.Write(step, g); err != nil {
			t.Fatal(err)
		}
	}
	if n, _ := seq.Count(); n != 2 {
		t.Fatalf("Count = %d, want 2", n)
	}
}

func TestSequenceWriteRejectsOtherSize(t *testing.T) {
	seq := Sequence{Dir: t.TempDir(), Width: 2, Height: 2}
	g, _ := core.NewGrid(3, 2)
	if err := seq.Write(1, g); !errors.Is(err, errx.ErrInvalidConfig) {
		t.Fatalf("err = %v, want invalid config", err)
	}
}
