package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"forest-ca/internal/core"
	"forest-ca/internal/errx"
	"forest-ca/internal/terrain"
)

func referenceGrid(t *testing.T) *core.Grid {
	t.Helper()
	g, err := terrain.Build(terrain.DefaultConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// Give a few cells non-default dynamics so every field is exercised.
	cells := g.Cells()
	cells[g.Index(40, 30)].State = core.StateBurning
	cells[g.Index(40, 30)].Energy = 12.5
	cells[g.Index(41, 30)].State = core.StateBurned
	cells[g.Index(41, 30)].Time = 7.25
	return g
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := referenceGrid(t)
	path := filepath.Join(t.TempDir(), "cells.bin")
	if err := Save(g, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != int64(g.W*g.H*RecordSize) {
		t.Fatalf("file size = %d, want %d", info.Size(), g.W*g.H*RecordSize)
	}
	got, err := Load(path, g.W, g.H)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.Equal(g) {
		t.Fatal("round trip changed the grid")
	}
}

func TestRecordOrderIsColumnMajor(t *testing.T) {
	g, _ := core.NewGrid(2, 3)
	_ = g.Set(0, 1, core.Cell{Material: core.MaterialWood})
	_ = g.Set(1, 0, core.Cell{Material: core.MaterialLeaf, Time: 1})

	var buf bytes.Buffer
	if err := Encode(&buf, g); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	material := func(rec int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[rec*RecordSize+4:]))
	}
	// Record k is (x = k / H, y = k % H).
	if m := material(1); m != float32(core.MaterialWood) {
		t.Fatalf("record 1 (x=0,y=1) material = %v, want wood", m)
	}
	if m := material(3); m != float32(core.MaterialLeaf) {
		t.Fatalf("record 3 (x=1,y=0) material = %v, want leaf", m)
	}
}

func TestLoadRejectsWrongDimensions(t *testing.T) {
	g, _ := core.NewGrid(2, 2)
	path := filepath.Join(t.TempDir(), "small.bin")
	if err := Save(g, path); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, 3, 3); !errors.Is(err, errx.ErrFormat) {
		t.Fatalf("Load(3x3) err = %v, want format error", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.bin"), 2, 2)
	if !errors.Is(err, errx.ErrIO) {
		t.Fatalf("err = %v, want io error", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("cause should be not-exist, got %v", err)
	}
}

func TestDecodeRejectsInvalidEnums(t *testing.T) {
	record := func(state, material float32) []byte {
		b := make([]byte, RecordSize)
		binary.LittleEndian.PutUint32(b[0:], math.Float32bits(state))
		binary.LittleEndian.PutUint32(b[4:], math.Float32bits(material))
		return b
	}
	bad := [][]byte{
		record(3, 0),
		record(-1, 0),
		record(0, 5),
		record(float32(math.NaN()), 0),
		record(0, float32(math.Inf(1))),
	}
	for i, data := range bad {
		if _, err := Decode(data, 1, 1); !errors.Is(err, errx.ErrFormat) {
			t.Fatalf("case %d: err = %v, want format error", i, err)
		}
	}
	g, err := Decode(record(2, 4), 1, 1)
	if err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}
	if c, _ := g.Get(0, 0); c.State != core.StateBurned || c.Material != core.MaterialDryLeaf {
		t.Fatalf("decoded %+v", c)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	g, _ := core.NewGrid(4, 4)
	if err := Save(g, filepath.Join(dir, "a.bin")); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "a.bin" {
		t.Fatalf("directory contents = %v", entries)
	}
}

func TestSaveIntoMissingDirectory(t *testing.T) {
	g, _ := core.NewGrid(1, 1)
	err := Save(g, filepath.Join(t.TempDir(), "no", "such", "dir.bin"))
	if !errors.Is(err, errx.ErrIO) {
		t.Fatalf("err = %v, want io error", err)
	}
}
