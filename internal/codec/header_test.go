package codec

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"forest-ca/internal/core"
	"forest-ca/internal/errx"
)

func TestHeaderRoundTrip(t *testing.T) {
	g := referenceGrid(t)
	path := filepath.Join(t.TempDir(), "cells.fca")
	if err := SaveWithHeader(g, path); err != nil {
		t.Fatalf("SaveWithHeader: %v", err)
	}
	got, f, err := LoadAuto(path, 0, 0)
	if err != nil {
		t.Fatalf("LoadAuto: %v", err)
	}
	if f != FormatV1 {
		t.Fatalf("format = %v, want v1", f)
	}
	if !got.Equal(g) {
		t.Fatal("versioned round trip changed the grid")
	}
}

func TestLoadAutoFallsBackToLegacy(t *testing.T) {
	g := referenceGrid(t)
	path := filepath.Join(t.TempDir(), "cells.bin")
	if err := Save(g, path); err != nil {
		t.Fatal(err)
	}
	got, f, err := LoadAuto(path, g.W, g.H)
	if err != nil {
		t.Fatalf("LoadAuto: %v", err)
	}
	if f != FormatLegacy || !got.Equal(g) {
		t.Fatalf("format = %v, equal = %v", f, got.Equal(g))
	}
	if _, _, err := LoadAuto(path, 0, 0); !errors.Is(err, errx.ErrInvalidConfig) {
		t.Fatalf("legacy without dimensions err = %v, want invalid config", err)
	}
}

func TestLoadAutoRejectsMismatchedHeader(t *testing.T) {
	g, _ := core.NewGrid(3, 2)
	path := filepath.Join(t.TempDir(), "cells.fca")
	if err := SaveWithHeader(g, path); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadAuto(path, 2, 3); !errors.Is(err, errx.ErrFormat) {
		t.Fatalf("err = %v, want format error", err)
	}
	if _, _, err := LoadAuto(path, 3, 0); err != nil {
		t.Fatalf("partial dimensions should match: %v", err)
	}
}

func TestParseHeaderChecks(t *testing.T) {
	g, _ := core.NewGrid(3, 2)
	good, _ := NewHeader(g).MarshalBinary()

	corrupt := func(mutate func(b []byte)) []byte {
		b := append([]byte(nil), good...)
		mutate(b)
		return b
	}
	cases := map[string][]byte{
		"truncated":    good[:10],
		"version":      corrupt(func(b []byte) { b[4] = 9 }),
		"record size":  corrupt(func(b []byte) { b[6] = 8 }),
		"record count": corrupt(func(b []byte) { b[16] = 7 }),
		"zero width":   corrupt(func(b []byte) { b[8] = 0 }),
	}
	for name, data := range cases {
		if _, err := ParseHeader(data); !errors.Is(err, errx.ErrFormat) {
			t.Fatalf("%s: err = %v, want format error", name, err)
		}
	}
	h, err := ParseHeader(good)
	if err != nil || h.Width != 3 || h.Height != 2 || h.Records != 6 {
		t.Fatalf("ParseHeader(good) = %+v, %v", h, err)
	}
}

func TestVersionedFileWithTruncatedRecords(t *testing.T) {
	g, _ := core.NewGrid(3, 2)
	path := filepath.Join(t.TempDir(), "cells.fca")
	if err := SaveWithHeader(g, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if err := os.WriteFile(path, data[:len(data)-RecordSize], 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadAuto(path, 0, 0); !errors.Is(err, errx.ErrFormat) {
		t.Fatalf("err = %v, want format error", err)
	}
}
