package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"forest-ca/internal/codec"
	"forest-ca/internal/core"
	"forest-ca/internal/errx"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	if err := dispatch(context.Background(), args, &out); err != nil {
		t.Fatalf("forestgen %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestGenerateThenInspect(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "scene.bin")
	png := filepath.Join(dir, "scene.png")
	run(t, "generate", "-out", bin, "-png", png)

	info, err := os.Stat(bin)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 150*100*codec.RecordSize {
		t.Fatalf("legacy file is %d bytes", info.Size())
	}
	if _, err := os.Stat(png); err != nil {
		t.Fatalf("preview missing: %v", err)
	}

	report := run(t, "inspect", "-w", "150", "-h", "100", bin)
	for _, want := range []string{"150x100", "legacy", "dry_leaf", "normal"} {
		if !strings.Contains(report, want) {
			t.Fatalf("inspect output lacks %q:\n%s", want, report)
		}
	}
}

func TestGenerateHeaderNeedsNoDimensions(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "scene.bin")
	run(t, "generate", "-out", bin, "-header", "-params", "preset=grove")
	if report := run(t, "inspect", bin); !strings.Contains(report, "200x120") {
		t.Fatalf("inspect output:\n%s", report)
	}
}

func TestBurnThenExport(t *testing.T) {
	dir := t.TempDir()
	run(t, "burn", "-steps", "3", "-dir", dir, "-params", "ignite=40:30")
	seq := codec.Sequence{Dir: dir, Width: 150, Height: 100}
	n, err := seq.Count()
	if err != nil || n != 3 {
		t.Fatalf("step files = %d, %v; want 3", n, err)
	}
	g, err := seq.Frame(3)
	if err != nil {
		t.Fatal(err)
	}
	if g.CountState(core.StateNormal) == g.W*g.H {
		t.Fatal("nothing caught fire")
	}

	frames := filepath.Join(dir, "frames")
	run(t, "export", "-dir", dir, "-out", frames, "-workers", "2", "-scale", "2")
	for step := 1; step <= 3; step++ {
		if _, err := os.Stat(framePath(frames, step)); err != nil {
			t.Fatalf("frame %d: %v", step, err)
		}
	}
}

func TestBurnStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := dispatch(ctx, []string{"burn", "-steps", "5", "-dir", t.TempDir()}, &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestExportWithoutFramesFails(t *testing.T) {
	err := dispatch(context.Background(), []string{"export", "-dir", t.TempDir(), "-out", t.TempDir()}, &bytes.Buffer{})
	if !errors.Is(err, errx.ErrIO) {
		t.Fatalf("err = %v, want io error", err)
	}
}

func TestSnowflakeStages(t *testing.T) {
	out := filepath.Join(t.TempDir(), "flake.png")
	run(t, "snowflake", "-out", out, "-size", "64", "-stages")
	for _, p := range []string{out, stagePath(out, 1)} {
		if _, err := os.Stat(p); err != nil {
			t.Fatal(err)
		}
	}
	if got := stagePath("a/flake.png", 2); got != "a/flake_stage2.png" {
		t.Fatalf("stagePath = %q", got)
	}
}

func TestUnknownNamesSuggest(t *testing.T) {
	err := dispatch(context.Background(), []string{"genrate"}, &bytes.Buffer{})
	if !errors.Is(err, errx.ErrInvalidConfig) || !strings.Contains(err.Error(), "did you mean generate") {
		t.Fatalf("err = %v", err)
	}
	err = dispatch(context.Background(), []string{"generate", "-params", "preset=hilside"}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "did you mean hillside") {
		t.Fatalf("err = %v", err)
	}
}

func TestUsage(t *testing.T) {
	out := run(t)
	for _, c := range commands {
		if !strings.Contains(out, c.name) {
			t.Fatalf("usage lacks %q", c.name)
		}
	}
}
