package terrain

import (
	"errors"
	"slices"
	"testing"

	"forest-ca/internal/core"
	"forest-ca/internal/errx"
)

func TestBuildDefaultMatchesManualSequence(t *testing.T) {
	got, err := Build(DefaultConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := newGrid(t, 150, 100)
	if err := Slope(want, 30); err != nil {
		t.Fatal(err)
	}
	if err := Tree(want, Point{X: 40, Y: 25}, 50, 2, 10, DefaultTreeOptions()); err != nil {
		t.Fatal(err)
	}
	if err := FallenLeaf(want, 30, 3); err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Fatal("pipeline output differs from slope → tree → fallen leaf")
	}
}

func TestPassOrderDecidesOverlap(t *testing.T) {
	// Litter at x=40 covers rows 23..25; the trunk base is row 25.
	leavesLast := DefaultConfig()
	treeLast := DefaultConfig()
	treeLast.Passes = []string{PassSlope, PassFallenLeaf, PassTree}

	a, err := Build(leavesLast)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(treeLast)
	if err != nil {
		t.Fatal(err)
	}
	ca, _ := a.Get(40, 25)
	cb, _ := b.Get(40, 25)
	if ca.Material != core.MaterialDryLeaf {
		t.Fatalf("litter stamped last should win, got %v", ca.Material)
	}
	if cb.Material != core.MaterialWood {
		t.Fatalf("tree stamped last should win, got %v", cb.Material)
	}
}

func TestBuildRejectsUnknownPass(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Passes = append(cfg.Passes, "volcano")
	if _, err := Build(cfg); !errors.Is(err, errx.ErrInvalidConfig) {
		t.Fatalf("err = %v, want invalid config", err)
	}
}

func TestFromMapOverrides(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"w":             "80",
		"h":             "60",
		"slope_deg":     "20",
		"tree_x":        "30",
		"tree_y":        "12",
		"tree_height":   "30",
		"branch_stride": "4",
		"passes":        "slope, tree",
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if cfg.Width != 80 || cfg.Height != 60 || cfg.SlopeDegrees != 20 {
		t.Fatalf("unexpected scene %+v", cfg)
	}
	tree := cfg.Trees[0]
	if tree.Base != (Point{X: 30, Y: 12}) || tree.Height != 30 || tree.Options.BranchStride != 4 {
		t.Fatalf("unexpected tree %+v", tree)
	}
	if !slices.Equal(cfg.Passes, []string{PassSlope, PassTree}) {
		t.Fatalf("passes = %v", cfg.Passes)
	}
	if _, err := Build(cfg); err != nil {
		t.Fatalf("Build(overridden): %v", err)
	}
}

func TestFromMapRejectsBadValues(t *testing.T) {
	cases := []map[string]string{
		{"w": "wide"},
		{"slope_deg": "steep"},
		{"preset": "tundra"},
		{"h": "0"},
		{"passes": "slope,lava"},
	}
	for _, c := range cases {
		if _, err := FromMap(c); !errors.Is(err, errx.ErrInvalidConfig) {
			t.Fatalf("FromMap(%v) err = %v, want invalid config", c, err)
		}
	}
}

func TestPresetsBuild(t *testing.T) {
	names := PresetNames()
	if !slices.Contains(names, "hillside") {
		t.Fatalf("hillside preset missing from %v", names)
	}
	for _, name := range names {
		cfg, ok := Preset(name)
		if !ok {
			t.Fatalf("Preset(%q) not found", name)
		}
		g, err := Build(cfg)
		if err != nil {
			t.Fatalf("preset %q: %v", name, err)
		}
		if g.Count(core.MaterialWood) == 0 {
			t.Fatalf("preset %q has no trees", name)
		}
	}
}

func TestPresetReturnsCopy(t *testing.T) {
	a, _ := Preset("grove")
	a.Trees[0].Height = 1
	b, _ := Preset("grove")
	if b.Trees[0].Height == 1 {
		t.Fatal("mutating a preset copy changed the registry")
	}
}

func TestParametersListTreeShape(t *testing.T) {
	snap := DefaultConfig().Parameters()
	p, ok := snap.Lookup("tree0_branch_stride")
	if !ok || p.Value != "3" {
		t.Fatalf("branch stride parameter = %+v, %v", p, ok)
	}
	if p, ok := snap.Lookup("passes"); !ok || p.Value != "slope,tree,fallen_leaf" {
		t.Fatalf("passes parameter = %+v", p)
	}
}

func TestParsePoints(t *testing.T) {
	pts, err := ParsePoints("40:30; 41,30 7:0")
	if err != nil {
		t.Fatalf("ParsePoints: %v", err)
	}
	want := []Point{{40, 30}, {41, 30}, {7, 0}}
	if !slices.Equal(pts, want) {
		t.Fatalf("points = %v, want %v", pts, want)
	}
	for _, bad := range []string{"40", "a:1", "1:"} {
		if _, err := ParsePoint(bad); !errors.Is(err, errx.ErrInvalidConfig) {
			t.Fatalf("ParsePoint(%q) err = %v", bad, err)
		}
	}
	if s := (Point{X: 3, Y: 4}).String(); s != "3:4" {
		t.Fatalf("String = %q", s)
	}
}

func TestOverrideLayersOnExistingConfig(t *testing.T) {
	base, _ := Preset("grove")
	base.Width = 90
	c, err := base.Override(map[string]string{"slope_deg": "5"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Width != 90 || c.SlopeDegrees != 5 || len(c.Trees) != len(base.Trees) {
		t.Fatalf("override lost base settings: %+v", c)
	}
	c.Trees[0].Height = 1
	if base.Trees[0].Height == 1 {
		t.Fatal("Override shares trees with its receiver")
	}
	reset, err := base.Override(map[string]string{"preset": "flat"})
	if err != nil {
		t.Fatal(err)
	}
	flat, _ := Preset("flat")
	if reset.Width != flat.Width {
		t.Fatalf("preset key should replace the base, width = %d", reset.Width)
	}
}
