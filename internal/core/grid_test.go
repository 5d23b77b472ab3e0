package core

import (
	"errors"
	"testing"
	"time"

	"forest-ca/internal/errx"
)

func TestNewGridIsAllDefaultCells(t *testing.T) {
	sizes := []Size{{1, 1}, {2, 3}, {150, 100}}
	for _, s := range sizes {
		g, err := NewGrid(s.W, s.H)
		if err != nil {
			t.Fatalf("NewGrid(%d,%d): %v", s.W, s.H, err)
		}
		want := Cell{State: StateNormal, Material: MaterialAir, Energy: 0, Time: 0}
		for x := 0; x < s.W; x++ {
			for y := 0; y < s.H; y++ {
				c, err := g.Get(x, y)
				if err != nil {
					t.Fatalf("Get(%d,%d): %v", x, y, err)
				}
				if c != want {
					t.Fatalf("cell (%d,%d) = %+v, want %+v", x, y, c, want)
				}
			}
		}
	}
}

func TestNewGridRejectsNonPositiveSize(t *testing.T) {
	for _, s := range []Size{{0, 5}, {5, 0}, {-1, 3}} {
		if _, err := NewGrid(s.W, s.H); !errors.Is(err, errx.ErrInvalidConfig) {
			t.Fatalf("NewGrid(%d,%d) err = %v, want invalid config", s.W, s.H, err)
		}
	}
}

func TestGridBounds(t *testing.T) {
	g, err := NewGrid(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	cases := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {10, 10}}
	for _, c := range cases {
		if _, err := g.Get(c[0], c[1]); !errors.Is(err, errx.ErrBounds) {
			t.Fatalf("Get(%d,%d) err = %v, want bounds error", c[0], c[1], err)
		}
		if err := g.Set(c[0], c[1], NewCell()); !errors.Is(err, errx.ErrBounds) {
			t.Fatalf("Set(%d,%d) err = %v, want bounds error", c[0], c[1], err)
		}
	}
}

func TestGridSetGetCloneEqual(t *testing.T) {
	g, _ := NewGrid(5, 5)
	leaf := Cell{State: StateBurning, Material: MaterialLeaf, Energy: 12.5, Time: 1}
	if err := g.Set(4, 2, leaf); err != nil {
		t.Fatal(err)
	}
	got, _ := g.Get(4, 2)
	if got != leaf {
		t.Fatalf("Get returned %+v, want %+v", got, leaf)
	}
	if g.Count(MaterialLeaf) != 1 || g.CountState(StateBurning) != 1 {
		t.Fatal("counts do not reflect the single leaf cell")
	}

	clone := g.Clone()
	if !clone.Equal(g) {
		t.Fatal("clone should equal original")
	}
	_ = clone.Set(0, 0, leaf)
	if clone.Equal(g) {
		t.Fatal("mutating the clone must not affect the original")
	}

	g.Reset()
	if g.Count(MaterialAir) != 25 {
		t.Fatalf("Reset left %d non-air cells", 25-g.Count(MaterialAir))
	}
}

func TestEnumValidity(t *testing.T) {
	for m := Material(0); m < MaterialCount; m++ {
		if !m.Valid() {
			t.Fatalf("material %d should be valid", m)
		}
		parsed, ok := ParseMaterial(m.String())
		if !ok || parsed != m {
			t.Fatalf("ParseMaterial(%q) = %v,%v", m.String(), parsed, ok)
		}
	}
	if Material(MaterialCount).Valid() || State(StateCount).Valid() {
		t.Fatal("out-of-range enum values reported valid")
	}
	if MaterialAir.Flammable() || MaterialSoil.Flammable() || !MaterialDryLeaf.Flammable() {
		t.Fatal("unexpected flammability")
	}
	// Codes are persisted and index the palette.
	if MaterialAir != 0 || MaterialSoil != 1 || MaterialWood != 2 || MaterialLeaf != 3 || MaterialDryLeaf != 4 {
		t.Fatal("material codes changed")
	}
}

func TestFixedStepFiresOnInterval(t *testing.T) {
	now := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return now }

	if !fs.ShouldStep() {
		t.Fatal("first call should fire")
	}
	now = now.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("should not fire before the interval elapses")
	}
	now = now.Add(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("should fire once the interval has elapsed")
	}
}

func TestRNGPickIsDeterministic(t *testing.T) {
	keep := func(i int) bool { return i%3 == 0 }
	a := NewRNG(7).Pick(100, keep)
	b := NewRNG(7).Pick(100, keep)
	if a != b || a%3 != 0 {
		t.Fatalf("Pick not deterministic or violated filter: %d %d", a, b)
	}
	if got := NewRNG(1).Pick(10, func(int) bool { return false }); got != -1 {
		t.Fatalf("Pick with no candidates = %d, want -1", got)
	}
}
