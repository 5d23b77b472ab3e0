package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"forest-ca/internal/errx"
	"forest-ca/internal/sims/fire"
	"forest-ca/internal/terrain"
)

func TestSweepRanksByBurnedCells(t *testing.T) {
	base := fire.DefaultConfig()
	base.Ignite = []terrain.Point{{X: 40, Y: 30}}
	sets := []paramSet{
		{igniteNear: 60000, woodBurnTime: 20},
		{igniteNear: 6000, woodBurnTime: 20},
		{igniteNear: 2000, woodBurnTime: 40},
	}
	all, err := sweep(context.Background(), base, sets, 30, 2)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(all) != len(sets) {
		t.Fatalf("got %d results, want %d", len(all), len(sets))
	}
	for i := 1; i < len(all); i++ {
		if all[i].burned > all[i-1].burned {
			t.Fatalf("results not sorted: %d before %d", all[i-1].burned, all[i].burned)
		}
		if all[i].fuel != all[0].fuel {
			t.Fatal("every scenario should start from the same scene")
		}
	}
	if all[len(all)-1].params.igniteNear != 60000 {
		t.Fatalf("an unreachable threshold should rank last, got %s", all[len(all)-1].params)
	}
}

func TestSweepHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := sweep(ctx, fire.DefaultConfig(), []paramSet{{6000, 20}}, 10, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRunPrintsTopResults(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"-near", "6000 8000", "-burn-time", "20", "-steps", "5", "-workers", "2", "-top", "1"}, &out)
	if err != nil {
		t.Fatal(err)
	}
	if s := out.String(); !strings.Contains(s, "Sweeping 2 parameter sets") || !strings.Contains(s, " 1) burned=") {
		t.Fatalf("unexpected output:\n%s", s)
	}
}

func TestParseFloats(t *testing.T) {
	got, err := parseFloats("near", " 1  2.5 ")
	if err != nil || len(got) != 2 || got[1] != 2.5 {
		t.Fatalf("parseFloats = %v, %v", got, err)
	}
	for _, bad := range []string{"", "x", "-1"} {
		if _, err := parseFloats("near", bad); !errors.Is(err, errx.ErrInvalidConfig) {
			t.Fatalf("parseFloats(%q) err = %v", bad, err)
		}
	}
}
