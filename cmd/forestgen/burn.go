package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"forest-ca/internal/core"
	"forest-ca/internal/logs"
	"forest-ca/internal/sims/fire"
)

func runBurn(ctx context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("burn", stdout)
	var rf runFlags
	rf.bind(fs)
	steps := fs.Int("steps", -1, "steps to run (default fire.steps)")
	dir := fs.String("dir", "", "directory for step files (default output.dir)")
	pattern := fs.String("pattern", "", "step file name pattern with one %d (default output.pattern)")
	header := fs.Bool("header", false, "write versioned step files")
	untilOut := fs.Bool("until-out", false, "stop early once nothing is burning")
	input := fs.String("input", "", "burn this cell file instead of generating the scene")
	if ok, err := parse(fs, args); !ok {
		return err
	}
	if err := rf.load("burn"); err != nil {
		return err
	}

	fc, err := rf.cfg.FireRun()
	if err != nil {
		return err
	}
	if fc, err = fc.Override(rf.extra); err != nil {
		return err
	}
	if *input != "" {
		fc.Input = *input
	}
	n := *steps
	if n < 0 {
		n = rf.cfg.Fire.Steps
	}

	w, err := fire.NewWithConfig(fc)
	if err != nil {
		return err
	}
	w.SetLogger(logs.Named("fire"))

	out := rf.cfg.Output
	if *dir != "" {
		out.Dir = *dir
	}
	if *pattern != "" {
		out.Pattern = *pattern
	}
	out.Header = out.Header || *header
	size := w.Size()
	seq := out.Sequence(size.W, size.H)

	stats, err := burn(ctx, w, n, *untilOut, seq.Write)
	if err != nil {
		return err
	}
	logs.Info("burn finished", zap.Int("steps", stats.Step), zap.Int("burned", stats.Burned),
		zap.Int("burning", stats.Burning), zap.String("dir", seq.Dir))
	fmt.Fprintf(stdout, "%d steps: %d burned, %d burning, %d untouched\n",
		stats.Step, stats.Burned, stats.Burning, stats.Normal)
	return nil
}

// burn steps w up to n times, handing each new state to save as step 1, 2...
// It stops between steps when ctx is cancelled.
func burn(ctx context.Context, w *fire.World, n int, untilOut bool, save func(step int, g *core.Grid) error) (fire.Stats, error) {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return w.Stats(), fmt.Errorf("burn interrupted after step %d: %w", w.StepCount(), err)
		}
		w.Step()
		if err := save(w.StepCount(), w.Grid()); err != nil {
			return w.Stats(), err
		}
		if untilOut && !w.Active() {
			logs.Info("fire is out", zap.Int("step", w.StepCount()))
			break
		}
	}
	return w.Stats(), nil
}
