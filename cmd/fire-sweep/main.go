// Command fire-sweep burns one scene under a grid of combustion constants
// and ranks the runs by how much of the fuel they consumed.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"forest-ca/internal/app"
	"forest-ca/internal/config"
	"forest-ca/internal/core"
	"forest-ca/internal/errx"
	"forest-ca/internal/logs"
	"forest-ca/internal/sims/fire"
)

type paramSet struct {
	igniteNear   float64
	woodBurnTime float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("ignite_near=%g wood_burn_time=%g", p.igniteNear, p.woodBurnTime)
}

type scenarioResult struct {
	params      paramSet
	burned      int
	fuel        int
	peakBurning int
	lastStep    int
	out         bool
}

func (r scenarioResult) fraction() float64 {
	if r.fuel == 0 {
		return 0
	}
	return float64(r.burned) / float64(r.fuel)
}

func main() {
	_ = logs.Init("fire-sweep", config.Default().Log)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		logs.Error("fire-sweep failed", logs.Err(err)...)
		_ = logs.Sync()
		os.Exit(1)
	}
	_ = logs.Sync()
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("fire-sweep", flag.ContinueOnError)
	fs.SetOutput(stdout)
	file := fs.String("config", "", "optional YAML/TOML/JSON config file")
	params := fs.String("params", "", "comma-separated key=value scene and fire overrides")
	steps := fs.Int("steps", 0, "maximum steps per scenario (default fire.steps)")
	workers := fs.Int("workers", 0, "number of worker goroutines (default fire.workers, else CPU count)")
	near := fs.String("near", "2000 4000 6000 8000 12000", "ignite_near values, space separated")
	burn := fs.String("burn-time", "5 10 20 40", "wood_burn_time values, space separated")
	top := fs.Int("top", 5, "results to print")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return errx.ErrInvalidConfig.Withf("fire-sweep: %v", err)
	}

	cfg, err := config.Load(*file)
	if err != nil {
		return err
	}
	if err := logs.Init("fire-sweep", cfg.Log); err != nil {
		return err
	}
	base, err := cfg.FireRun()
	if err != nil {
		return err
	}
	extra, err := app.ParseParams(*params)
	if err != nil {
		return err
	}
	if base, err = base.Override(extra); err != nil {
		return err
	}
	nearValues, err := parseFloats("near", *near)
	if err != nil {
		return err
	}
	burnValues, err := parseFloats("burn-time", *burn)
	if err != nil {
		return err
	}
	n := *steps
	if n <= 0 {
		n = cfg.Fire.Steps
	}
	w := *workers
	if w <= 0 {
		w = cfg.Fire.Workers
	}
	if w <= 0 {
		w = runtime.NumCPU()
	}

	var sets []paramSet
	for _, in := range nearValues {
		for _, bt := range burnValues {
			sets = append(sets, paramSet{igniteNear: in, woodBurnTime: bt})
		}
	}
	fmt.Fprintf(stdout, "Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), w, n)

	start := time.Now()
	all, err := sweep(ctx, base, sets, n, w)
	if err != nil {
		return err
	}
	logs.Info("sweep finished", zap.Int("scenarios", len(all)), zap.Duration("elapsed", time.Since(start)))

	fmt.Fprintf(stdout, "\nTop %d results (elapsed %s):\n", min(*top, len(all)), time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		r := all[i]
		status := "still burning"
		if r.out {
			status = "out"
		}
		fmt.Fprintf(stdout, "%2d) burned=%d/%d (%.1f%%) peak=%d step=%d %s params=%s\n",
			i+1, r.burned, r.fuel, 100*r.fraction(), r.peakBurning, r.lastStep, status, r.params)
	}
	return nil
}

// sweep runs every set on its own copy of the scene and returns the results
// sorted by burned fraction, best first.
func sweep(ctx context.Context, base fire.Config, sets []paramSet, steps, workers int) ([]scenarioResult, error) {
	grid, err := fire.LoadScene(base)
	if err != nil {
		return nil, err
	}

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for p := range jobs {
				res, err := runScenario(gctx, grid, base, p, steps)
				if err != nil {
					return err
				}
				select {
				case results <- res:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(jobs)
		for _, p := range sets {
			select {
			case jobs <- p:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	go func() {
		_ = g.Wait()
		close(results)
	}()

	var all []scenarioResult
	for res := range results {
		all = append(all, res)
		logs.Debug("scenario done", zap.Stringer("params", res.params), zap.Int("burned", res.burned))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].burned != all[j].burned {
			return all[i].burned > all[j].burned
		}
		return all[i].lastStep < all[j].lastStep
	})
	return all, nil
}

func runScenario(ctx context.Context, scene *core.Grid, base fire.Config, p paramSet, steps int) (scenarioResult, error) {
	cfg := base
	fire.SetConstant(&cfg.Properties, "ignite_near", p.igniteNear)
	fire.SetConstant(&cfg.Properties, "wood_burn_time", p.woodBurnTime)
	w, err := fire.New(scene, cfg)
	if err != nil {
		return scenarioResult{}, err
	}

	res := scenarioResult{params: p}
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		w.Step()
		s := w.Stats()
		res.peakBurning = max(res.peakBurning, s.Burning)
		if s.Burning == 0 {
			res.out = true
			break
		}
	}
	s := w.Stats()
	res.burned = s.Burned
	res.fuel = s.Normal + s.Burning + s.Burned
	res.lastStep = s.Step
	return res, nil
}

func parseFloats(name, s string) ([]float64, error) {
	var out []float64
	for _, f := range strings.Fields(s) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || v < 0 {
			return nil, errx.ErrInvalidConfig.Withf("-%s value %q is not a non-negative number", name, f)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, errx.ErrInvalidConfig.Withf("-%s needs at least one value", name)
	}
	return out, nil
}
