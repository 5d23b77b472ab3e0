package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"forest-ca/internal/codec"
	"forest-ca/internal/errx"
	"forest-ca/internal/logs"
	"forest-ca/internal/render"
)

func runExport(ctx context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("export", stdout)
	var rf runFlags
	rf.bind(fs)
	dir := fs.String("dir", "", "directory holding the step files (default output.dir)")
	pattern := fs.String("pattern", "", "step file name pattern (default output.pattern)")
	width := fs.Int("w", 0, "grid width of legacy step files (default scene width)")
	height := fs.Int("h", 0, "grid height of legacy step files (default scene height)")
	out := fs.String("out", "frames", "directory for the PNG frames")
	scale := fs.Int("scale", 0, "pixel scale (default output.scale)")
	workers := fs.Int("workers", 0, "parallel encoders (default fire.workers, else CPU count)")
	if ok, err := parse(fs, args); !ok {
		return err
	}
	if err := rf.load("export"); err != nil {
		return err
	}

	scene, err := rf.cfg.Scene.TerrainConfig()
	if err != nil {
		return err
	}
	if scene, err = scene.Override(rf.extra); err != nil {
		return err
	}
	o := rf.cfg.Output
	if *dir != "" {
		o.Dir = *dir
	}
	if *pattern != "" {
		o.Pattern = *pattern
	}
	if *scale > 0 {
		o.Scale = *scale
	}
	w, h := scene.Width, scene.Height
	if *width > 0 {
		w = *width
	}
	if *height > 0 {
		h = *height
	}
	n := *workers
	if n <= 0 {
		n = rf.cfg.Fire.Workers
	}
	if n <= 0 {
		n = runtime.NumCPU()
	}

	count, err := exportFrames(ctx, o.Sequence(w, h), *out, o.Scale, n)
	if err != nil {
		return err
	}
	logs.Info("frames exported", zap.Int("frames", count), zap.String("dir", *out), zap.Int("workers", n))
	fmt.Fprintf(stdout, "%d frames written to %s\n", count, *out)
	return nil
}

// framePath names the PNG for a step so that frames sort in step order.
func framePath(dir string, step int) string {
	return filepath.Join(dir, fmt.Sprintf("frame_%05d.png", step))
}

// exportFrames renders every frame of seq into dir using up to workers
// goroutines. Each worker loads and encodes its own frame.
func exportFrames(ctx context.Context, seq codec.Sequence, dir string, scale, workers int) (int, error) {
	count, err := seq.Count()
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, errx.ErrIO.Withf("no step files found").With("first", seq.Path(1))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, errx.ErrIO.Withf("create %s", dir).WithCause(err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for step := 1; step <= count; step++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			grid, err := seq.Frame(step)
			if err != nil {
				return err
			}
			return render.SavePNG(grid, framePath(dir, step), scale)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return count, nil
}
