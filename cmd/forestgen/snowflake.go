package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"forest-ca/internal/errx"
	"forest-ca/internal/logs"
	"forest-ca/internal/snowflake"
	"forest-ca/internal/suggest"
)

var growthPresets = map[string]func() snowflake.Options{
	"default":  snowflake.DefaultOptions,
	"branched": snowflake.BranchedOptions,
}

func runSnowflake(_ context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("snowflake", stdout)
	out := fs.String("out", "snowflake.png", "PNG to write")
	size := fs.Int("size", 512, "image width and height in pixels")
	preset := fs.String("preset", "default", "growth preset: default or branched")
	border := fs.Float64("border", 0, "sharpness border in degrees (default from preset)")
	stages := fs.Bool("stages", false, "also write every intermediate stage next to -out")
	if ok, err := parse(fs, args); !ok {
		return err
	}
	mk, ok := growthPresets[*preset]
	if !ok {
		names := []string{"branched", "default"}
		return errx.ErrInvalidConfig.Withf("unknown growth preset %q%s", *preset, suggest.Hint(*preset, names))
	}
	opts := mk()
	if *border > 0 {
		opts.Border = *border
	}

	outlines, err := snowflake.Generate(opts)
	if err != nil {
		return err
	}
	final := outlines[len(outlines)-1]
	if *stages {
		for i, p := range outlines[:len(outlines)-1] {
			if err := snowflake.SavePNG(p, stagePath(*out, i+1), *size); err != nil {
				return err
			}
		}
	}
	if err := snowflake.SavePNG(final, *out, *size); err != nil {
		return err
	}
	logs.Info("snowflake saved", zap.String("path", *out), zap.Int("vertices", len(final)),
		zap.Float64("radius", final.Bounds()))
	fmt.Fprintf(stdout, "%s: %d vertices after %d stages\n", *out, len(final), len(outlines))
	return nil
}

// stagePath turns "flake.png" into "flake_stage1.png".
func stagePath(out string, stage int) string {
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s_stage%d%s", strings.TrimSuffix(out, ext), stage, ext)
}
