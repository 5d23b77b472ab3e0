package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"forest-ca/internal/codec"
	"forest-ca/internal/core"
	"forest-ca/internal/errx"
	"forest-ca/internal/logs"
	"forest-ca/internal/render"
	"forest-ca/internal/suggest"
	"forest-ca/internal/terrain"
)

func runGenerate(_ context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("generate", stdout)
	var rf runFlags
	rf.bind(fs)
	out := fs.String("out", "cells_state.bin", "cell file to write")
	header := fs.Bool("header", false, "prefix the file with a versioned header")
	png := fs.String("png", "", "also write a PNG preview to this path")
	scale := fs.Int("scale", 0, "PNG pixel scale (default output.scale)")
	if ok, err := parse(fs, args); !ok {
		return err
	}
	if err := rf.load("generate"); err != nil {
		return err
	}

	scene, err := rf.cfg.Scene.TerrainConfig()
	if err != nil {
		return err
	}
	if scene, err = scene.Override(rf.extra); err != nil {
		return err
	}
	g, err := terrain.Build(scene)
	if err != nil {
		return err
	}

	format := codec.FormatLegacy
	if *header || rf.cfg.Output.Header {
		format = codec.FormatV1
	}
	if err := codec.SaveFormat(g, *out, format); err != nil {
		return err
	}
	logs.Info("scene saved", zap.String("path", *out), zap.Stringer("format", format),
		zap.Int("width", g.W), zap.Int("height", g.H))

	if *png != "" {
		s := *scale
		if s == 0 {
			s = rf.cfg.Output.Scale
		}
		if err := render.SavePNG(g, *png, s); err != nil {
			return err
		}
		logs.Info("preview saved", zap.String("path", *png), zap.Int("scale", s))
	}
	fmt.Fprintf(stdout, "%s: %dx%d %s\n", *out, g.W, g.H, materialSummary(g))
	return nil
}

func materialSummary(g *core.Grid) string {
	s := ""
	for m := core.Material(0); m < core.MaterialCount; m++ {
		if s != "" {
			s += " "
		}
		s += fmt.Sprintf("%s=%d", m, g.Count(m))
	}
	return s
}

func presetError(name string) error {
	if _, ok := terrain.Preset(name); ok {
		return nil
	}
	names := terrain.PresetNames()
	return errx.ErrInvalidConfig.Withf("unknown preset %q%s", name, suggest.Hint(name, names)).With("known", names)
}
