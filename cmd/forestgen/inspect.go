package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"forest-ca/internal/codec"
	"forest-ca/internal/core"
	"forest-ca/internal/errx"
)

func runInspect(_ context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("inspect", stdout)
	width := fs.Int("w", 0, "grid width of a legacy file (versioned files carry it)")
	height := fs.Int("h", 0, "grid height of a legacy file")
	if ok, err := parse(fs, args); !ok {
		return err
	}
	if fs.NArg() == 0 {
		return errx.ErrInvalidConfig.Withf("inspect needs at least one cell file")
	}
	for _, path := range fs.Args() {
		g, format, err := codec.LoadAuto(path, *width, *height)
		if err != nil {
			return err
		}
		if err := report(stdout, path, g, format); err != nil {
			return err
		}
	}
	return nil
}

func report(w io.Writer, path string, g *core.Grid, format codec.Format) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%dx%d\t%s\t\n", path, g.W, g.H, format)
	for m := core.Material(0); m < core.MaterialCount; m++ {
		fmt.Fprintf(tw, "%s\t%d\t\n", m, g.Count(m))
	}
	for s := core.State(0); s < core.StateCount; s++ {
		fmt.Fprintf(tw, "%s\t%d\t\n", s, g.CountState(s))
	}
	return tw.Flush()
}
