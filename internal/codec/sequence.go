package codec

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"forest-ca/internal/core"
	"forest-ca/internal/errx"
)

// DefaultStepPattern names the per-step files of a simulation run. Steps are
// numbered from 1.
const DefaultStepPattern = "cells_state_step_%d.bin"

// StepPath returns the file path for step within dir.
func StepPath(dir, pattern string, step int) string {
	if pattern == "" {
		pattern = DefaultStepPattern
	}
	return filepath.Join(dir, fmt.Sprintf(pattern, step))
}

// Sequence is a directory of numbered step files that share one grid size.
type Sequence struct {
	Dir     string
	Pattern string
	Width   int
	Height  int
	// Format selects the layout used by Write; readers detect it per file.
	Format Format
}

// Path returns the file path for step.
func (s Sequence) Path(step int) string {
	return StepPath(s.Dir, s.Pattern, step)
}

// Count returns the number of consecutive step files present, starting at
// step 1.
func (s Sequence) Count() (int, error) {
	n := 0
	for {
		_, err := os.Stat(s.Path(n + 1))
		if errors.Is(err, fs.ErrNotExist) {
			return n, nil
		}
		if err != nil {
			return n, errx.ErrIO.Withf("stat %s", s.Path(n+1)).WithCause(err)
		}
		n++
	}
}

// Frame loads step. Width and height of zero accept whatever a versioned
// file's header declares.
func (s Sequence) Frame(step int) (*core.Grid, error) {
	if step < 1 {
		return nil, errx.ErrBounds.Withf("step numbers start at 1").With("step", step)
	}
	g, _, err := LoadAuto(s.Path(step), s.Width, s.Height)
	return g, err
}

// Write stores g as step.
func (s Sequence) Write(step int, g *core.Grid) error {
	if step < 1 {
		return errx.ErrBounds.Withf("step numbers start at 1").With("step", step)
	}
	if (s.Width != 0 && g.W != s.Width) || (s.Height != 0 && g.H != s.Height) {
		return errx.ErrInvalidConfig.Withf("grid size differs from sequence").
			With("grid_width", g.W).With("grid_height", g.H).
			With("width", s.Width).With("height", s.Height)
	}
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return errx.ErrIO.Withf("create %s", s.Dir).WithCause(err)
		}
	}
	return SaveFormat(g, s.Path(step), s.Format)
}
