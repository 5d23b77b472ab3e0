// Command forestgen generates forest scenes, burns them and exports the
// results without a window.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"forest-ca/internal/app"
	"forest-ca/internal/config"
	"forest-ca/internal/errx"
	"forest-ca/internal/logs"
	"forest-ca/internal/suggest"
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, args []string, stdout io.Writer) error
}

var commands = []command{
	{"generate", "build a scene and save its cell file", runGenerate},
	{"burn", "run the fire over a scene and save every step", runBurn},
	{"export", "render a saved step sequence to PNG frames", runExport},
	{"inspect", "print material and state counts of a cell file", runInspect},
	{"snowflake", "grow a crystal outline and save it as PNG", runSnowflake},
}

func main() {
	_ = logs.Init("forestgen", config.Default().Log)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := dispatch(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		logs.Error("forestgen failed", logs.Err(err)...)
		_ = logs.Sync()
		os.Exit(1)
	}
	_ = logs.Sync()
}

func dispatch(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		usage(stdout)
		return nil
	}
	i := slices.IndexFunc(commands, func(c command) bool { return c.name == args[0] })
	if i < 0 {
		names := make([]string, len(commands))
		for j, c := range commands {
			names[j] = c.name
		}
		return errx.ErrInvalidConfig.Withf("unknown command %q%s", args[0], suggest.Hint(args[0], names))
	}
	return commands[i].run(ctx, args[1:], stdout)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: forestgen <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w, "\nRun forestgen <command> -h for the flags of a command.")
}

// runFlags are the flags every command shares: the optional config file and
// key=value overrides on top of it.
type runFlags struct {
	file   string
	params string
	cfg    config.Config
	extra  map[string]string
}

func (r *runFlags) bind(fs *flag.FlagSet) {
	fs.StringVar(&r.file, "config", "", "optional YAML/TOML/JSON config file")
	fs.StringVar(&r.params, "params", "", "comma-separated key=value scene and fire overrides")
}

// load reads the config file, reconfigures logging from it and parses the
// overrides.
func (r *runFlags) load(name string) error {
	cfg, err := config.Load(r.file)
	if err != nil {
		return err
	}
	if err := logs.Init("forestgen", cfg.Log); err != nil {
		return err
	}
	extra, err := app.ParseParams(r.params)
	if err != nil {
		return err
	}
	if p, ok := extra["preset"]; ok {
		if err := presetError(strings.TrimSpace(p)); err != nil {
			return err
		}
	}
	r.cfg, r.extra = cfg, extra
	logs.Debug("config loaded", zap.String("command", name), zap.String("file", r.file), zap.Int("overrides", len(extra)))
	return nil
}

// parse runs fs over args. -h prints the command's flags and ends the
// command without error.
func parse(fs *flag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return false, nil
		}
		return false, errx.ErrInvalidConfig.Withf("%s: %v", fs.Name(), err)
	}
	return true, nil
}

func newFlagSet(name string, stdout io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stdout)
	return fs
}
