//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"go.uber.org/zap"

	"forest-ca/internal/app"
	"forest-ca/internal/config"
	"forest-ca/internal/core"
	"forest-ca/internal/errx"
	"forest-ca/internal/logs"
	_ "forest-ca/internal/sims/fire"
	_ "forest-ca/internal/sims/playback"
	"forest-ca/internal/suggest"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	_ = logs.Init("ca", config.Default().Log)
	if err := run(cfg); err != nil {
		logs.Error("ca failed", logs.Err(err)...)
		_ = logs.Sync()
		os.Exit(1)
	}
	_ = logs.Sync()
}

func run(cfg *app.Config) error {
	fileCfg, err := config.Load(cfg.File)
	if err != nil {
		return err
	}
	if err := logs.Init("ca", fileCfg.Log); err != nil {
		return err
	}

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		names := core.SimNames()
		return errx.ErrInvalidConfig.Withf("unknown sim %q%s", cfg.Sim, suggest.Hint(cfg.Sim, names)).With("known", names)
	}
	params, err := cfg.ParamMap()
	if err != nil {
		return err
	}
	sim, err := factory(params)
	if err != nil {
		return err
	}
	if l, ok := sim.(interface{ SetLogger(*zap.Logger) }); ok {
		l.SetLogger(logs.Named(sim.Name()))
	}
	fileCfg.Fire.ApplyTo(sim)
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Scale, cfg.Rate, cfg.HUD, cfg.Seed)
	if cfg.File != "" {
		if _, err := config.Watch(cfg.File, func(c config.Config, err error) {
			if err != nil {
				logs.Warn("config reload rejected", logs.Err(err)...)
				return
			}
			game.Apply(c.Fire.ApplyTo)
			logs.Info("config reloaded", zap.String("path", cfg.File))
		}); err != nil {
			return err
		}
	}

	size := sim.Size()
	logs.Info("starting viewer", zap.String("sim", sim.Name()), zap.Int("width", size.W), zap.Int("height", size.H))
	ebiten.SetWindowTitle("forest-ca: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+max(cfg.HUD, 0), size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
