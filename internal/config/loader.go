package config

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"forest-ca/internal/errx"
	"forest-ca/internal/terrain"
)

var (
	confMu sync.RWMutex
	conf   = Default()
)

// Default returns the settings used when no file or environment overrides
// are present.
func Default() Config {
	return Config{
		Log:   LogConfig{Level: "info", MaxSize: 10, MaxBackups: 3, MaxAge: 7},
		Scene: SceneConfig{Preset: "hillside"},
		Fire: FireConfig{
			Steps:        100,
			Seed:         1,
			IgniteRandom: 1,
		},
		Output: OutputConfig{Dir: ".", Scale: 1},
	}
}

// Current returns the most recently loaded configuration.
func Current() Config {
	confMu.RLock()
	defer confMu.RUnlock()
	return conf
}

// Load reads path (YAML, TOML or JSON by extension) over the defaults and
// applies FORESTCA_* environment overrides. An empty path loads defaults and
// environment only.
func Load(path string) (Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, readErr(path, err)
		}
	}
	c, err := decode(v)
	if err != nil {
		return Config{}, err
	}
	confMu.Lock()
	conf = c
	confMu.Unlock()
	return c, nil
}

// Watch loads path and calls fn again every time the file changes on disk.
// A change that fails to decode is reported to fn and leaves Current alone.
func Watch(path string, fn func(Config, error)) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, readErr(path, err)
	}
	c, err := decode(v)
	if err != nil {
		return Config{}, err
	}
	confMu.Lock()
	conf = c
	confMu.Unlock()

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		next, err := decode(v)
		if err == nil {
			confMu.Lock()
			conf = next
			confMu.Unlock()
		}
		fn(next, err)
	})
	v.WatchConfig()
	return c, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size", d.Log.MaxSize)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age", d.Log.MaxAge)
	v.SetDefault("log.compress", d.Log.Compress)
	v.SetDefault("log.dev", d.Log.Dev)
	v.SetDefault("scene.preset", d.Scene.Preset)
	v.SetDefault("scene.width", 0)
	v.SetDefault("scene.height", 0)
	v.SetDefault("fire.steps", d.Fire.Steps)
	v.SetDefault("fire.seed", d.Fire.Seed)
	v.SetDefault("fire.ignite_random", d.Fire.IgniteRandom)
	v.SetDefault("fire.wood_burn_time", d.Fire.WoodBurnTime)
	v.SetDefault("fire.ignite_near", d.Fire.IgniteNear)
	v.SetDefault("fire.ignite_alone", d.Fire.IgniteAlone)
	v.SetDefault("fire.workers", d.Fire.Workers)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.pattern", d.Output.Pattern)
	v.SetDefault("output.header", d.Output.Header)
	v.SetDefault("output.scale", d.Output.Scale)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		pointHook,
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&c, hook); err != nil {
		return Config{}, errx.ErrInvalidConfig.Withf("decode config").WithCause(err)
	}
	return c, c.Validate()
}

var pointType = reflect.TypeOf(terrain.Point{})

// pointHook lets points be written as "x:y" strings.
func pointHook(from, to reflect.Type, data any) (any, error) {
	if to != pointType || from.Kind() != reflect.String {
		return data, nil
	}
	return terrain.ParsePoint(data.(string))
}

func readErr(path string, err error) error {
	var notFound viper.ConfigFileNotFoundError
	var parse viper.ConfigParseError
	switch {
	case errors.As(err, &parse):
		return errx.ErrInvalidConfig.Withf("parse config %s", path).WithCause(err)
	case errors.As(err, &notFound):
		return errx.ErrIO.Withf("config %s not found", path).WithCause(err)
	default:
		return errx.ErrIO.Withf("read config %s", path).WithCause(err)
	}
}
