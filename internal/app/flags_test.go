package app

import (
	"errors"
	"flag"
	"maps"
	"testing"

	"forest-ca/internal/errx"
)

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-sim", "playback", "-scale", "5", "-seed", "7", "-params", "dir=out,loop=true"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Sim != "playback" || cfg.Scale != 5 || cfg.Seed != 7 || cfg.TPS != 60 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	params, err := cfg.ParamMap()
	if err != nil {
		t.Fatal(err)
	}
	if want := map[string]string{"dir": "out", "loop": "true"}; !maps.Equal(params, want) {
		t.Fatalf("params = %v, want %v", params, want)
	}
}

func TestParseParams(t *testing.T) {
	got, err := ParseParams(" ignite = 40:30;41:30 , , seed=3")
	if err != nil {
		t.Fatal(err)
	}
	if want := map[string]string{"ignite": "40:30;41:30", "seed": "3"}; !maps.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for _, bad := range []string{"seed", "=3"} {
		if _, err := ParseParams(bad); !errors.Is(err, errx.ErrInvalidConfig) {
			t.Fatalf("ParseParams(%q) err = %v", bad, err)
		}
	}
}
