package terrain

import "sort"

var presets = map[string]Config{}

// Register stores a named scene preset, replacing any previous entry.
func Register(name string, c Config) {
	if name == "" {
		return
	}
	presets[name] = c.Clone()
}

// Preset returns a copy of the named scene.
func Preset(name string) (Config, bool) {
	c, ok := presets[name]
	if !ok {
		return Config{}, false
	}
	return c.Clone(), true
}

// PresetNames lists the registered presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("hillside", DefaultConfig())

	Register("flat", Config{
		Width:         150,
		Height:        100,
		SlopeDegrees:  0,
		LeafThickness: 3,
		Trees: []TreeSpec{{
			Base:        Point{X: 75, Y: 3},
			Height:      50,
			Thickness:   3,
			TrunkHeight: 12,
			Options:     DefaultTreeOptions(),
		}},
		Passes: []string{PassSlope, PassFallenLeaf, PassTree},
	})

	// Tree bases sit on the 15° ramp: ⌊tan(15°)·x⌋.
	grove := Config{
		Width:         200,
		Height:        120,
		SlopeDegrees:  15,
		LeafThickness: 2,
		Passes:        []string{PassSlope, PassTree, PassFallenLeaf},
	}
	for _, base := range []Point{{X: 40, Y: 10}, {X: 100, Y: 26}, {X: 160, Y: 42}} {
		grove.Trees = append(grove.Trees, TreeSpec{
			Base:        base,
			Height:      40,
			Thickness:   2,
			TrunkHeight: 8,
			Options:     DefaultTreeOptions(),
		})
	}
	Register("grove", grove)
}
