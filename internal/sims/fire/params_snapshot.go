package fire

import (
	"forest-ca/internal/core"
)

// Parameters reports the scene, the material constants and the run state.
func (w *World) Parameters() core.ParameterSnapshot {
	snap := w.cfg.Scene.Parameters()
	wood := w.props[core.MaterialWood]
	leaf := w.props[core.MaterialLeaf]
	stats := w.Stats()
	snap.Groups = append(snap.Groups,
		core.ParameterGroup{
			Name: "Combustion",
			Params: []core.Parameter{
				core.FloatParam("wood_burn_time", "Wood burn time", float64(wood.BurnTime)),
				core.FloatParam("leaf_burn_time", "Leaf burn time", float64(leaf.BurnTime)),
				core.FloatParam("ignite_near", "Ignite next to fire", float64(wood.IgniteNear)),
				core.FloatParam("ignite_alone", "Ignite alone", float64(wood.IgniteAlone)),
				core.FloatParam("energy_out", "Burning output", float64(wood.EnergyOut[core.StateBurning])),
			},
		},
		core.ParameterGroup{
			Name: "Environment",
			Params: []core.Parameter{
				core.FloatParam("temperature", "Temperature (K)", float64(w.cfg.Environment.Temperature)),
				core.FloatParam("wind_speed", "Wind speed (m/s)", float64(w.cfg.Environment.WindSpeed)),
			},
		},
		core.ParameterGroup{
			Name: "Run",
			Params: []core.Parameter{
				core.Int64Param("seed", "Seed", w.cfg.Seed),
				core.IntParam("step", "Step", stats.Step),
				core.IntParam("burning", "Burning", stats.Burning),
				core.IntParam("burned", "Burned", stats.Burned),
			},
		},
	)
	return snap
}

// ParameterControls lists the constants the HUD may adjust.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "wood_burn_time", Label: "Wood burn time", Step: 1, Min: 1, Max: 200},
		{Key: "ignite_near", Label: "Ignite near", Step: 500, Min: 0, Max: 50000},
		{Key: "ignite_alone", Label: "Ignite alone", Step: 1000, Min: 0, Max: 100000},
		{Key: "energy_out", Label: "Burning output", Step: 250, Min: 0, Max: 20000},
	}
}

// SetFloatParameter updates a combustion constant. Changes apply from the
// next step and survive Reset.
func (w *World) SetFloatParameter(key string, value float64) bool {
	return SetConstant(&w.props, key, value)
}
