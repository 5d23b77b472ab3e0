package terrain

import (
	"fmt"
	"strings"

	"forest-ca/internal/core"
)

// Parameters describes the scene for HUDs and logs.
func (c Config) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "Scene",
			Params: []core.Parameter{
				core.IntParam("w", "Width", c.Width),
				core.IntParam("h", "Height", c.Height),
				core.StringParam("passes", "Passes", strings.Join(c.Passes, ",")),
			},
		},
		{
			Name: "Ground",
			Params: []core.Parameter{
				core.FloatParam("slope_deg", "Slope (deg)", c.SlopeDegrees),
				core.IntParam("leaf_thickness", "Leaf litter rows", c.LeafThickness),
			},
		},
	}
	for i, t := range c.Trees {
		opts := t.Options.withDefaults()
		prefix := fmt.Sprintf("tree%d_", i)
		groups = append(groups, core.ParameterGroup{
			Name: fmt.Sprintf("Tree %d", i+1),
			Params: []core.Parameter{
				core.IntParam(prefix+"x", "Base X", t.Base.X),
				core.IntParam(prefix+"y", "Base Y", t.Base.Y),
				core.IntParam(prefix+"height", "Height", t.Height),
				core.IntParam(prefix+"thickness", "Thickness", t.Thickness),
				core.IntParam(prefix+"trunk_height", "Trunk height", t.TrunkHeight),
				core.FloatParam(prefix+"sharpness", "Sharpness (rad)", opts.Sharpness),
				core.FloatParam(prefix+"ratio", "Crown ratio", opts.Ratio),
				core.IntParam(prefix+"branch_stride", "Branch stride", opts.BranchStride),
			},
		})
	}
	return core.ParameterSnapshot{Groups: groups}
}
