package core

import (
	"math"
	"strconv"
)

// State is the combustion phase of a cell.
type State uint8

// Material is the substance occupying a cell. Codes are persisted and used
// as palette indices, so their values must never change.
type Material uint8

const (
	StateNormal State = iota
	StateBurning
	StateBurned

	// StateCount is the number of defined states.
	StateCount = 3
)

const (
	MaterialAir Material = iota
	MaterialSoil
	MaterialWood
	MaterialLeaf
	MaterialDryLeaf

	// MaterialCount is the number of defined materials.
	MaterialCount = 5
)

// LeafReadyTime is the timer value stamped onto freshly generated leaf cells.
const LeafReadyTime = 1.0

var stateNames = [StateCount]string{"normal", "burning", "burned"}

var materialNames = [MaterialCount]string{"air", "soil", "wood", "leaf", "dry_leaf"}

// Valid reports whether s is one of the defined states.
func (s State) Valid() bool { return s < StateCount }

func (s State) String() string {
	if !s.Valid() {
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
	return stateNames[s]
}

// Valid reports whether m is one of the defined materials.
func (m Material) Valid() bool { return m < MaterialCount }

func (m Material) String() string {
	if !m.Valid() {
		return "material(" + strconv.Itoa(int(m)) + ")"
	}
	return materialNames[m]
}

// Flammable reports whether cells of this material can ignite.
func (m Material) Flammable() bool {
	return m == MaterialWood || m == MaterialLeaf || m == MaterialDryLeaf
}

// ParseMaterial resolves a material by its lowercase name.
func ParseMaterial(name string) (Material, bool) {
	for i, n := range materialNames {
		if n == name {
			return Material(i), true
		}
	}
	return 0, false
}

// Cell is the atomic unit of the grid.
type Cell struct {
	State    State
	Material Material
	Energy   float32
	Time     float32
}

// NewCell returns a cell at the defaults: normal air with no energy.
func NewCell() Cell { return Cell{State: StateNormal, Material: MaterialAir} }

// MaterialProperties holds the combustion constants of one material.
type MaterialProperties struct {
	// BurnTime is how many steps a burning cell lasts before it is burned.
	BurnTime float32
	// IgniteNear is the energy needed to ignite next to a burning cell (I_0).
	IgniteNear float32
	// IgniteAlone is the energy needed to ignite with no burning neighbour (I_1).
	IgniteAlone float32
	// EnergyOut is the energy emitted to each neighbour per step, by state.
	EnergyOut [StateCount]float32
}

// PropertyTable maps every material code to its properties.
type PropertyTable [MaterialCount]MaterialProperties

var inf = float32(math.Inf(1))

// DefaultProperties is the reference material table. Treat it as read-only;
// callers that need different constants copy it.
var DefaultProperties = PropertyTable{
	MaterialAir:     {BurnTime: 0, IgniteNear: inf, IgniteAlone: inf},
	MaterialSoil:    {BurnTime: 0, IgniteNear: inf, IgniteAlone: inf},
	MaterialWood:    {BurnTime: 20, IgniteNear: 5000, IgniteAlone: 16000, EnergyOut: [StateCount]float32{0, 2000, 0}},
	MaterialLeaf:    {BurnTime: 1, IgniteNear: 5000, IgniteAlone: 16000, EnergyOut: [StateCount]float32{0, 2000, 0}},
	MaterialDryLeaf: {BurnTime: 1, IgniteNear: 5000, IgniteAlone: 16000, EnergyOut: [StateCount]float32{0, 2000, 0}},
}

// Environment carries ambient conditions. The step rules do not read it yet.
type Environment struct {
	Temperature float32 // kelvin
	WindSpeed   float32 // m/s
}

// DefaultEnvironment is the reference ambient condition.
var DefaultEnvironment = Environment{Temperature: 298, WindSpeed: 0}
