package model

import (
	"math"

	"github.com/pkg/errors"
)

// Variant identifies one of the total-UL-power estimators.
type Variant string

const (
	// EstClosedForm is the single closed-form inversion estimator.
	EstClosedForm Variant = "est1"
	// EstWeightedSum weights each nearby AP contribution by its 2/3 power.
	EstWeightedSum Variant = "est2"
	// EstBiasCorrected applies the delta compensation factor and uses the
	// network-wide precoding normalization.
	EstBiasCorrected Variant = "est3"
)

// Valid reports whether v names a known estimator.
func (v Variant) Valid() bool {
	switch v {
	case EstClosedForm, EstWeightedSum, EstBiasCorrected:
		return true
	}
	return false
}

// SystemConfig holds the cell-free network parameters, fixed for a run.
type SystemConfig struct {
	NumAPs        int     `mapstructure:"numAPs" yaml:"numAPs"`
	NumAntennas   int     `mapstructure:"numAntennas" yaml:"numAntennas"`
	UplinkPower   float64 `mapstructure:"uplinkPower" yaml:"uplinkPower"`
	DownlinkPower float64 `mapstructure:"downlinkPower" yaml:"downlinkPower"` // per AP
	NoisePower    float64 `mapstructure:"noisePower" yaml:"noisePower"`
	PilotLength   float64 `mapstructure:"pilotLength" yaml:"pilotLength"`
	SquareLength  float64 `mapstructure:"squareLength" yaml:"squareLength"`
	Estimator     Variant `mapstructure:"estimator" yaml:"estimator"`
}

// SimulationConfig holds the Monte-Carlo trial parameters.
type SimulationConfig struct {
	Seed         int64 `mapstructure:"seed" yaml:"seed"`
	NumSetups    int   `mapstructure:"numSetups" yaml:"numSetups"`
	NumChannel   int   `mapstructure:"numChannel" yaml:"numChannel"`
	CollisionMin int   `mapstructure:"collisionMin" yaml:"collisionMin"`
	CollisionMax int   `mapstructure:"collisionMax" yaml:"collisionMax"`
	Workers      int   `mapstructure:"workers" yaml:"workers"` // 0 selects runtime.NumCPU
}

// Model is the full simulation model loaded from the config file.
type Model struct {
	System     SystemConfig     `mapstructure:"system" yaml:"system"`
	Simulation SimulationConfig `mapstructure:"simulation" yaml:"simulation"`
}

// Validate checks the configuration invariants. A violation is a fatal
// configuration error, never worked around.
func (m *Model) Validate() error {
	s := m.System
	perDim := math.Sqrt(float64(s.NumAPs))
	if s.NumAPs <= 0 || perDim != math.Trunc(perDim) {
		return errors.Errorf("numAPs must be a positive perfect square, got %d", s.NumAPs)
	}
	if s.NumAntennas < 1 {
		return errors.Errorf("numAntennas must be at least 1, got %d", s.NumAntennas)
	}
	if s.SquareLength <= 0 {
		return errors.Errorf("squareLength must be positive, got %f", s.SquareLength)
	}
	if !s.Estimator.Valid() {
		return errors.Errorf("unknown estimator %q", s.Estimator)
	}
	sim := m.Simulation
	if sim.NumSetups < 1 || sim.NumChannel < 1 {
		return errors.Errorf("numSetups and numChannel must be at least 1, got %d and %d",
			sim.NumSetups, sim.NumChannel)
	}
	if sim.CollisionMin < 1 || sim.CollisionMax < sim.CollisionMin {
		return errors.Errorf("invalid collision range [%d, %d]", sim.CollisionMin, sim.CollisionMax)
	}
	return nil
}

// Collisions expands the configured collision range into a slice of sizes.
func (m *Model) Collisions() []int {
	sizes := make([]int, 0, m.Simulation.CollisionMax-m.Simulation.CollisionMin+1)
	for c := m.Simulation.CollisionMin; c <= m.Simulation.CollisionMax; c++ {
		sizes = append(sizes, c)
	}
	return sizes
}
