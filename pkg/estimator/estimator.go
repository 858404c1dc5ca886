// Package estimator implements the three total-UL-power estimators.
package estimator

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/xiaogaogaoxiao/cf-ra-spatial-separability/pkg/model"
	"github.com/xiaogaogaoxiao/cf-ra-spatial-separability/pkg/signal"
)

// Observation carries the per-device inputs of one estimate: the downlink
// observation and the contribution term of each nearby AP.
type Observation struct {
	Z        complex128 // downlink observation of the device
	Contribs []float64  // sqrt(ql*p)*taup*gain per nearby AP
}

// Estimator turns a noisy downlink observation into an estimate of the total
// colliding-UL-signal power. Implementations are pure and never panic on
// numeric degeneracy; non-finite results propagate to the caller.
type Estimator interface {
	Variant() model.Variant
	// Normalization is the precoding policy the estimator's derivation
	// assumes.
	Normalization() signal.Normalization
	Estimate(obs Observation) float64
}

// New returns the estimator selected by the system configuration. The delta
// compensation factor is used by the bias-corrected variant only.
func New(sys model.SystemConfig, delta float64) (Estimator, error) {
	switch sys.Estimator {
	case model.EstClosedForm:
		return &ClosedForm{NumAntennas: sys.NumAntennas, Sigma2: sys.NoisePower}, nil
	case model.EstWeightedSum:
		return &WeightedSum{NumAntennas: sys.NumAntennas, Sigma2: sys.NoisePower}, nil
	case model.EstBiasCorrected:
		return &BiasCorrected{NumAntennas: sys.NumAntennas, Sigma2: sys.NoisePower, Delta: delta}, nil
	}
	return nil, errors.Errorf("unknown estimator %q", sys.Estimator)
}

// ClosedForm is the single closed-form inversion assuming a homogeneous
// contribution from the nearby APs.
type ClosedForm struct {
	NumAntennas int
	Sigma2      float64
}

func (e *ClosedForm) Variant() model.Variant { return model.EstClosedForm }
func (e *ClosedForm) Normalization() signal.Normalization { return signal.PerAP }

func (e *ClosedForm) Estimate(obs Observation) float64 {
	cte := real(obs.Z) / math.Sqrt(float64(e.NumAntennas))
	ratio := floats.Sum(obs.Contribs) / cte
	return ratio*ratio - e.Sigma2
}

// WeightedSum weights each nearby AP's contribution by its 2/3 power and
// sums per-AP corrected terms instead of applying one aggregate correction.
type WeightedSum struct {
	NumAntennas int
	Sigma2      float64
}

func (e *WeightedSum) Variant() model.Variant { return model.EstWeightedSum }
func (e *WeightedSum) Normalization() signal.Normalization { return signal.PerAP }

func (e *WeightedSum) Estimate(obs Observation) float64 {
	cte := real(obs.Z) / math.Sqrt(float64(e.NumAntennas))

	weighted := make([]float64, len(obs.Contribs))
	for i, num := range obs.Contribs {
		weighted[i] = math.Pow(num, 2.0/3.0)
	}
	ratio := floats.Sum(weighted) / cte
	cte2 := ratio * ratio

	var alphahat float64
	for _, w := range weighted {
		alphahat += cte2*w - e.Sigma2
	}
	return alphahat
}

// BiasCorrected applies the precomputed delta compensation factor and
// assumes the network-wide precoding normalization.
type BiasCorrected struct {
	NumAntennas int
	Sigma2      float64
	Delta       float64
}

func (e *BiasCorrected) Variant() model.Variant { return model.EstBiasCorrected }
func (e *BiasCorrected) Normalization() signal.Normalization { return signal.NetworkWide }

func (e *BiasCorrected) Estimate(obs Observation) float64 {
	cte := e.Delta * (real(obs.Z) - e.Sigma2) / math.Sqrt(float64(e.NumAntennas))
	ratio := floats.Sum(obs.Contribs) / cte
	return ratio * ratio
}

// Clamp floors an estimate at the device's own known UL power contribution.
// An estimate of the total interference below the device's self-contribution
// is invalid and corrected to the floor. NaN inputs pass through.
func Clamp(alphahat, gamma float64) float64 {
	if alphahat < gamma {
		return gamma
	}
	return alphahat
}
