// Package statistics reduces per-device NMSE samples to the reported
// percentile statistics.
package statistics

import (
	"math"
	"sort"

	log "github.com/sirupsen/logrus"
)

// NMSE is the normalized mean-square error distribution of one collision
// size, reported as 25th/50th/75th percentiles.
type NMSE struct {
	CollisionSize int     `yaml:"collisionSize"`
	P25           float64 `yaml:"p25"`
	Median        float64 `yaml:"median"`
	P75           float64 `yaml:"p75"`
}

// CountNonFinite returns the number of NaN or infinite samples.
func CountNonFinite(samples []float64) int {
	count := 0
	for _, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			count++
		}
	}
	return count
}

// Reduce computes the percentile statistics over all (setup, device) NMSE
// samples of one collision size. Non-finite samples are flagged but not
// dropped: they arise from degenerate trials (empty serving set, zero
// ground-truth power) and poison the percentiles exactly as they would in
// the reference computation. Any NaN sample makes the result NaN.
func Reduce(collisionSize int, samples []float64) NMSE {
	if nonFinite := CountNonFinite(samples); nonFinite > 0 {
		log.Warnf("collision size %d: %d of %d NMSE samples are non-finite",
			collisionSize, nonFinite, len(samples))
	}

	for _, s := range samples {
		if math.IsNaN(s) {
			return NMSE{CollisionSize: collisionSize, P25: math.NaN(), Median: math.NaN(), P75: math.NaN()}
		}
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	return NMSE{
		CollisionSize: collisionSize,
		P25:           percentile(sorted, 0.25),
		Median:        percentile(sorted, 0.5),
		P75:           percentile(sorted, 0.75),
	}
}

// percentile computes the p-quantile of the sorted samples with linear
// interpolation between the closest ranks, so the median of an even-length
// batch is the mean of its two middle samples.
func percentile(sorted []float64, p float64) float64 {
	h := p * float64(len(sorted)-1)
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
