package signal

import (
	"math"
	"math/cmplx"
)

// Normalization selects the downlink power-allocation policy of the
// precoder.
type Normalization int

const (
	// PerAP divides each serving AP's signal by its own received-signal
	// norm (self-normalizing broadcast).
	PerAP Normalization = iota
	// NetworkWide divides all serving APs' signals by a single network-wide
	// denominator derived from the activity estimates of every AP.
	NetworkWide
)

// Precode builds the downlink signal broadcast by the serving APs from the
// aggregate uplink observation y. Under NetworkWide the denominator sums the
// noise-corrected activities over all APs, not only the serving ones, and
// may be degenerate; the resulting non-finite values propagate.
func Precode(y [][]complex128, serving []int, ql float64, norm Normalization, activities []float64, sigma2 float64) [][]complex128 {
	sqrtQl := complex(math.Sqrt(ql), 0)

	var den complex128
	if norm == NetworkWide {
		numAntennas := float64(len(y[0]))
		var sum float64
		for _, a := range activities {
			sum += a - sigma2
		}
		den = complex(math.Sqrt(numAntennas*sum), 0)
	}

	norms := APNorms(y)
	v := make([][]complex128, len(serving))
	for j, l := range serving {
		v[j] = make([]complex128, len(y[l]))
		d := den
		if norm == PerAP {
			d = complex(norms[l], 0)
		}
		for n := range y[l] {
			v[j][n] = sqrtQl * y[l][n] / d
		}
	}
	return v
}

// DownlinkObservation returns the noisy downlink signal received by device k:
// the inner product of its conjugated channel over the serving set with the
// precoded signal, plus device-side noise.
func DownlinkObservation(s Setup, r Realization, serving []int, v [][]complex128, taup float64, k int) complex128 {
	var sum complex128
	for j, l := range serving {
		for n := range v[j] {
			sum += cmplx.Conj(s.Channel(r, k, l, n)) * v[j][n]
		}
	}
	return complex(math.Sqrt(taup), 0)*sum + r.DeviceNoise[k]
}
