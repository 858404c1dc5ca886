package signal

import (
	"math"
	"math/cmplx"
	"math/rand"
)

// Setup is one random drop of colliding devices over the coverage square,
// together with the derived large-scale gains towards every AP.
type Setup struct {
	Locations []complex128 // device positions, one per colliding device
	Gains     [][]float64  // [device][ap] linear channel gain
}

// NewSetup draws collisionSize device locations uniformly over the square
// and computes their channel gains to every AP of the grid.
func NewSetup(rng *rand.Rand, grid []complex128, collisionSize int, squareLength float64) Setup {
	s := Setup{
		Locations: make([]complex128, collisionSize),
		Gains:     make([][]float64, collisionSize),
	}
	for k := range s.Locations {
		s.Locations[k] = complex(squareLength*rng.Float64(), squareLength*rng.Float64())
		s.Gains[k] = make([]float64, len(grid))
		for l, ap := range grid {
			s.Gains[k][l] = ChannelGain(cmplx.Abs(s.Locations[k] - ap))
		}
	}
	return s
}

// Realization is one independent draw of small-scale fading and noise for a
// setup. Fading coefficients are circularly-symmetric with unit variance.
type Realization struct {
	Fading      [][][]complex128 // [device][ap][antenna]
	APNoise     [][]complex128   // [ap][antenna], variance sigma2
	DeviceNoise []complex128     // [device], variance sigma2
}

// DrawRealization draws the fading and noise of a single channel use.
func DrawRealization(rng *rand.Rand, numDevices, numAPs, numAntennas int, sigma2 float64) Realization {
	r := Realization{
		Fading:      make([][][]complex128, numDevices),
		APNoise:     make([][]complex128, numAPs),
		DeviceNoise: make([]complex128, numDevices),
	}
	for k := 0; k < numDevices; k++ {
		r.Fading[k] = make([][]complex128, numAPs)
		for l := 0; l < numAPs; l++ {
			r.Fading[k][l] = make([]complex128, numAntennas)
			for n := 0; n < numAntennas; n++ {
				r.Fading[k][l][n] = crandn(rng, 1)
			}
		}
		r.DeviceNoise[k] = crandn(rng, sigma2)
	}
	for l := 0; l < numAPs; l++ {
		r.APNoise[l] = make([]complex128, numAntennas)
		for n := 0; n < numAntennas; n++ {
			r.APNoise[l][n] = crandn(rng, sigma2)
		}
	}
	return r
}

// Channel returns the full channel coefficient of device k towards antenna n
// of AP l, combining path loss and fading.
func (s Setup) Channel(r Realization, k, l, n int) complex128 {
	return complex(math.Sqrt(s.Gains[k][l]), 0) * r.Fading[k][l][n]
}

// Received forms the aggregate uplink signal observed at every AP antenna:
// the superposition of all colliding devices transmitting the same pilot,
// plus AP noise.
func Received(s Setup, r Realization, p, taup float64) [][]complex128 {
	numAPs := len(r.APNoise)
	numAntennas := len(r.APNoise[0])
	scale := complex(math.Sqrt(p*taup), 0)

	y := make([][]complex128, numAPs)
	for l := 0; l < numAPs; l++ {
		y[l] = make([]complex128, numAntennas)
		for n := 0; n < numAntennas; n++ {
			var sum complex128
			for k := range s.Gains {
				sum += s.Channel(r, k, l, n)
			}
			y[l][n] = scale*sum + r.APNoise[l][n]
		}
	}
	return y
}

// APNorms returns the l2-norm of the received signal across antennas, per AP.
func APNorms(y [][]complex128) []float64 {
	norms := make([]float64, len(y))
	for l, antennas := range y {
		var sum float64
		for _, v := range antennas {
			re, im := real(v), imag(v)
			sum += re*re + im*im
		}
		norms[l] = math.Sqrt(sum)
	}
	return norms
}

// crandn draws a circularly-symmetric complex Gaussian with the given
// variance, split evenly between the real and imaginary parts.
func crandn(rng *rand.Rand, variance float64) complex128 {
	std := math.Sqrt(variance / 2)
	return complex(std*rng.NormFloat64(), std*rng.NormFloat64())
}
