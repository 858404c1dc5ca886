package signal

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/xiaogaogaoxiao/cf-ra-spatial-separability/pkg/geometry"
)

func TestNewSetupGains(t *testing.T) {
	grid := geometry.APGrid(16, 400)
	rng := rand.New(rand.NewSource(1))
	setup := NewSetup(rng, grid, 3, 400)

	if len(setup.Locations) != 3 || len(setup.Gains) != 3 {
		t.Fatalf("expected 3 devices, got %d locations and %d gain rows",
			len(setup.Locations), len(setup.Gains))
	}
	for k, gains := range setup.Gains {
		if len(gains) != 16 {
			t.Fatalf("device %d: expected 16 gains, got %d", k, len(gains))
		}
		for l, g := range gains {
			expected := ChannelGain(cmplx.Abs(setup.Locations[k] - grid[l]))
			if g != expected {
				t.Errorf("device %d AP %d: gain %g does not match distance-derived %g", k, l, g, expected)
			}
		}
	}
}

func TestNewSetupDeterministic(t *testing.T) {
	grid := geometry.APGrid(4, 400)
	a := NewSetup(rand.New(rand.NewSource(99)), grid, 2, 400)
	b := NewSetup(rand.New(rand.NewSource(99)), grid, 2, 400)
	for k := range a.Locations {
		if a.Locations[k] != b.Locations[k] {
			t.Fatalf("device %d location differs under identical seed", k)
		}
	}
}

func TestReceivedDeterministicChannel(t *testing.T) {
	// One device, one AP, two antennas, unit fading, no noise: every antenna
	// observes sqrt(p*taup*gain).
	p, taup, gain := 100.0, 5.0, 0.25
	setup := Setup{
		Locations: []complex128{complex(1, 1)},
		Gains:     [][]float64{{gain}},
	}
	r := Realization{
		Fading:      [][][]complex128{{{1, 1}}},
		APNoise:     [][]complex128{{0, 0}},
		DeviceNoise: []complex128{0},
	}

	y := Received(setup, r, p, taup)
	expected := math.Sqrt(p * taup * gain)
	for n, v := range y[0] {
		if math.Abs(real(v)-expected) > 1e-12 || imag(v) != 0 {
			t.Errorf("antenna %d: expected %f, got %v", n, expected, v)
		}
	}

	norms := APNorms(y)
	if expectedNorm := math.Sqrt(2) * expected; math.Abs(norms[0]-expectedNorm) > 1e-12 {
		t.Errorf("expected norm %f, got %f", expectedNorm, norms[0])
	}
}

func TestDrawRealizationShape(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	r := DrawRealization(rng, 2, 3, 4, 1)
	if len(r.Fading) != 2 || len(r.Fading[0]) != 3 || len(r.Fading[0][0]) != 4 {
		t.Fatalf("unexpected fading shape")
	}
	if len(r.APNoise) != 3 || len(r.APNoise[0]) != 4 || len(r.DeviceNoise) != 2 {
		t.Fatalf("unexpected noise shape")
	}
}

func TestCrandnVariance(t *testing.T) {
	rng := rand.New(rand.NewSource(123))
	const draws = 200000
	var sum float64
	for i := 0; i < draws; i++ {
		v := crandn(rng, 2)
		sum += real(v)*real(v) + imag(v)*imag(v)
	}
	if mean := sum / draws; math.Abs(mean-2) > 0.05 {
		t.Errorf("expected variance near 2, got %f", mean)
	}
}
