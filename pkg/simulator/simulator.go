// Package simulator drives the Monte-Carlo sweep over collision sizes.
package simulator

import (
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/xiaogaogaoxiao/cf-ra-spatial-separability/pkg/estimator"
	"github.com/xiaogaogaoxiao/cf-ra-spatial-separability/pkg/geometry"
	"github.com/xiaogaogaoxiao/cf-ra-spatial-separability/pkg/lookup"
	"github.com/xiaogaogaoxiao/cf-ra-spatial-separability/pkg/model"
	"github.com/xiaogaogaoxiao/cf-ra-spatial-separability/pkg/selection"
	"github.com/xiaogaogaoxiao/cf-ra-spatial-separability/pkg/signal"
	"github.com/xiaogaogaoxiao/cf-ra-spatial-separability/pkg/statistics"
)

// Simulator runs the collision sweep against a validated model. The model,
// AP grid and lookup tables are shared read-only across all trials.
type Simulator struct {
	model  *model.Model
	grid   []complex128
	tables *lookup.Tables
}

// New builds a simulator for the given model and lookup tables.
func New(m *model.Model, tables *lookup.Tables) (*Simulator, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{
		model:  m,
		grid:   geometry.APGrid(m.System.NumAPs, m.System.SquareLength),
		tables: tables,
	}, nil
}

// Result is the outcome of one full sweep: the run identity and one NMSE
// statistic per collision size. The run id travels with the persisted
// artifact so downstream consumers can tell runs apart.
type Result struct {
	RunID string
	NMSE  []statistics.NMSE
}

// Run executes the full sweep. Any missing lookup entry aborts the run
// before its first trial.
func (s *Simulator) Run() (Result, error) {
	runID := uuid.New().String()
	collisions := s.model.Collisions()
	log.Infof("run %s: estimator %s, L=%d, N=%d, %d setups x %d channel realizations",
		runID, s.model.System.Estimator, s.model.System.NumAPs, s.model.System.NumAntennas,
		s.model.Simulation.NumSetups, s.model.Simulation.NumChannel)

	start := time.Now()
	results := make([]statistics.NMSE, 0, len(collisions))
	for i, collisionSize := range collisions {
		timer := time.Now()
		nmse, err := s.runCollision(collisionSize)
		if err != nil {
			return Result{}, err
		}
		results = append(results, nmse)
		log.Infof("collision size %d (%d/%d) done in %s", collisionSize, i+1, len(collisions),
			time.Since(timer).Round(time.Millisecond))
	}
	log.Infof("run %s finished in %s", runID, time.Since(start).Round(time.Millisecond))
	return Result{RunID: runID, NMSE: results}, nil
}

func (s *Simulator) runCollision(collisionSize int) (statistics.NMSE, error) {
	sys := s.model.System
	sim := s.model.Simulation

	pair, err := s.tables.BestPair(collisionSize, sys.NumAntennas)
	if err != nil {
		return statistics.NMSE{}, err
	}
	var delta float64
	if sys.Estimator == model.EstBiasCorrected {
		if delta, err = s.tables.Delta(collisionSize, sys.NumAntennas, pair.Lmax); err != nil {
			return statistics.NMSE{}, err
		}
	}
	est, err := estimator.New(sys, delta)
	if err != nil {
		return statistics.NMSE{}, err
	}

	workers := sim.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Setups are mutually independent; each owns an RNG seeded from the run
	// seed and its own index, so results do not depend on scheduling.
	perSetup := make([][]float64, sim.NumSetups)
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for ss := 0; ss < sim.NumSetups; ss++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(ss int) {
			defer wg.Done()
			defer func() { <-sem }()
			seed := sim.Seed + int64(collisionSize)*1000003 + int64(ss)
			rng := rand.New(rand.NewSource(seed))
			perSetup[ss] = s.runSetup(rng, collisionSize, pair, est)
		}(ss)
	}
	wg.Wait()

	samples := make([]float64, 0, sim.NumSetups*collisionSize)
	for _, setupSamples := range perSetup {
		samples = append(samples, setupSamples...)
	}
	return statistics.Reduce(collisionSize, samples), nil
}

// runSetup runs every channel realization of one setup and returns the
// channel-averaged NMSE sample of each colliding device.
func (s *Simulator) runSetup(rng *rand.Rand, collisionSize int, pair lookup.BestPair, est estimator.Estimator) []float64 {
	sys := s.model.System
	sim := s.model.Simulation

	setup := signal.NewSetup(rng, s.grid, collisionSize, sys.SquareLength)
	acc := make([]float64, collisionSize)
	for ch := 0; ch < sim.NumChannel; ch++ {
		r := signal.DrawRealization(rng, collisionSize, sys.NumAPs, sys.NumAntennas, sys.NoisePower)
		for k, sample := range RunTrial(sys, setup, r, pair, est) {
			acc[k] += sample
		}
	}
	for k := range acc {
		acc[k] /= float64(sim.NumChannel)
	}
	return acc
}

// RunTrial executes one (setup, channel realization) trial: serving-set
// selection, precoding and per-device estimation. It returns the squared
// relative estimation error of each colliding device. Degenerate trials
// (empty serving set, zero ground truth) yield non-finite samples.
func RunTrial(sys model.SystemConfig, setup signal.Setup, r signal.Realization, pair lookup.BestPair, est estimator.Estimator) []float64 {
	y := signal.Received(setup, r, sys.UplinkPower, sys.PilotLength)
	norms := signal.APNorms(y)
	activities := selection.Activities(norms, sys.NumAntennas, sys.NoisePower)
	serving := selection.ServingSet(activities, pair.Lmax)
	precoded := signal.Precode(y, serving, sys.DownlinkPower, est.Normalization(), activities, sys.NoisePower)

	// Ground truth: total UL power of all colliding devices over the
	// serving set, shared within the trial.
	var alphaTrue float64
	for k := range setup.Gains {
		for _, l := range serving {
			alphaTrue += setup.Gains[k][l]
		}
	}
	alphaTrue *= sys.UplinkPower * sys.PilotLength

	collisionSize := len(setup.Gains)
	samples := make([]float64, collisionSize)
	for k := 0; k < collisionSize; k++ {
		z := signal.DownlinkObservation(setup, r, serving, precoded, sys.PilotLength, k)
		neighbors := selection.NeighborSet(setup.Gains[k], sys.DownlinkPower, sys.NoisePower, pair.Csize)

		contribs := make([]float64, len(neighbors))
		var gamma float64
		for i, l := range neighbors {
			contribs[i] = math.Sqrt(sys.DownlinkPower*sys.UplinkPower) * sys.PilotLength * setup.Gains[k][l]
			gamma += setup.Gains[k][l]
		}
		gamma *= sys.UplinkPower * sys.PilotLength

		alphahat := estimator.Clamp(est.Estimate(estimator.Observation{Z: z, Contribs: contribs}), gamma)
		diff := alphahat - alphaTrue
		samples[k] = diff * diff / (alphaTrue * alphaTrue)
	}
	return samples
}
