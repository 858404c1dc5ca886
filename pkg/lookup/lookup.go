// Package lookup provides the precomputed selection tables consumed by the
// simulation. The tables are produced offline and read-only here; a missing
// entry is a fatal configuration error.
package lookup

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// BestPair is the precomputed (Csize, Lmax) selection-set sizing for one
// (collision size, antennas per AP) operating point.
type BestPair struct {
	Csize int
	Lmax  int
}

type bestPairEntry struct {
	CollisionSize int `yaml:"collisionSize"`
	NumAntennas   int `yaml:"numAntennas"`
	Csize         int `yaml:"csize"`
	Lmax          int `yaml:"lmax"`
}

type deltaEntry struct {
	CollisionSize int     `yaml:"collisionSize"`
	NumAntennas   int     `yaml:"numAntennas"`
	Lmax          int     `yaml:"lmax"`
	Delta         float64 `yaml:"delta"`
}

type bestPairFile struct {
	BestPair []bestPairEntry `yaml:"bestPair"`
}

type deltaFile struct {
	Delta []deltaEntry `yaml:"delta"`
}

type pairKey struct {
	collisionSize int
	numAntennas   int
}

type deltaKey struct {
	collisionSize int
	numAntennas   int
	lmax          int
}

// Tables holds the loaded lookup tables.
type Tables struct {
	bestPair map[pairKey]BestPair
	delta    map[deltaKey]float64
}

// Load reads the best-pair table and, when deltaPath is non-empty, the delta
// compensation table.
func Load(bestPairPath, deltaPath string) (*Tables, error) {
	t := &Tables{
		bestPair: map[pairKey]BestPair{},
		delta:    map[deltaKey]float64{},
	}

	data, err := os.ReadFile(bestPairPath)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read best-pair lookup table")
	}
	var bp bestPairFile
	if err := yaml.Unmarshal(data, &bp); err != nil {
		return nil, errors.Wrapf(err, "unable to parse best-pair lookup table %q", bestPairPath)
	}
	for _, e := range bp.BestPair {
		t.bestPair[pairKey{e.CollisionSize, e.NumAntennas}] = BestPair{Csize: e.Csize, Lmax: e.Lmax}
	}

	if deltaPath != "" {
		data, err := os.ReadFile(deltaPath)
		if err != nil {
			return nil, errors.Wrap(err, "unable to read delta lookup table")
		}
		var df deltaFile
		if err := yaml.Unmarshal(data, &df); err != nil {
			return nil, errors.Wrapf(err, "unable to parse delta lookup table %q", deltaPath)
		}
		for _, e := range df.Delta {
			t.delta[deltaKey{e.CollisionSize, e.NumAntennas, e.Lmax}] = e.Delta
		}
	}
	return t, nil
}

// BestPair returns the selection-set sizing for the given operating point.
func (t *Tables) BestPair(collisionSize, numAntennas int) (BestPair, error) {
	pair, ok := t.bestPair[pairKey{collisionSize, numAntennas}]
	if !ok {
		return BestPair{}, errors.Errorf("no best-pair entry for collisionSize=%d numAntennas=%d",
			collisionSize, numAntennas)
	}
	return pair, nil
}

// Delta returns the compensation factor of the bias-corrected estimator.
func (t *Tables) Delta(collisionSize, numAntennas, lmax int) (float64, error) {
	delta, ok := t.delta[deltaKey{collisionSize, numAntennas, lmax}]
	if !ok {
		return 0, errors.Errorf("no delta entry for collisionSize=%d numAntennas=%d lmax=%d",
			collisionSize, numAntennas, lmax)
	}
	return delta, nil
}
