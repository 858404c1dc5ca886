package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivitiesZeroesBelowNoiseFloor(t *testing.T) {
	// norms^2/N: 4, 1, 0.25 with N=4 gives 4, 1, 0.0625; sigma2=1 zeroes the
	// last and keeps the exact-floor value.
	a := Activities([]float64{4, 2, 0.5}, 4, 1)
	assert.Equal(t, []float64{4, 1, 0}, a)
}

func TestServingSetPicksHighestActivities(t *testing.T) {
	a := []float64{3, 9, 1, 7, 5}
	serving := ServingSet(a, 3)
	assert.ElementsMatch(t, []int{1, 3, 4}, serving)
}

func TestServingSetDropsZeroActivity(t *testing.T) {
	// Fewer nonzero APs than lmax: the zero-floor entries must not serve.
	a := []float64{0, 6, 0, 2, 0}
	serving := ServingSet(a, 4)
	assert.ElementsMatch(t, []int{1, 3}, serving)
}

func TestServingSetEmptyWhenNoActivity(t *testing.T) {
	serving := ServingSet([]float64{0, 0, 0}, 2)
	assert.Empty(t, serving)
}

func TestServingSetLmaxLargerThanAPCount(t *testing.T) {
	a := []float64{2, 4}
	serving := ServingSet(a, 10)
	assert.ElementsMatch(t, []int{0, 1}, serving)
}
