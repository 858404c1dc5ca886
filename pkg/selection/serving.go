// Package selection implements the pilot-serving AP set and the per-device
// nearby AP set of the spatial-separability scheme.
package selection

import "sort"

// Activities computes the per-AP pilot activity estimate from the received
// signal norms. Values below the noise floor carry no meaningful signal and
// are zeroed.
func Activities(norms []float64, numAntennas int, sigma2 float64) []float64 {
	a := make([]float64, len(norms))
	for l, norm := range norms {
		a[l] = norm * norm / float64(numAntennas)
		if a[l] < sigma2 {
			a[l] = 0
		}
	}
	return a
}

// ServingSet selects the pilot-serving AP set: the lmax APs with the highest
// activity estimate, dropping any whose activity is exactly zero. The result
// may hold fewer than lmax APs and is empty when no AP detected activity.
func ServingSet(activities []float64, lmax int) []int {
	idx := make([]int, len(activities))
	for l := range idx {
		idx[l] = l
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return activities[idx[i]] < activities[idx[j]]
	})

	if lmax > len(idx) {
		lmax = len(idx)
	}
	serving := make([]int, 0, lmax)
	for _, l := range idx[len(idx)-lmax:] {
		if activities[l] != 0 {
			serving = append(serving, l)
		}
	}
	return serving
}
