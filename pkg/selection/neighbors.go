package selection

import "sort"

// NeighborSet selects the nearby AP set of one device from its large-scale
// gains. The candidate set holds the csize APs with the highest local
// received power ql*gain. The natural set holds every AP whose local
// received power exceeds the noise floor; when empty it falls back to the
// single strongest AP, so the result is never empty. Whenever the natural
// set is the smaller of the two it is authoritative.
func NeighborSet(gains []float64, ql, sigma2 float64, csize int) []int {
	idx := make([]int, len(gains))
	for l := range idx {
		idx[l] = l
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return ql*gains[idx[i]] < ql*gains[idx[j]]
	})

	if csize > len(idx) {
		csize = len(idx)
	}
	candidate := idx[len(idx)-csize:]

	natural := make([]int, 0, len(gains))
	for l, g := range gains {
		if ql*g > sigma2 {
			natural = append(natural, l)
		}
	}
	if len(natural) == 0 {
		natural = []int{argmax(gains)}
	}

	if len(candidate) > len(natural) {
		return natural
	}
	neighbors := make([]int, len(candidate))
	copy(neighbors, candidate)
	return neighbors
}

func argmax(values []float64) int {
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return best
}
