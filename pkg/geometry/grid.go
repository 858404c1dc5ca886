// Package geometry builds the fixed access-point deployment.
package geometry

import "math"

// APGrid returns numAPs positions centered on the cells of a square
// sqrt(numAPs) x sqrt(numAPs) grid covering [0, squareLength]^2. Positions
// are complex coordinates, real part x and imaginary part y, ordered
// row-major by y then x. numAPs must be a perfect square.
func APGrid(numAPs int, squareLength float64) []complex128 {
	perDim := int(math.Sqrt(float64(numAPs)))
	spacing := squareLength / float64(perDim)

	axis := make([]float64, perDim)
	for i := range axis {
		axis[i] = spacing*float64(i+1) - spacing/2
	}

	positions := make([]complex128, 0, numAPs)
	for _, y := range axis {
		for _, x := range axis {
			positions = append(positions, complex(x, y))
		}
	}
	return positions
}
