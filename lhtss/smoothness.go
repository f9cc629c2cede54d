package lhtss

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// BuildSmoothnessMatrix returns the n×n roughness penalty used by Solve,
// stored as a symmetric band matrix with one off-diagonal.
//
// It is twice the Gram matrix of the first difference operator over n
// spectral bins: 4 on the interior diagonal, 2 on the first and last
// diagonal entries (free boundaries), -2 on both off-diagonals. Every row
// sums to zero and the matrix is symmetric positive semidefinite, with the
// constant vectors as its null space. For n == 1 there are no neighbours and
// the result is the 1×1 zero matrix.
//
// Panics if n < 1.
func BuildSmoothnessMatrix(n int) *mat.SymBandDense {
	switch {
	case n < 1:
		panic(fmt.Sprintf("lhtss: invalid number of spectral bins: %d", n))
	case n == 1:
		return mat.NewSymBandDense(1, 0, nil)
	}
	// row-major upper band storage: diagonal, then the entry to its right
	band := make([]float64, 2*n)
	for i := range n {
		band[2*i] = 4
		if i < n-1 {
			band[2*i+1] = -2
		}
	}
	band[0] = 2
	band[2*(n-1)] = 2
	return mat.NewSymBandDense(n, 1, band)
}
