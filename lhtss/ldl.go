package lhtss

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Growth bound for the Bunch-Kaufman pivot choice, (1+√17)/8.
var bk_alpha = (1 + math.Sqrt(17)) / 8

// ldl holds the Bunch-Kaufman factorization A = P·L·B·Lᵀ·Pᵀ of a symmetric
// matrix, with B block diagonal made of 1×1 and 2×2 blocks.
//
// The factors are stored row-major in the lower triangle of a: the diagonal
// blocks of B on and just below the diagonal, the multipliers of L below
// them.
// ipiv follows the LAPACK convention: ipiv[k] >= 0 means a 1×1 block with
// rows k and ipiv[k] interchanged, ipiv[k] == ipiv[k+1] < 0 means a 2×2 block
// at k, k+1 with rows k+1 and -ipiv[k]-1 interchanged.
type ldl struct {
	n     int
	a     []float64
	ipiv  []int
	anorm float64
}

// factorize_symmetric factors the symmetric matrix s into its own
// workspace, s is not modified.
func factorize_symmetric(s *mat.SymDense) (*ldl, error) {
	n := s.SymmetricDim()
	f := &ldl{n: n, a: make([]float64, n*n), ipiv: make([]int, n), anorm: s.Norm(1)}
	a := f.a
	for i := range n {
		for j := range i + 1 {
			a[i*n+j] = s.At(i, j)
		}
	}
	for k := 0; k < n; {
		kstep := 1
		absakk := math.Abs(a[k*n+k])
		imax, colmax := k, 0.0
		for i := k + 1; i < n; i++ {
			if v := math.Abs(a[i*n+k]); v > colmax {
				imax, colmax = i, v
			}
		}
		if mx := max(absakk, colmax); mx == 0 || math.IsNaN(mx) {
			return nil, fmt.Errorf("%w: zero pivot in column %d", ErrSingular, k)
		}
		var kp int
		if absakk >= bk_alpha*colmax {
			kp = k
		} else {
			rowmax := 0.0
			for j := k; j < imax; j++ {
				rowmax = max(rowmax, math.Abs(a[imax*n+j]))
			}
			for j := imax + 1; j < n; j++ {
				rowmax = max(rowmax, math.Abs(a[j*n+imax]))
			}
			switch {
			case absakk >= bk_alpha*colmax*(colmax/rowmax):
				kp = k
			case math.Abs(a[imax*n+imax]) >= bk_alpha*rowmax:
				kp = imax
			default:
				kp = imax
				kstep = 2
			}
		}
		// interchange rows and columns kk and kp of the trailing submatrix
		kk := k + kstep - 1
		if kp != kk {
			for i := kp + 1; i < n; i++ {
				a[i*n+kk], a[i*n+kp] = a[i*n+kp], a[i*n+kk]
			}
			for j := kk + 1; j < kp; j++ {
				a[j*n+kk], a[kp*n+j] = a[kp*n+j], a[j*n+kk]
			}
			a[kk*n+kk], a[kp*n+kp] = a[kp*n+kp], a[kk*n+kk]
			if kstep == 2 {
				a[(k+1)*n+k], a[kp*n+k] = a[kp*n+k], a[(k+1)*n+k]
			}
		}
		if kstep == 1 {
			r1 := 1 / a[k*n+k]
			for j := k + 1; j < n; j++ {
				t := r1 * a[j*n+k]
				for i := j; i < n; i++ {
					a[i*n+j] -= a[i*n+k] * t
				}
			}
			for i := k + 1; i < n; i++ {
				a[i*n+k] *= r1
			}
			f.ipiv[k] = kp
		} else {
			if k < n-2 {
				d21 := a[(k+1)*n+k]
				d11 := a[(k+1)*n+k+1] / d21
				d22 := a[k*n+k] / d21
				t := 1 / (d11*d22 - 1)
				d21 = t / d21
				for j := k + 2; j < n; j++ {
					wk := d21 * (d11*a[j*n+k] - a[j*n+k+1])
					wkp1 := d21 * (d22*a[j*n+k+1] - a[j*n+k])
					for i := j; i < n; i++ {
						a[i*n+j] -= a[i*n+k]*wk + a[i*n+k+1]*wkp1
					}
					a[j*n+k] = wk
					a[j*n+k+1] = wkp1
				}
			}
			f.ipiv[k] = -(kp + 1)
			f.ipiv[k+1] = -(kp + 1)
		}
		k += kstep
	}
	return f, nil
}

// solve overwrites b with the solution x of A·x = b.
func (f *ldl) solve(b []float64) {
	n, a := f.n, f.a
	// P·L·B
	for k := 0; k < n; {
		if f.ipiv[k] >= 0 {
			if kp := f.ipiv[k]; kp != k {
				b[k], b[kp] = b[kp], b[k]
			}
			for i := k + 1; i < n; i++ {
				b[i] -= a[i*n+k] * b[k]
			}
			b[k] /= a[k*n+k]
			k++
			continue
		}
		if kp := -f.ipiv[k] - 1; kp != k+1 {
			b[k+1], b[kp] = b[kp], b[k+1]
		}
		for i := k + 2; i < n; i++ {
			b[i] -= a[i*n+k]*b[k] + a[i*n+k+1]*b[k+1]
		}
		akm1k := a[(k+1)*n+k]
		akm1 := a[k*n+k] / akm1k
		ak := a[(k+1)*n+k+1] / akm1k
		denom := akm1*ak - 1
		bkm1 := b[k] / akm1k
		bk := b[k+1] / akm1k
		b[k] = (ak*bkm1 - bk) / denom
		b[k+1] = (akm1*bk - bkm1) / denom
		k += 2
	}
	// Lᵀ·Pᵀ
	for k := n - 1; k >= 0; {
		if f.ipiv[k] >= 0 {
			for j := k + 1; j < n; j++ {
				b[k] -= a[j*n+k] * b[j]
			}
			if kp := f.ipiv[k]; kp != k {
				b[k], b[kp] = b[kp], b[k]
			}
			k--
			continue
		}
		for j := k + 1; j < n; j++ {
			b[k] -= a[j*n+k] * b[j]
			b[k-1] -= a[j*n+k-1] * b[j]
		}
		if kp := -f.ipiv[k] - 1; kp != k {
			b[k], b[kp] = b[kp], b[k]
		}
		k -= 2
	}
}

// rcond returns the reciprocal of the 1-norm condition number of the
// factored matrix, 1/(‖A‖₁·‖A⁻¹‖₁). ‖A⁻¹‖₁ is computed exactly, one column
// at a time, which costs the same order as the factorization itself. NaN is
// returned when the inverse has non-finite entries.
func (f *ldl) rcond() float64 {
	col := make([]float64, f.n)
	inorm := 0.0
	for j := range f.n {
		clear(col)
		col[j] = 1
		f.solve(col)
		s := 0.0
		for _, x := range col {
			s += math.Abs(x)
		}
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return math.NaN()
		}
		inorm = max(inorm, s)
	}
	if inorm == 0 || f.anorm == 0 {
		return 0
	}
	return 1 / (f.anorm * inorm)
}
