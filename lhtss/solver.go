package lhtss

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var _ = fmt.Print

const (
	DefaultMaxIterations = 100
	DefaultTolerance     = 1e-8

	// Jacobians with a reciprocal condition number below this are treated
	// as singular.
	min_rcond = 0x1p-52

	// Beyond this |z| sech²(z) is below 4e-13, the bin is pinned at 0 or 1
	// and no longer responds to the constraints.
	saturated_z = 15
)

// Config controls the Newton iteration.
type Config struct {
	// MaxIterations is the number of Newton steps after which the solve is
	// abandoned with ErrNonConvergence. Must be positive.
	MaxIterations int
	// Tolerance is the bound on the largest absolute component of the KKT
	// residual for the solve to be considered converged. Must be positive.
	Tolerance float64
}

// DefaultConfig returns 100 iterations and a tolerance of 1e-8.
func DefaultConfig() Config {
	return Config{MaxIterations: DefaultMaxIterations, Tolerance: DefaultTolerance}
}

// Validate returns an error wrapping ErrConfiguration if c cannot be used.
func (c Config) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: MaxIterations must be positive, got %d", ErrConfiguration, c.MaxIterations)
	}
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 1) {
		return fmt.Errorf("%w: Tolerance must be positive and finite, got %v", ErrConfiguration, c.Tolerance)
	}
	return nil
}

// Result is the output of a successful Solve.
type Result struct {
	// Reflectance has one value per spectral bin, each strictly inside (0,1).
	Reflectance []float64
	// Iterations is the number of Newton steps taken.
	Iterations int
	// Residual is the largest absolute KKT residual component at the last
	// tested iterate, below Config.Tolerance.
	Residual float64
}

// Reflectance maps a latent profile to reflectance, (tanh(z)+1)/2 written
// as the logistic function of 2z so small reflectances keep their
// precision instead of cancelling to zero.
func Reflectance(z float64) float64 {
	return 1 / (1 + math.Exp(-2*z))
}

func is_finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func is_finite_symmetric(d mat.Symmetric) bool {
	n := d.SymmetricDim()
	for i := range n {
		for j := i; j < n; j++ {
			if !is_finite(d.At(i, j)) {
				return false
			}
		}
	}
	return true
}

// saturated_bin returns the first bin whose latent value has run off to
// where the reflectance is pinned at 0 or 1, or -1.
func saturated_bin(z []float64) int {
	for i, x := range z {
		if !(math.Abs(x) <= saturated_z) {
			return i
		}
	}
	return -1
}

var channel_names = [3]string{"X", "Y", "Z"}

// check_reachable rejects targets that no reflectance in (0,1) can produce.
// This is only a per channel test, and only for channels whose weighted
// CMF column is non-negative, passing it does not guarantee convergence.
func check_reachable(cw CMF, target [3]float64) error {
	for c := range 3 {
		hi, nonneg := 0.0, true
		for _, row := range cw {
			if row[c] < 0 {
				nonneg = false
				break
			}
			hi += row[c]
		}
		if nonneg && (target[c] <= 0 || target[c] >= hi) {
			return fmt.Errorf("%w: target %s=%v is outside the reachable range (0, %v)", ErrNonConvergence, channel_names[c], target[c], hi)
		}
	}
	return nil
}

// Solve returns the smoothest reflectance, in the sense of the matrix d,
// whose tristimulus value under the weighted color matching functions cw
// equals target.
//
// d must be n×n where n = len(cw), typically from BuildSmoothnessMatrix. The state (z, λ) starts at zero and
// each step solves the KKT system J·Δ = -f with a symmetric indefinite
// factorization. The solve succeeds once max|f| < cfg.Tolerance, returning
// the reflectance after that final step.
//
// Errors wrap ErrConfiguration for bad inputs, ErrNonConvergence when the
// target is out of reach or the iteration cap is hit, and ErrNumerical when
// a step cannot be computed reliably. A step that breaks down because the
// iterate has saturated, the usual fate of a target outside the set of
// reachable colors, wraps both ErrNonConvergence and ErrNumerical. No partial reflectance is returned on
// failure. Solve has no side effects other than debug logging and is safe to
// call concurrently with shared d and cw.
func Solve(d mat.Symmetric, cw CMF, target [3]float64, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	n := len(cw)
	if n == 0 {
		return Result{}, fmt.Errorf("%w: empty color matching function table", ErrConfiguration)
	}
	if d == nil || d.SymmetricDim() != n {
		sz := 0
		if d != nil {
			sz = d.SymmetricDim()
		}
		return Result{}, fmt.Errorf("%w: smoothness matrix is %dx%d but there are %d spectral bins", ErrConfiguration, sz, sz, n)
	}
	if !is_finite_symmetric(d) {
		return Result{}, fmt.Errorf("%w: smoothness matrix has non-finite entries", ErrConfiguration)
	}
	for i, row := range cw {
		if !is_finite(row[0]) || !is_finite(row[1]) || !is_finite(row[2]) {
			return Result{}, fmt.Errorf("%w: non-finite weighted CMF value in row %d", ErrConfiguration, i)
		}
	}
	for c, x := range target {
		if !is_finite(x) {
			return Result{}, fmt.Errorf("%w: non-finite target %s=%v", ErrConfiguration, channel_names[c], x)
		}
	}
	if err := check_reachable(cw, target); err != nil {
		Logger().Debug("lhtss: unreachable target", "target", target, "error", err)
		return Result{}, err
	}
	s := newSolveState(d, cw, target)
	residual := math.Inf(1)
	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		var err error
		residual, err = s.step()
		if err != nil {
			Logger().Debug("lhtss: step failed", "iteration", iter, "error", err)
			if bin := saturated_bin(s.z); bin > -1 {
				return Result{}, fmt.Errorf("%w: target is likely unreachable, reflectance saturated at bin %d: %w: iteration %d: %w",
					ErrNonConvergence, bin, ErrNumerical, iter, err)
			}
			return Result{}, fmt.Errorf("%w: iteration %d: %w", ErrNumerical, iter, err)
		}
		Logger().Debug("lhtss: newton step", "iteration", iter, "residual", residual)
		if residual < cfg.Tolerance {
			rho := make([]float64, n)
			for i, z := range s.z {
				rho[i] = Reflectance(z)
				if !(rho[i] > 0 && rho[i] < 1) {
					return Result{}, fmt.Errorf("%w: reflectance at bin %d saturated to %v", ErrNumerical, i, rho[i])
				}
			}
			return Result{Reflectance: rho, Iterations: iter, Residual: residual}, nil
		}
	}
	Logger().Debug("lhtss: iteration cap reached", "iterations", cfg.MaxIterations, "residual", residual)
	return Result{}, fmt.Errorf("%w: residual %v after %d iterations (tolerance %v)", ErrNonConvergence, residual, cfg.MaxIterations, cfg.Tolerance)
}

// solveState holds the iterate and all per step scratch space of one solve.
type solveState struct {
	d      mat.Symmetric
	cw     CMF
	target [3]float64
	n, m   int

	z, lambda []float64
	rho       []float64
	d1, d2    []float64 // diagonals of ∂ρ/∂z and ∂²ρ/∂z²
	cwl       []float64 // Cw·λ
	f         []float64

	zv, dz *mat.VecDense // views of z and f[:n]
	jac    *mat.SymDense
}

func newSolveState(d mat.Symmetric, cw CMF, target [3]float64) *solveState {
	n := len(cw)
	m := n + 3
	s := &solveState{
		d: d, cw: cw, target: target, n: n, m: m,
		z: make([]float64, n), lambda: make([]float64, 3),
		rho: make([]float64, n), d1: make([]float64, n), d2: make([]float64, n),
		cwl: make([]float64, n), f: make([]float64, m),
		jac: mat.NewSymDense(m, nil),
	}
	s.zv = mat.NewVecDense(n, s.z)
	s.dz = mat.NewVecDense(n, s.f[:n])
	return s
}

// step evaluates the residual at the current iterate, applies one Newton
// update and returns max|f| of the residual it evaluated.
func (s *solveState) step() (residual float64, err error) {
	n, m := s.n, s.m
	lam := s.lambda
	for i, z := range s.z {
		t := math.Tanh(z)
		c := math.Cosh(z)
		sech2 := 1 / (c * c)
		s.rho[i] = Reflectance(z)
		s.d1[i] = sech2 / 2
		s.d2[i] = -sech2 * t
		row := s.cw[i]
		s.cwl[i] = row[0]*lam[0] + row[1]*lam[1] + row[2]*lam[2]
	}

	// f = [D·z + d1·Cw·λ; Cwᵀ·ρ - target]
	f := s.f
	s.dz.MulVec(s.d, s.zv)
	for i := range n {
		f[i] += s.d1[i] * s.cwl[i]
	}
	xyz := s.cw.Tristimulus(s.rho)
	for c := range 3 {
		f[n+c] = xyz[c] - s.target[c]
	}
	for _, x := range f {
		if !is_finite(x) {
			return 0, fmt.Errorf("non-finite residual")
		}
		residual = max(residual, math.Abs(x))
	}

	// J = [D + diag(d2·Cw·λ), d1·Cw; (d1·Cw)ᵀ, 0], upper triangle only, the
	// trailing 3×3 block stays zero
	j := s.jac
	for r := range n {
		j.SetSym(r, r, s.d.At(r, r)+s.d2[r]*s.cwl[r])
		for c := r + 1; c < n; c++ {
			j.SetSym(r, c, s.d.At(r, c))
		}
		for c := range 3 {
			j.SetSym(r, n+c, s.d1[r]*s.cw[r][c])
		}
	}
	fac, err := factorize_symmetric(j)
	if err != nil {
		return 0, err
	}
	if rc := fac.rcond(); !(rc >= min_rcond) {
		return 0, fmt.Errorf("%w: ill-conditioned jacobian, reciprocal condition number %v", ErrSingular, rc)
	}
	delta := make([]float64, m)
	for i, x := range f {
		delta[i] = -x
	}
	fac.solve(delta)
	for _, x := range delta {
		if !is_finite(x) {
			return 0, fmt.Errorf("non-finite newton step")
		}
	}
	for i := range n {
		s.z[i] += delta[i]
	}
	for c := range 3 {
		lam[c] += delta[n+c]
	}
	return residual, nil
}
