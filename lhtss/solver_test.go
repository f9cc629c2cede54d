package lhtss

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/kovidgoyal/reflectance/cie"
	"github.com/kovidgoyal/reflectance/colorconv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var _ = fmt.Print

func reference_setup(t *testing.T) (*mat.SymBandDense, CMF) {
	t.Helper()
	cmfs := CMF(cie.CMF1931D65())
	_, cw, err := WeightCMF(cmfs, cie.EqualEnergy(len(cmfs)))
	require.NoError(t, err)
	return BuildSmoothnessMatrix(len(cw)), cw
}

func srgb_target(r, g, b uint8) [3]float64 {
	return colorconv.LinearRGBToXYZ(colorconv.Vec3{colorconv.From8Bit(r), colorconv.From8Bit(g), colorconv.From8Bit(b)})
}

func assert_bounded(t *testing.T, rho []float64) {
	t.Helper()
	for i, x := range rho {
		if !(x > 0 && x < 1) {
			t.Fatalf("reflectance at bin %d is %v, not inside (0,1)", i, x)
		}
	}
}

func TestSolveNeutral(t *testing.T) {
	d, cw := reference_setup(t)
	half := make([]float64, len(cw))
	for i := range half {
		half[i] = 0.5
	}
	res, err := Solve(d, cw, cw.Tristimulus(half), DefaultConfig())
	require.NoError(t, err)
	require.Less(t, res.Iterations, 10)
	require.Len(t, res.Reflectance, len(cw))
	for _, x := range res.Reflectance {
		require.InDelta(t, 0.5, x, 1e-9)
	}
}

func TestSolveReproducesTarget(t *testing.T) {
	d, cw := reference_setup(t)
	testCases := []struct {
		name    string
		r, g, b uint8
	}{
		{"ultramarine", 0, 33, 133},
		{"cadmium yellow", 252, 211, 0},
		{"gray", 128, 128, 128},
		{"red", 255, 0, 0},
		{"green", 0, 255, 0},
		{"blue", 0, 0, 255},
		{"cyan", 0, 255, 255},
		{"magenta", 255, 0, 255},
		{"near black", 1, 1, 1},
		{"near white", 254, 254, 254},
		{"dim red", 1, 0, 0},
		{"leaf", 10, 200, 30},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			target := srgb_target(tc.r, tc.g, tc.b)
			res, err := Solve(d, cw, target, DefaultConfig())
			require.NoError(t, err)
			assert_bounded(t, res.Reflectance)
			assert.Less(t, res.Residual, DefaultTolerance)
			assert.LessOrEqual(t, res.Iterations, 30)
			got := cw.Tristimulus(res.Reflectance)
			for c := range 3 {
				assert.InDelta(t, target[c], got[c], 1e-8, "channel %d", c)
			}
		})
	}
}

func TestSolveExactlyDetermined(t *testing.T) {
	// three bins and three independent constraints leave a single feasible
	// reflectance, whatever the smoothness penalty
	cw := CMF{{0.2, 0.1, 0.3}, {0.3, 0.5, 0.1}, {0.1, 0.4, 0.2}}
	want := []float64{0.2, 0.6, 0.45}
	res, err := Solve(BuildSmoothnessMatrix(3), cw, cw.Tristimulus(want), DefaultConfig())
	require.NoError(t, err)
	for i := range want {
		require.InDelta(t, want[i], res.Reflectance[i], 1e-8)
	}
}

func TestSolveDeterministic(t *testing.T) {
	d, cw := reference_setup(t)
	target := srgb_target(0, 33, 133)
	a, err := Solve(d, cw, target, DefaultConfig())
	require.NoError(t, err)
	b, err := Solve(d, cw, target, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, a, b)

	cfg := Config{MaxIterations: 2, Tolerance: DefaultTolerance}
	_, err1 := Solve(d, cw, target, cfg)
	_, err2 := Solve(d, cw, target, cfg)
	require.ErrorIs(t, err1, ErrNonConvergence)
	require.Equal(t, err1.Error(), err2.Error())
}

func TestSolveConcurrent(t *testing.T) {
	d, cw := reference_setup(t)
	targets := [][3]float64{
		srgb_target(0, 33, 133), srgb_target(252, 211, 0), srgb_target(200, 100, 50),
		srgb_target(30, 60, 90), srgb_target(240, 240, 240), srgb_target(90, 10, 200),
	}
	want := make([]Result, len(targets))
	for i, target := range targets {
		res, err := Solve(d, cw, target, DefaultConfig())
		require.NoError(t, err)
		want[i] = res
	}
	got := make([]Result, len(targets))
	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i], errs[i] = Solve(d, cw, target, DefaultConfig())
		}()
	}
	wg.Wait()
	for i := range targets {
		require.NoError(t, errs[i])
		require.Equal(t, want[i], got[i])
	}
}

func TestSolveOutOfGamut(t *testing.T) {
	d, cw := reference_setup(t)
	white := cw.ColumnSums()
	testCases := []struct {
		name   string
		target [3]float64
	}{
		{"brighter than the perfect reflector", [3]float64{1.2 * white[0], 1.2 * white[1], 1.2 * white[2]}},
		{"exactly the perfect reflector", white},
		{"black", [3]float64{}},
		{"negative", [3]float64{-0.1, 0.2, 0.2}},
		{"one channel too high", [3]float64{0.3, 0.3, 1.5}},
		{"srgb white", srgb_target(255, 255, 255)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Solve(d, cw, tc.target, DefaultConfig())
			require.ErrorIs(t, err, ErrNonConvergence)
			require.Nil(t, res.Reflectance)
		})
	}
}

func TestSolveUnreachableInsideBox(t *testing.T) {
	// every channel is within (0, column sum) but no reflectance produces
	// these combinations, the iterate runs off until the jacobian degenerates
	d, cw := reference_setup(t)
	for _, target := range [][3]float64{
		{0.855, 0.01, 0.01},
		{0.01, 0.9, 0.01},
		{0.5, 0.01, 0.9},
		{0.9, 0.3, 0.9},
		{0.3, 0.9, 0.05},
		{0.01, 0.01, 0.5},
	} {
		t.Run(fmt.Sprint(target), func(t *testing.T) {
			require.NoError(t, check_reachable(cw, target))
			res, err := Solve(d, cw, target, DefaultConfig())
			require.ErrorIs(t, err, ErrNonConvergence)
			require.Nil(t, res.Reflectance)
		})
	}
}

func TestSaturatedBin(t *testing.T) {
	require.Equal(t, -1, saturated_bin([]float64{0, -3, 14.9}))
	require.Equal(t, 1, saturated_bin([]float64{0, -15.5, 40}))
	require.Equal(t, 0, saturated_bin([]float64{math.NaN()}))
}

func TestSolveIterationCap(t *testing.T) {
	d, cw := reference_setup(t)
	res, err := Solve(d, cw, srgb_target(0, 33, 133), Config{MaxIterations: 1, Tolerance: DefaultTolerance})
	require.ErrorIs(t, err, ErrNonConvergence)
	require.NotErrorIs(t, err, ErrNumerical)
	require.Nil(t, res.Reflectance)
	// a relaxed cap lets the same target through
	res, err = Solve(d, cw, srgb_target(0, 33, 133), Config{MaxIterations: 50, Tolerance: DefaultTolerance})
	require.NoError(t, err)
	assert_bounded(t, res.Reflectance)
}

func TestSolveSingularJacobian(t *testing.T) {
	d, cw := reference_setup(t)
	// X and Y constraints identical, so the KKT system is rank deficient
	dup := make(CMF, len(cw))
	for i, row := range cw {
		dup[i] = [3]float64{row[0], row[0], row[2]}
	}
	rho := make([]float64, len(dup))
	for i := range rho {
		rho[i] = 0.3
	}
	res, err := Solve(d, dup, dup.Tristimulus(rho), DefaultConfig())
	require.ErrorIs(t, err, ErrNumerical)
	require.ErrorIs(t, err, ErrSingular)
	require.NotErrorIs(t, err, ErrNonConvergence)
	require.Nil(t, res.Reflectance)
}

func TestSolveConfigurationErrors(t *testing.T) {
	d, cw := reference_setup(t)
	target := srgb_target(128, 128, 128)
	testCases := []struct {
		name   string
		d      mat.Symmetric
		cw     CMF
		target [3]float64
		cfg    Config
	}{
		{"zero iterations", d, cw, target, Config{MaxIterations: 0, Tolerance: 1e-8}},
		{"zero tolerance", d, cw, target, Config{MaxIterations: 10}},
		{"nan tolerance", d, cw, target, Config{MaxIterations: 10, Tolerance: math.NaN()}},
		{"inf tolerance", d, cw, target, Config{MaxIterations: 10, Tolerance: math.Inf(1)}},
		{"nil matrix", nil, cw, target, DefaultConfig()},
		{"size mismatch", BuildSmoothnessMatrix(10), cw, target, DefaultConfig()},
		{"empty table", d, CMF{}, target, DefaultConfig()},
		{"nan target", d, cw, [3]float64{math.NaN(), 0.2, 0.2}, DefaultConfig()},
		{"nan table", BuildSmoothnessMatrix(1), CMF{{math.NaN(), 1, 1}}, target, DefaultConfig()},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Solve(tc.d, tc.cw, tc.target, tc.cfg)
			require.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestMixingStaysBounded(t *testing.T) {
	d, cw := reference_setup(t)
	a, err := Solve(d, cw, srgb_target(0, 33, 133), DefaultConfig())
	require.NoError(t, err)
	b, err := Solve(d, cw, srgb_target(252, 211, 0), DefaultConfig())
	require.NoError(t, err)
	mixed := make([]float64, len(cw))
	for i := range mixed {
		mixed[i] = math.Sqrt(a.Reflectance[i] * b.Reflectance[i])
	}
	assert_bounded(t, mixed)
}

func TestReflectance(t *testing.T) {
	for _, z := range []float64{-5, -1, -0.1, 0, 0.3, 2, 7} {
		require.InDelta(t, (math.Tanh(z)+1)/2, Reflectance(z), 1e-15)
	}
	require.Greater(t, Reflectance(-30), 0.0)
}
