package reflectance

import (
	"fmt"

	"github.com/kovidgoyal/go-parallel"
	"github.com/kovidgoyal/reflectance/colorconv"
)

// reconstruct_all runs the independent solves f(0) ... f(n-1) spread
// over all CPUs. The returned error is that of the lowest failing index.
func reconstruct_all(n int, f func(int) (Spectrum, error)) ([]Spectrum, error) {
	ans := make([]Spectrum, n)
	if n == 0 {
		return ans, nil
	}
	errs := make([]error, n)
	if err := parallel.Run_in_parallel_over_range(0, func(start, limit int) {
		for i := start; i < limit; i++ {
			ans[i], errs[i] = f(i)
		}
	}, 0, n); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
	}
	return ans, nil
}

// FromSRGBAll reconstructs many colors concurrently. The result is
// identical to calling FromSRGB on each color in turn.
func (r *Reconstructor) FromSRGBAll(colors []RGB) ([]Spectrum, error) {
	return reconstruct_all(len(colors), func(i int) (Spectrum, error) { return r.FromSRGB(colors[i]) })
}

// FromXYZAll reconstructs many XYZ values concurrently.
func (r *Reconstructor) FromXYZAll(xyz []colorconv.Vec3) ([]Spectrum, error) {
	return reconstruct_all(len(xyz), func(i int) (Spectrum, error) { return r.FromXYZ(xyz[i]) })
}
