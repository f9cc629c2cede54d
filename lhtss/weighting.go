package lhtss

import (
	"fmt"
	"math"
)

// CMF is an n×3 table of color matching functions, one row per spectral
// bin, columns X, Y and Z.
type CMF [][3]float64

// Tristimulus returns Cᵀ·ρ, the XYZ value of the reflectance rho integrated
// against the table. len(rho) must equal len(c).
func (c CMF) Tristimulus(rho []float64) (ans [3]float64) {
	for i, row := range c {
		ans[0] += row[0] * rho[i]
		ans[1] += row[1] * rho[i]
		ans[2] += row[2] * rho[i]
	}
	return
}

// ColumnSums returns the tristimulus value of the perfect reflector, ρ = 1.
func (c CMF) ColumnSums() (ans [3]float64) {
	for _, row := range c {
		ans[0] += row[0]
		ans[1] += row[1]
		ans[2] += row[2]
	}
	return
}

// WeightCMF folds the illuminant into the color matching functions.
//
// scale[i] = illuminant[i] / Σₖ illuminant[k]·cmfs[k][Y] and
// weighted[i] = scale[i]·cmfs[i], so that the perfect reflector has unit
// luminance under the weighted table. The illuminant must be non-negative
// and finite, have one entry per row of cmfs and overlap the Y curve,
// otherwise an error wrapping ErrConfiguration is returned.
func WeightCMF(cmfs CMF, illuminant []float64) (scale []float64, weighted CMF, err error) {
	if len(cmfs) == 0 {
		return nil, nil, fmt.Errorf("%w: empty color matching function table", ErrConfiguration)
	}
	if len(illuminant) != len(cmfs) {
		return nil, nil, fmt.Errorf("%w: illuminant has %d values but the color matching functions have %d rows", ErrConfiguration, len(illuminant), len(cmfs))
	}
	for i, row := range cmfs {
		for _, x := range row {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, nil, fmt.Errorf("%w: non-finite color matching function value in row %d", ErrConfiguration, i)
			}
		}
	}
	den := 0.0
	for i, w := range illuminant {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, nil, fmt.Errorf("%w: invalid illuminant value %v at index %d", ErrConfiguration, w, i)
		}
		den += w * cmfs[i][1]
	}
	if den == 0 || math.IsInf(den, 0) {
		return nil, nil, fmt.Errorf("%w: illuminant has no overlap with the luminance curve", ErrConfiguration)
	}
	scale = make([]float64, len(illuminant))
	weighted = make(CMF, len(cmfs))
	for i, w := range illuminant {
		s := w / den
		scale[i] = s
		weighted[i] = [3]float64{s * cmfs[i][0], s * cmfs[i][1], s * cmfs[i][2]}
	}
	return scale, weighted, nil
}
