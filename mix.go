package reflectance

import (
	"fmt"
	"math"
)

// Mix combines two reflectances as the weighted geometric mean
// a^(1-t)·b^t, bin by bin. t = 0 gives a, t = 1 gives b and t = 0.5 the
// plain geometric mean √(a·b). The result stays in [0,1] whenever the
// inputs do.
func Mix(a, b Spectrum, t float64) (Spectrum, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: cannot mix spectra with %d and %d bins", ErrInvalidSpectrum, len(a), len(b))
	}
	if !(t >= 0 && t <= 1) {
		return nil, fmt.Errorf("%w: mixing ratio %v is not in [0,1]", ErrInvalidSpectrum, t)
	}
	ans := make(Spectrum, len(a))
	for i := range a {
		x, y := a[i], b[i]
		if !(x >= 0 && x <= 1) || !(y >= 0 && y <= 1) {
			return nil, fmt.Errorf("%w: value outside [0,1] at bin %d", ErrInvalidSpectrum, i)
		}
		switch t {
		case 0:
			ans[i] = x
		case 1:
			ans[i] = y
		case 0.5:
			ans[i] = math.Sqrt(x * y)
		default:
			ans[i] = math.Pow(x, 1-t) * math.Pow(y, t)
		}
	}
	return ans, nil
}

// MixSRGB mixes two sRGB colors like paints: both are reconstructed as
// reflectances (concurrently), mixed with Mix and converted back to sRGB.
func (r *Reconstructor) MixSRGB(a, b RGB, t float64) (RGB, error) {
	spectra, err := r.FromSRGBAll([]RGB{a, b})
	if err != nil {
		return RGB{}, err
	}
	m, err := Mix(spectra[0], spectra[1], t)
	if err != nil {
		return RGB{}, err
	}
	return r.SRGB(m), nil
}
