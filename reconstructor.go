package reflectance

import (
	"errors"
	"fmt"
	"sync"

	"github.com/kovidgoyal/reflectance/cie"
	"github.com/kovidgoyal/reflectance/colorconv"
	"github.com/kovidgoyal/reflectance/lhtss"
	"gonum.org/v1/gonum/mat"
)

var _ = fmt.Print

// Constant reflectances used for pure black and pure white, which lie on
// the boundary of the reachable set and so cannot be solved for.
const (
	BlackReflectance = 1e-4
	WhiteReflectance = 1 - 1e-4
)

// ErrInvalidSpectrum is returned for spectra of the wrong length or with
// values outside [0,1].
var ErrInvalidSpectrum = errors.New("reflectance: invalid spectrum")

// Spectrum is a reflectance curve, one value in [0,1] per spectral bin.
type Spectrum []float64

func constant_spectrum(n int, v float64) Spectrum {
	ans := make(Spectrum, n)
	for i := range ans {
		ans[i] = v
	}
	return ans
}

// Reconstructor turns colors into reflectance spectra for one spectral
// configuration. It is immutable and safe for concurrent use.
type Reconstructor struct {
	cfg     config
	scale   []float64
	cw      lhtss.CMF
	d       *mat.SymBandDense
	toXYZ   colorconv.Mat3
	fromXYZ colorconv.Mat3
}

// New creates a Reconstructor for the color matching functions cmfs (rows
// X, Y, Z, one per spectral bin) seen under illuminant. Errors wrap
// lhtss.ErrConfiguration.
func New(cmfs [][3]float64, illuminant []float64, opts ...Option) (*Reconstructor, error) {
	cfg := defaultConfig
	for _, o := range opts {
		o(&cfg)
	}
	if err := cfg.solver.Validate(); err != nil {
		return nil, err
	}
	scale, cw, err := lhtss.WeightCMF(cmfs, illuminant)
	if err != nil {
		return nil, err
	}
	ans := &Reconstructor{cfg: cfg, scale: scale, cw: cw, d: lhtss.BuildSmoothnessMatrix(len(cw)), toXYZ: cfg.rgbToXYZ}
	if cfg.adaptWhite {
		src := cfg.rgbToXYZ.Apply(colorconv.Vec3{1, 1, 1})
		ans.toXYZ = colorconv.ChromaticAdaptationMatrix(src, cw.ColumnSums()).Multiply(cfg.rgbToXYZ)
	}
	if ans.fromXYZ, err = ans.toXYZ.Inverted(); err != nil {
		return nil, fmt.Errorf("%w: RGB to XYZ matrix: %w", lhtss.ErrConfiguration, err)
	}
	return ans, nil
}

// Default returns the shared Reconstructor for the reference
// configuration: the D65 weighted CIE 1931 table on 380–730 nm at 10 nm,
// sRGB primaries and default solver settings.
var Default = sync.OnceValue(func() *Reconstructor {
	cmfs := cie.CMF1931D65()
	ans, err := New(cmfs, cie.EqualEnergy(len(cmfs)))
	if err != nil {
		panic(err)
	}
	return ans
})

// Len returns the number of spectral bins.
func (r *Reconstructor) Len() int { return len(r.cw) }

// WeightedCMF returns a copy of the illuminant weighted color matching
// functions.
func (r *Reconstructor) WeightedCMF() lhtss.CMF { return append(lhtss.CMF(nil), r.cw...) }

// Scale returns a copy of the per bin illuminant scale factors.
func (r *Reconstructor) Scale() []float64 { return append([]float64(nil), r.scale...) }

// FromXYZ reconstructs the smoothest reflectance whose color under the
// configured illuminant is xyz. No special casing is done, targets on or
// outside the boundary of the reachable set fail with
// lhtss.ErrNonConvergence.
func (r *Reconstructor) FromXYZ(xyz colorconv.Vec3) (Spectrum, error) {
	res, err := lhtss.Solve(r.d, r.cw, xyz, r.cfg.solver)
	if err != nil {
		return nil, fmt.Errorf("reconstructing XYZ %s: %w", xyz, err)
	}
	return Spectrum(res.Reflectance), nil
}

// FromLinearRGB reconstructs a reflectance for a linear RGB color. Pure
// black and pure white (all components <= 0 or >= 1) map to the constant
// spectra BlackReflectance and WhiteReflectance without solving.
func (r *Reconstructor) FromLinearRGB(rgb colorconv.Vec3) (Spectrum, error) {
	switch {
	case rgb[0] <= 0 && rgb[1] <= 0 && rgb[2] <= 0:
		return constant_spectrum(r.Len(), BlackReflectance), nil
	case rgb[0] >= 1 && rgb[1] >= 1 && rgb[2] >= 1:
		return constant_spectrum(r.Len(), WhiteReflectance), nil
	}
	return r.FromXYZ(r.toXYZ.Apply(rgb))
}

// FromSRGB reconstructs a reflectance for an 8 bit sRGB color.
func (r *Reconstructor) FromSRGB(c RGB) (Spectrum, error) {
	ans, err := r.FromLinearRGB(colorconv.Vec3{colorconv.From8Bit(c.R), colorconv.From8Bit(c.G), colorconv.From8Bit(c.B)})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.AsSharp(), err)
	}
	return ans, nil
}

func (r *Reconstructor) check(s Spectrum) {
	if len(s) != len(r.cw) {
		panic(fmt.Sprintf("reflectance: spectrum has %d bins, expected %d", len(s), len(r.cw)))
	}
}

// XYZ integrates a spectrum against the weighted color matching functions.
// Panics if s does not have Len() bins.
func (r *Reconstructor) XYZ(s Spectrum) colorconv.Vec3 {
	r.check(s)
	return r.cw.Tristimulus(s)
}

// LinearRGB returns the linear RGB color of a spectrum, which may be out
// of [0,1].
func (r *Reconstructor) LinearRGB(s Spectrum) colorconv.Vec3 {
	return r.fromXYZ.Apply(r.XYZ(s))
}

// SRGB returns the 8 bit sRGB color of a spectrum, clipped to the gamut.
func (r *Reconstructor) SRGB(s Spectrum) RGB {
	rgb := r.LinearRGB(s)
	return RGB{colorconv.To8Bit(rgb[0]), colorconv.To8Bit(rgb[1]), colorconv.To8Bit(rgb[2])}
}
