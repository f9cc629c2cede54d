package reflectance

import (
	"github.com/kovidgoyal/reflectance/colorconv"
	"github.com/kovidgoyal/reflectance/lhtss"
)

type config struct {
	solver     lhtss.Config
	rgbToXYZ   colorconv.Mat3
	adaptWhite bool
}

var defaultConfig = config{
	solver:   lhtss.DefaultConfig(),
	rgbToXYZ: colorconv.LinearSRGBToXYZ,
}

// Option sets an optional parameter for New.
type Option func(*config)

// MaxIterations returns an Option that caps the number of Newton steps per
// reconstruction. Defaults to 100.
func MaxIterations(n int) Option {
	return func(c *config) {
		c.solver.MaxIterations = n
	}
}

// Tolerance returns an Option that sets the convergence tolerance of the
// solver. Defaults to 1e-8.
func Tolerance(t float64) Option {
	return func(c *config) {
		c.solver.Tolerance = t
	}
}

// RGBToXYZ returns an Option that sets the matrix converting linear RGB to
// XYZ. Defaults to the sRGB (D65) primaries.
func RGBToXYZ(m colorconv.Mat3) Option {
	return func(c *config) {
		c.rgbToXYZ = m
	}
}

// AdaptWhite returns an Option that controls chromatic adaptation. When
// enabled, RGB colors are Bradford adapted from the white of the RGB space
// to the white of the weighted color matching functions, so that RGB white
// maps onto the perfect reflector. Useful when the illuminant is not the
// white point of the RGB space. Disabled by default.
func AdaptWhite(enabled bool) Option {
	return func(c *config) {
		c.adaptWhite = enabled
	}
}
