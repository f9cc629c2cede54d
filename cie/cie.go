// Package cie provides the reference spectral data used for reflectance
// reconstruction: the sampling grid, color matching functions and
// illuminants.
package cie

import (
	"fmt"
)

var _ = fmt.Print

// Grid is a uniformly sampled range of wavelengths, in nanometres.
type Grid struct {
	Start, Step float64
	N           int
}

// ReferenceGrid is 380–730 nm in 10 nm steps, the sampling of every table
// in this package.
var ReferenceGrid = Grid{Start: 380, Step: 10, N: 36}

func (g Grid) Len() int { return g.N }

// End returns the last sampled wavelength.
func (g Grid) End() float64 { return g.Start + float64(g.N-1)*g.Step }

// Wavelengths returns the center of every bin.
func (g Grid) Wavelengths() []float64 {
	ans := make([]float64, g.N)
	for i := range ans {
		ans[i] = g.Start + float64(i)*g.Step
	}
	return ans
}

func (g Grid) String() string {
	return fmt.Sprintf("%g–%g nm / %g nm (%d bins)", g.Start, g.End(), g.Step, g.N)
}

// CMF1931D65 returns a fresh copy of the D65 weighted CIE 1931 2° table on
// ReferenceGrid. The rows are X, Y, Z.
func CMF1931D65() [][3]float64 {
	return append([][3]float64(nil), cie1931_d65[:]...)
}

// D65 returns the relative spectral power of illuminant D65 on
// ReferenceGrid. Use it with color matching functions that are not already
// illuminant weighted.
func D65() []float64 {
	return append([]float64(nil), d65_spd[:]...)
}

// EqualEnergy returns the equal energy illuminant with n bins. Use it with
// tables such as CMF1931D65 that already include the illuminant.
func EqualEnergy(n int) []float64 {
	ans := make([]float64, n)
	for i := range ans {
		ans[i] = 1
	}
	return ans
}
