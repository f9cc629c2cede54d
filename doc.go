/*
Package reflectance reconstructs plausible spectral reflectance curves for
colors and mixes colors in reflectance space, the way paints mix, rather
than by averaging RGB values.

A Reconstructor caches everything that depends only on the spectral
configuration (color matching functions, illuminant, solver settings) and
can be shared by any number of goroutines:

	r := reflectance.Default()
	green, err := r.MixSRGB(reflectance.RGB{0, 33, 133}, reflectance.RGB{252, 211, 0}, 0.5)

The reconstruction itself is done by the lhtss sub-package.
*/
package reflectance

import (
	"log/slog"

	"github.com/kovidgoyal/reflectance/lhtss"
)

// SetLogger sets the logger used for solver diagnostics. By default
// nothing is logged. Pass nil to restore the silent default.
func SetLogger(l *slog.Logger) {
	lhtss.SetLogger(l)
}
