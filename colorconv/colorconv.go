package colorconv

import (
	"fmt"
	"math"
	"sync"
)

// This package converts between gamma encoded sRGB, linear sRGB and CIE XYZ
// relative to the D65 white point (Y = 1 for white), and adapts XYZ values
// between white points with the Bradford transform.
//
// Matrices are applied to column vectors: out = M·v.

type Vec3 [3]float64
type Mat3 [3][3]float64

// D65 reference white (CIE XYZ) normalized so Y = 1.0
var WhiteD65 = Vec3{0.95047, 1.00000, 1.08883}

// LinearSRGBToXYZ is the sRGB (D65) primaries matrix, see
// http://www.brucelindbloom.com/index.html?Eqn_RGB_XYZ_Matrix.html
var LinearSRGBToXYZ = Mat3{
	{0.4124564, 0.3575761, 0.1804375},
	{0.2126729, 0.7151522, 0.0721750},
	{0.0193339, 0.1191920, 0.9503041},
}

// XYZToLinearSRGB is the exact inverse of LinearSRGBToXYZ so that round
// trips are lossless up to rounding.
var XYZToLinearSRGB = must(LinearSRGBToXYZ.Inverted())

// Bradford transform matrices (forward and inverse)
var (
	bradford = Mat3{
		{0.8951, 0.2664, -0.1614},
		{-0.7502, 1.7135, 0.0367},
		{0.0389, -0.0685, 1.0296},
	}
	invBradford = Mat3{
		{0.9869929, -0.1470543, 0.1599627},
		{0.4323053, 0.5183603, 0.0492912},
		{-0.0085287, 0.0400428, 0.9684867},
	}
)

func must(m Mat3, err error) Mat3 {
	if err != nil {
		panic(err)
	}
	return m
}

// Public API

// SRGBToLinear decodes a gamma encoded sRGB component in [0,1] to a linear
// value.
func SRGBToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// LinearToSRGB applies the sRGB (gamma) companding function to a linear
// component. Negative input is treated as zero, the output is not clamped
// above.
func LinearToSRGB(c float64) float64 {
	// clip small negative rounding noise at this stage for stability
	if c <= 0 {
		return 0.0
	}
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

var encoded8ToLinearLUT = sync.OnceValue(func() (ans [256]float64) {
	for i := range ans {
		ans[i] = SRGBToLinear(float64(i) / 255)
	}
	return
})

// From8Bit converts an 8 bit sRGB encoded value to a linear value in [0,1].
// Uses a look-up table, the result is identical to SRGBToLinear(v/255).
func From8Bit(v uint8) float64 {
	return encoded8ToLinearLUT()[v]
}

// To8Bit converts a linear value to an 8 bit sRGB encoded value, clipping
// the encoded value to [0,1] first.
func To8Bit(v float64) uint8 {
	return uint8(math.Round(clamp01(LinearToSRGB(v)) * 255))
}

// LinearRGBToXYZ converts linear sRGB to XYZ (D65).
func LinearRGBToXYZ(rgb Vec3) Vec3 {
	return LinearSRGBToXYZ.Apply(rgb)
}

// XYZToLinearRGB converts XYZ (D65) to linear sRGB. The output may be
// outside [0,1] for colors outside the sRGB gamut.
func XYZToLinearRGB(xyz Vec3) Vec3 {
	return XYZToLinearSRGB.Apply(xyz)
}

// InGamut checks whether all components of a linear RGB value are inside
// [0,1] (with a small epsilon)
func InGamut(rgb Vec3) bool {
	const eps = 1e-12
	return rgb[0] >= -eps && rgb[1] >= -eps && rgb[2] >= -eps && rgb[0] <= 1+eps && rgb[1] <= 1+eps && rgb[2] <= 1+eps
}

// Clamp01 clamps every component to [0,1]
func (v Vec3) Clamp01() Vec3 {
	return Vec3{clamp01(v[0]), clamp01(v[1]), clamp01(v[2])}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.6g, %.6g, %.6g)", v[0], v[1], v[2])
}

func clamp01(x float64) float64 {
	return max(0, min(x, 1))
}

// Matrix & vector utilities

// Multiply returns a·b
func (a Mat3) Multiply(b Mat3) Mat3 {
	var out Mat3
	for i := range 3 {
		for j := range 3 {
			sum := 0.0
			for k := range 3 {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Apply returns m·v
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

func (mat Mat3) Determinant() float64 {
	return mat[0][0]*(mat[1][1]*mat[2][2]-mat[1][2]*mat[2][1]) -
		mat[0][1]*(mat[1][0]*mat[2][2]-mat[1][2]*mat[2][0]) +
		mat[0][2]*(mat[1][0]*mat[2][1]-mat[1][1]*mat[2][0])
}

func (mat Mat3) Inverted() (ans Mat3, err error) {
	det := mat.Determinant()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return ans, fmt.Errorf("matrix is singular and cannot be inverted")
	}
	invDet := 1 / det
	adj := Mat3{
		{
			(mat[1][1]*mat[2][2] - mat[1][2]*mat[2][1]),
			(mat[0][2]*mat[2][1] - mat[0][1]*mat[2][2]), // Note the sign change for cofactor C12
			(mat[0][1]*mat[1][2] - mat[0][2]*mat[1][1]), // Note the sign change for cofactor C13
		},
		{
			(mat[1][2]*mat[2][0] - mat[1][0]*mat[2][2]),
			(mat[0][0]*mat[2][2] - mat[0][2]*mat[2][0]),
			(mat[0][2]*mat[1][0] - mat[0][0]*mat[1][2]),
		},
		{
			(mat[1][0]*mat[2][1] - mat[1][1]*mat[2][0]),
			(mat[0][1]*mat[2][0] - mat[0][0]*mat[2][1]),
			(mat[0][0]*mat[1][1] - mat[0][1]*mat[1][0]),
		},
	}
	for i := range 3 {
		for j := range 3 {
			ans[i][j] = invDet * adj[i][j]
		}
	}
	return
}

// ChromaticAdaptationMatrix constructs a 3x3 matrix that adapts XYZ values
// from sourceWhite to targetWhite using the Bradford method.
func ChromaticAdaptationMatrix(sourceWhite, targetWhite Vec3) Mat3 {
	src := bradford.Apply(sourceWhite)
	tgt := bradford.Apply(targetWhite)
	diag := Mat3{
		{tgt[0] / src[0], 0, 0},
		{0, tgt[1] / src[1], 0},
		{0, 0, tgt[2] / src[2]},
	}
	// adapt = invBradford * diag * bradford
	return invBradford.Multiply(diag.Multiply(bradford))
}
