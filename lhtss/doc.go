/*
Package lhtss reconstructs a smooth reflectance curve from a tristimulus
(XYZ) value using the Least Hyperbolic Tangent Slope Squared method.

The reflectance is parameterised as ρ = (tanh(z)+1)/2 so that every
component stays inside (0,1) without explicit bounds. Among all latent
profiles z whose reflectance reproduces the target under the
illuminant-weighted color matching functions, the one minimising zᵀDz/2 is
selected, where D is the matrix built by BuildSmoothnessMatrix. The
first-order (KKT) conditions of that problem are solved with Newton's method,
factoring the symmetric indefinite Jacobian with Bunch-Kaufman pivoting at
every step.

Typical use builds the two cached artifacts once per configuration and then
solves once per color:

	d := lhtss.BuildSmoothnessMatrix(len(cmfs))
	_, cw, err := lhtss.WeightCMF(cmfs, illuminant)
	...
	res, err := lhtss.Solve(d, cw, target, lhtss.DefaultConfig())

Both artifacts are immutable after construction and may be shared by any
number of concurrent calls to Solve.
*/
package lhtss
