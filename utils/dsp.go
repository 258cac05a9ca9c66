// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates the Catmull-Rom spline through y0..y3 at x,
// where x in [0, 1] runs from y1 to y2.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a := 0.5 * (3*(y1-y2) + y3 - y0)
	b := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c := 0.5 * (y2 - y0)

	return ((a*x+b)*x+c)*x + y1
}

// Float32ToInt16 clamps x to [-1, 1] and scales it to a signed 16-bit
// sample. Full scale maps to ±32767.
func Float32ToInt16(x float32) int16 {
	x = min(max(x, -1), 1)
	return int16(x * 32767)
}
