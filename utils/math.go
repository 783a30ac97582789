// Package utils contains the small math and error helpers shared by the rover packages.
package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// ModAngDeg maps any angle into [0, 360).
func ModAngDeg(ang float64) float64 {
	return math.Mod(math.Mod(ang, 360)+360, 360)
}

// NormalizeDeg maps any angle into (-180, 180].
func NormalizeDeg(ang float64) float64 {
	ang = ModAngDeg(ang)
	if ang > 180 {
		ang -= 360
	}
	return ang
}

// Float64AlmostEqual compares two float64s and returns if the difference between them is less
// than or equal to epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// IsFinite is true for anything that is neither NaN nor infinite.
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
