package vehicle

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ValidDelta reports whether dt can advance state: finite and strictly positive.
func ValidDelta(dt float32) bool {
	d := float64(dt)
	return d > 0 && !math.IsInf(d, 0) && !math.IsNaN(d)
}

// ConvergeFactor returns the fraction of the remaining gap closed in dt seconds
// for an exponential decay with the given rate (1/s). Applying it over n steps of
// dt/n closes the same total fraction as one step of dt.
func ConvergeFactor(rate, dt float32) float32 {
	if !ValidDelta(dt) || rate <= 0 {
		return 0
	}
	return float32(1 - math.Exp(-float64(rate)*float64(dt)))
}

// Converge moves current toward target by ConvergeFactor(rate, dt) of the gap.
// The result always lies between current and target.
func Converge(current, target, rate, dt float32) float32 {
	if current == target {
		return current
	}

	next := current + (target-current)*ConvergeFactor(rate, dt)

	// Rounding must not carry the value past the target
	if (target > current && next > target) || (target < current && next < target) {
		return target
	}
	return next
}

// ConvergeVec3 applies Converge to each component.
func ConvergeVec3(current, target mgl32.Vec3, rate, dt float32) mgl32.Vec3 {
	return mgl32.Vec3{
		Converge(current[0], target[0], rate, dt),
		Converge(current[1], target[1], rate, dt),
		Converge(current[2], target[2], rate, dt),
	}
}
