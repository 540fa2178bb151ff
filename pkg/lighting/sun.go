// Package lighting models the scene's directional light and the matrix used to
// render its shadow map.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the Y-up axis of the world
var WorldUp = mgl32.Vec3{0, 1, 0}

// Sun is a directional light slowly orbiting the world up axis
type Sun struct {
	// Direction points from the scene toward the light at t=0
	Direction mgl32.Vec3
	// OrbitSpeed is in degrees per second; zero keeps the light still
	OrbitSpeed float32
	Color      mgl32.Vec3
}

// NewSun normalizes direction and returns a white sun
func NewSun(direction mgl32.Vec3, orbitSpeed float32) Sun {
	return Sun{
		Direction:  direction.Normalize(),
		OrbitSpeed: orbitSpeed,
		Color:      mgl32.Vec3{1, 1, 1},
	}
}

// At returns the light direction after t seconds
func (s Sun) At(t float32) mgl32.Vec3 {
	if s.OrbitSpeed == 0 {
		return s.Direction
	}
	angle := float32(math.Mod(float64(s.OrbitSpeed*t), 360))
	return mgl32.Rotate3DY(mgl32.DegToRad(angle)).Mul3x1(s.Direction)
}

// Shadow frustum defaults
const (
	DefaultShadowExtent   = 20.0
	DefaultShadowDistance = 30.0
	shadowNear            = 0.1
)

// LightSpaceMatrix returns the orthographic view-projection that renders the
// area of half-size extent around center as seen from a light shining from dir
func LightSpaceMatrix(dir, center mgl32.Vec3, extent, distance float32) mgl32.Mat4 {
	dir = dir.Normalize()
	eye := center.Add(dir.Mul(distance))

	// LookAt degenerates when looking straight down the up axis
	up := WorldUp
	if math.Abs(float64(dir.Dot(WorldUp))) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}

	projection := mgl32.Ortho(-extent, extent, -extent, extent, shadowNear, distance*2)
	view := mgl32.LookAtV(eye, center, up)
	return projection.Mul4(view)
}
