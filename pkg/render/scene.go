package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leterax/go-racing/pkg/game"
)

// Shape selects the mesh an Object is drawn with
type Shape uint8

const (
	ShapeCube Shape = iota
	ShapePlane
)

// Object is one draw call of the lit scene
type Object struct {
	Name  string
	Shape Shape
	Model mgl32.Mat4
	Color mgl32.Vec3
	// CastsShadow is false for the ground, which only receives
	CastsShadow bool
}

// Scene colors
var (
	TrackColor   = mgl32.Vec3{0.32, 0.34, 0.3}
	ChassisColor = mgl32.Vec3{0.8, 0.12, 0.1}
	MarkerColor  = mgl32.Vec3{0.95, 0.85, 0.2}
	PostColor    = mgl32.Vec3{0.6, 0.6, 0.62}
	SignColor    = mgl32.Vec3{0.75, 0.05, 0.05}
)

// StopSignPosition is where the stop sign stands on the track
var StopSignPosition = mgl32.Vec3{3, 0, 8}

// stopSign returns the post and panel of the stop sign at base
func stopSign(base mgl32.Vec3) []Object {
	post := mgl32.Translate3D(base.X(), 0.75, base.Z()).Mul4(mgl32.Scale3D(0.08, 1.5, 0.08))
	panel := mgl32.Translate3D(base.X(), 1.6, base.Z()).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(22.5))).
		Mul4(mgl32.Scale3D(0.6, 0.6, 0.05))
	return []Object{
		{Name: "sign-post", Shape: ShapeCube, Model: post, Color: PostColor, CastsShadow: true},
		{Name: "sign-panel", Shape: ShapeCube, Model: panel, Color: SignColor, CastsShadow: true},
	}
}

// SceneObjects lists what to draw for frame. The camera marker is hidden in
// Fixed mode because the view sits on it.
func SceneObjects(frame game.Frame) []Object {
	objects := []Object{
		{Name: "track", Shape: ShapePlane, Model: mgl32.Ident4(), Color: TrackColor},
		{Name: "chassis", Shape: ShapeCube, Model: frame.Chassis, Color: ChassisColor, CastsShadow: true},
	}
	if frame.Mode == game.Free {
		objects = append(objects, Object{Name: "marker", Shape: ShapeCube, Model: frame.Marker, Color: MarkerColor, CastsShadow: true})
	}
	objects = append(objects, stopSign(StopSignPosition)...)
	return objects
}
