package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Cubemap is a six-faced texture sampled by direction
type Cubemap struct {
	ID uint32
}

// Gradient describes a vertical sky gradient
type Gradient struct {
	Zenith  mgl32.Vec3
	Horizon mgl32.Vec3
	Ground  mgl32.Vec3
}

// DefaultSky is a pale blue daytime sky over a dark ground
var DefaultSky = Gradient{
	Zenith:  mgl32.Vec3{0.18, 0.36, 0.72},
	Horizon: mgl32.Vec3{0.78, 0.85, 0.92},
	Ground:  mgl32.Vec3{0.22, 0.2, 0.18},
}

// Sample returns the gradient color for a direction's Y component in [-1, 1]
func (g Gradient) Sample(y float32) mgl32.Vec3 {
	y = mgl32.Clamp(y, -1, 1)
	if y >= 0 {
		return lerp(g.Horizon, g.Zenith, y)
	}
	return lerp(g.Horizon, g.Ground, -y)
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// cubeFaceDirection maps a texel on a cubemap face to its direction, using
// the face orientation table from the GL specification. u and v are in [-1, 1].
func cubeFaceDirection(face int, u, v float32) mgl32.Vec3 {
	var d mgl32.Vec3
	switch face {
	case 0: // +X
		d = mgl32.Vec3{1, -v, -u}
	case 1: // -X
		d = mgl32.Vec3{-1, -v, u}
	case 2: // +Y
		d = mgl32.Vec3{u, 1, v}
	case 3: // -Y
		d = mgl32.Vec3{u, -1, -v}
	case 4: // +Z
		d = mgl32.Vec3{u, -v, 1}
	default: // -Z
		d = mgl32.Vec3{-u, -v, -1}
	}
	return d.Normalize()
}

// GradientFace renders one face of the gradient as tightly packed RGB bytes
func GradientFace(g Gradient, face, size int) []uint8 {
	pixels := make([]uint8, 0, size*size*3)
	for row := 0; row < size; row++ {
		v := (float32(row)+0.5)/float32(size)*2 - 1
		for col := 0; col < size; col++ {
			u := (float32(col)+0.5)/float32(size)*2 - 1
			c := g.Sample(cubeFaceDirection(face, u, v).Y())
			pixels = append(pixels,
				uint8(mgl32.Clamp(c.X(), 0, 1)*255),
				uint8(mgl32.Clamp(c.Y(), 0, 1)*255),
				uint8(mgl32.Clamp(c.Z(), 0, 1)*255),
			)
		}
	}
	return pixels
}

// NewGradientCubemap uploads a procedurally generated sky cubemap
func NewGradientCubemap(g Gradient, size int) *Cubemap {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for face := 0; face < 6; face++ {
		pixels := GradientFace(g, face, size)
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(face), 0, gl.RGB8,
			int32(size), int32(size), 0, gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	return &Cubemap{ID: id}
}

// Bind binds the cubemap to the given texture unit
func (c *Cubemap) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, c.ID)
}

// Delete releases the texture
func (c *Cubemap) Delete() {
	gl.DeleteTextures(1, &c.ID)
}
