package openglhelper

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// DepthMap is a depth-only framebuffer used as a shadow map
type DepthMap struct {
	fbo     uint32
	texture uint32
	size    int32
}

// NewDepthMap allocates a square depth texture and attaches it to a new
// framebuffer with no color output
func NewDepthMap(size int) (*DepthMap, error) {
	d := &DepthMap{size: int32(size)}

	gl.GenTextures(1, &d.texture)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT32F, d.size, d.size, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	// Everything outside the light frustum is lit
	border := []float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])

	gl.GenFramebuffers(1, &d.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, d.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, d.texture, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		d.Delete()
		return nil, fmt.Errorf("shadow framebuffer incomplete: status 0x%x", status)
	}

	return d, nil
}

// Begin binds the framebuffer, sets the viewport and clears depth
func (d *DepthMap) Begin() {
	gl.Viewport(0, 0, d.size, d.size)
	gl.BindFramebuffer(gl.FRAMEBUFFER, d.fbo)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	// Front-face culling reduces peter-panning on closed meshes
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)
}

// End restores the default framebuffer
func (d *DepthMap) End() {
	gl.CullFace(gl.BACK)
	gl.Disable(gl.CULL_FACE)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// BindTexture binds the depth texture to the given texture unit
func (d *DepthMap) BindTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)
}

// Delete releases the framebuffer and its texture
func (d *DepthMap) Delete() {
	if d.fbo != 0 {
		gl.DeleteFramebuffers(1, &d.fbo)
	}
	if d.texture != 0 {
		gl.DeleteTextures(1, &d.texture)
	}
}
