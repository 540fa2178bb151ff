package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
)

// Mesh is an indexed triangle mesh with interleaved position, normal and
// texture coordinates (8 floats per vertex)
type Mesh struct {
	vao     *VertexArrayObject
	vbo     *BufferObject
	ebo     *BufferObject
	indices []uint32
}

// NewMesh uploads vertices and indices and configures the vertex layout
func NewMesh(vertices []float32, indices []uint32) *Mesh {
	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(vertices, StaticDraw)
	ebo := NewEBO(indices, StaticDraw)

	// Position attribute (3 floats)
	vao.SetVertexAttribPointer(0, 3, gl.FLOAT, false, 8*4, 0)
	// Normal attribute (3 floats)
	vao.SetVertexAttribPointer(1, 3, gl.FLOAT, false, 8*4, 3*4)
	// Texture coordinates attribute (2 floats)
	vao.SetVertexAttribPointer(2, 2, gl.FLOAT, false, 8*4, 6*4)

	vao.Unbind()

	return &Mesh{
		vao:     vao,
		vbo:     vbo,
		ebo:     ebo,
		indices: indices,
	}
}

// Draw renders the mesh with whatever shader is bound
func (m *Mesh) Draw() {
	m.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, int32(len(m.indices)), gl.UNSIGNED_INT, nil)
	m.vao.Unbind()
}

// Delete releases all resources
func (m *Mesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}

// NewCube creates a unit cube centered on the origin
func NewCube() *Mesh {
	vertices, indices := CubeGeometry()
	return NewMesh(vertices, indices)
}

// NewPlane creates a square on the XZ plane facing +Y, size units across,
// with texture coordinates repeating once per unit
func NewPlane(size float32) *Mesh {
	vertices, indices := PlaneGeometry(size)
	return NewMesh(vertices, indices)
}

// CubeGeometry returns the vertex and index data of a unit cube
func CubeGeometry() ([]float32, []uint32) {
	// Cube vertices: position (3), normal (3), texture coordinates (2)
	vertices := []float32{
		// Front face
		-0.5, -0.5, 0.5, 0.0, 0.0, 1.0, 0.0, 0.0, // Bottom-left
		0.5, -0.5, 0.5, 0.0, 0.0, 1.0, 1.0, 0.0, // Bottom-right
		0.5, 0.5, 0.5, 0.0, 0.0, 1.0, 1.0, 1.0, // Top-right
		-0.5, 0.5, 0.5, 0.0, 0.0, 1.0, 0.0, 1.0, // Top-left

		// Back face
		-0.5, -0.5, -0.5, 0.0, 0.0, -1.0, 1.0, 0.0, // Bottom-left
		-0.5, 0.5, -0.5, 0.0, 0.0, -1.0, 1.0, 1.0, // Top-left
		0.5, 0.5, -0.5, 0.0, 0.0, -1.0, 0.0, 1.0, // Top-right
		0.5, -0.5, -0.5, 0.0, 0.0, -1.0, 0.0, 0.0, // Bottom-right

		// Top face
		-0.5, 0.5, -0.5, 0.0, 1.0, 0.0, 0.0, 1.0, // Back-left
		-0.5, 0.5, 0.5, 0.0, 1.0, 0.0, 0.0, 0.0, // Front-left
		0.5, 0.5, 0.5, 0.0, 1.0, 0.0, 1.0, 0.0, // Front-right
		0.5, 0.5, -0.5, 0.0, 1.0, 0.0, 1.0, 1.0, // Back-right

		// Bottom face
		-0.5, -0.5, -0.5, 0.0, -1.0, 0.0, 0.0, 0.0, // Back-left
		0.5, -0.5, -0.5, 0.0, -1.0, 0.0, 1.0, 0.0, // Back-right
		0.5, -0.5, 0.5, 0.0, -1.0, 0.0, 1.0, 1.0, // Front-right
		-0.5, -0.5, 0.5, 0.0, -1.0, 0.0, 0.0, 1.0, // Front-left

		// Right face
		0.5, -0.5, -0.5, 1.0, 0.0, 0.0, 1.0, 0.0, // Bottom-back
		0.5, 0.5, -0.5, 1.0, 0.0, 0.0, 1.0, 1.0, // Top-back
		0.5, 0.5, 0.5, 1.0, 0.0, 0.0, 0.0, 1.0, // Top-front
		0.5, -0.5, 0.5, 1.0, 0.0, 0.0, 0.0, 0.0, // Bottom-front

		// Left face
		-0.5, -0.5, -0.5, -1.0, 0.0, 0.0, 0.0, 0.0, // Bottom-back
		-0.5, -0.5, 0.5, -1.0, 0.0, 0.0, 1.0, 0.0, // Bottom-front
		-0.5, 0.5, 0.5, -1.0, 0.0, 0.0, 1.0, 1.0, // Top-front
		-0.5, 0.5, -0.5, -1.0, 0.0, 0.0, 0.0, 1.0, // Top-back
	}

	// Cube indices
	indices := []uint32{
		0, 1, 2, 2, 3, 0, // Front face
		4, 5, 6, 6, 7, 4, // Back face
		8, 9, 10, 10, 11, 8, // Top face
		12, 13, 14, 14, 15, 12, // Bottom face
		16, 17, 18, 18, 19, 16, // Right face
		20, 21, 22, 22, 23, 20, // Left face
	}

	return vertices, indices
}

// PlaneGeometry returns the vertex and index data of a ground plane
func PlaneGeometry(size float32) ([]float32, []uint32) {
	h := size / 2
	vertices := []float32{
		-h, 0, -h, 0, 1, 0, 0, 0,
		-h, 0, h, 0, 1, 0, 0, size,
		h, 0, h, 0, 1, 0, size, size,
		h, 0, -h, 0, 1, 0, size, 0,
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}
	return vertices, indices
}

// SkyboxVertices returns the 36 positions of an inward-facing cube used to
// sample a cubemap
func SkyboxVertices() []float32 {
	return []float32{
		-1, 1, -1, -1, -1, -1, 1, -1, -1,
		1, -1, -1, 1, 1, -1, -1, 1, -1,

		-1, -1, 1, -1, -1, -1, -1, 1, -1,
		-1, 1, -1, -1, 1, 1, -1, -1, 1,

		1, -1, -1, 1, -1, 1, 1, 1, 1,
		1, 1, 1, 1, 1, -1, 1, -1, -1,

		-1, -1, 1, -1, 1, 1, 1, 1, 1,
		1, 1, 1, 1, -1, 1, -1, -1, 1,

		-1, 1, -1, 1, 1, -1, 1, 1, 1,
		1, 1, 1, -1, 1, 1, -1, 1, -1,

		-1, -1, -1, -1, -1, 1, 1, -1, -1,
		1, -1, -1, -1, -1, 1, 1, -1, 1,
	}
}

// Skybox is a position-only cube drawn with depth testing at LEQUAL
type Skybox struct {
	vao *VertexArrayObject
	vbo *BufferObject
}

// NewSkybox uploads the skybox cube
func NewSkybox() *Skybox {
	vao := NewVAO()
	vao.Bind()
	vbo := NewVBO(SkyboxVertices(), StaticDraw)
	vao.SetVertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, 0)
	vao.Unbind()

	return &Skybox{vao: vao, vbo: vbo}
}

// Draw renders the skybox with the cubemap bound to texture unit 0
func (s *Skybox) Draw(cubemap *Cubemap) {
	gl.DepthFunc(gl.LEQUAL)
	s.vao.Bind()
	cubemap.Bind(0)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
	s.vao.Unbind()
	gl.DepthFunc(gl.LESS)
}

// Delete releases the skybox buffers
func (s *Skybox) Delete() {
	s.vao.Delete()
	s.vbo.Delete()
}
