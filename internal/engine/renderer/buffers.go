package renderer

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/spacefolio/internal/engine/debug"
	"github.com/Faultbox/spacefolio/internal/engine/geometry"
)

const floatSize = 4

// gpuMesh is an uploaded geometry.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Draw issues the indexed draw call.
func (m *gpuMesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (m *gpuMesh) release() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}

// meshCache uploads each geometry once. Stars share one geometry, so two
// hundred of them cost a single buffer.
type meshCache struct {
	meshes map[*geometry.Geometry]*gpuMesh
}

func newMeshCache() *meshCache {
	return &meshCache{meshes: make(map[*geometry.Geometry]*gpuMesh)}
}

func (c *meshCache) Len() int { return len(c.meshes) }

// Get returns the GPU copy of g, uploading it on first use.
func (c *meshCache) Get(g *geometry.Geometry) (*gpuMesh, error) {
	if m, ok := c.meshes[g]; ok {
		return m, nil
	}
	m, err := uploadGeometry(g)
	if err != nil {
		return nil, err
	}
	c.meshes[g] = m
	return m, nil
}

func (c *meshCache) Release() {
	for g, m := range c.meshes {
		m.release()
		delete(c.meshes, g)
	}
}

func uploadGeometry(g *geometry.Geometry) (*gpuMesh, error) {
	vertices := g.Interleaved()
	if len(vertices) == 0 || len(g.Indices) == 0 {
		return nil, fmt.Errorf("empty %s geometry", g.Kind)
	}

	m := &gpuMesh{indexCount: int32(len(g.Indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)

	stride := int32(geometry.Stride * floatSize)
	// Position (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	// Normal (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*floatSize)))
	gl.EnableVertexAttribArray(1)
	// UV (location = 2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(6*floatSize)))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m, nil
}

// lineBuffer streams debug line vertices each frame.
type lineBuffer struct {
	vao, vbo uint32
	capacity int // floats
}

func newLineBuffer() *lineBuffer {
	b := &lineBuffer{}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	stride := int32(debug.LineVertexFloats * floatSize)
	// Position (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	// Color (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*floatSize)))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b
}

// Draw uploads data ([x, y, z, r, g, b] per vertex) and draws it as lines.
func (b *lineBuffer) Draw(data []float32) {
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(data) > b.capacity {
		b.capacity = len(data)
		gl.BufferData(gl.ARRAY_BUFFER, b.capacity*floatSize, unsafe.Pointer(&data[0]), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*floatSize, unsafe.Pointer(&data[0]))
	}
	gl.DrawArrays(gl.LINES, 0, int32(len(data)/debug.LineVertexFloats))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

func (b *lineBuffer) Release() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
}

func glErrorNames(codes []uint32) string {
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = glErrorName(c)
	}
	return strings.Join(names, ", ")
}

func glErrorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("0x%04X", code)
	}
}
