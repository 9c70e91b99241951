package glx

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Attrib describes one vertex attribute inside an interleaved buffer.
// Loc must match the shader's layout(location = n) declaration; a mismatch
// is a silent rendering bug, not a caught error.
type Attrib struct {
	Loc        uint32
	Components int32
	Normalized bool
	Offset     int // bytes from the start of a vertex
}

// Mesh owns a VAO with one interleaved float32 vertex buffer and an optional
// index buffer. Immutable after upload unless the owner restreams via Upload.
type Mesh struct {
	vao, vbo, ebo uint32
	stride        int32
	usage         uint32
	vertexCount   int32
	indexCount    int32

	instanceVBOs []uint32
}

// NewMesh uploads interleaved float32 vertex data. stride is in floats.
// usage is gl.STATIC_DRAW for one-shot meshes, gl.STREAM_DRAW/gl.DYNAMIC_DRAW
// for restreamed ones.
func NewMesh(verts []float32, stride int, attribs []Attrib, usage uint32) *Mesh {
	m := &Mesh{stride: int32(stride * 4), usage: usage}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(verts) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), usage)
		m.vertexCount = int32(len(verts) * 4 / int(m.stride))
	}
	for _, a := range attribs {
		gl.EnableVertexAttribArray(a.Loc)
		gl.VertexAttribPointer(a.Loc, a.Components, gl.FLOAT, a.Normalized, m.stride, glOffset(a.Offset))
	}
	gl.BindVertexArray(0)
	return m
}

// SetIndices attaches a static element buffer.
func (m *Mesh) SetIndices(indices []uint32) {
	gl.BindVertexArray(m.vao)
	if m.ebo == 0 {
		gl.GenBuffers(1, &m.ebo)
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	m.indexCount = int32(len(indices))
	gl.BindVertexArray(0)
}

// Upload restreams the whole vertex buffer. Issued from the render thread
// only, same as the draws that consume it.
func (m *Mesh) Upload(verts []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(verts) == 0 {
		m.vertexCount = 0
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), m.usage)
	m.vertexCount = int32(len(verts) * 4 / int(m.stride))
}

func (m *Mesh) Bind()              { gl.BindVertexArray(m.vao) }
func (m *Mesh) VertexCount() int32 { return m.vertexCount }
func (m *Mesh) IndexCount() int32  { return m.indexCount }

// Draw issues a non-indexed draw over all uploaded vertices.
func (m *Mesh) Draw(mode uint32) {
	if m.vertexCount == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(mode, 0, m.vertexCount)
}

// DrawRange draws count vertices starting at first, without indices.
func (m *Mesh) DrawRange(mode uint32, first, count int32) {
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(mode, first, count)
}

// DrawIndexed draws the full index list.
func (m *Mesh) DrawIndexed(mode uint32) {
	if m.indexCount == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(mode, m.indexCount, gl.UNSIGNED_INT, glOffset(0))
}

// DrawIndexedInstanced draws the full index list instances times.
func (m *Mesh) DrawIndexedInstanced(mode uint32, instances int32) {
	if m.indexCount == 0 || instances == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElementsInstanced(mode, m.indexCount, gl.UNSIGNED_INT, glOffset(0), instances)
}

func (m *Mesh) Delete() {
	for _, vbo := range m.instanceVBOs {
		gl.DeleteBuffers(1, &vbo)
	}
	m.instanceVBOs = nil
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}

// InstanceBuffer is a per-instance attribute stream (divisor 1) attached to a
// mesh's VAO. The caller restreams it each frame with the visible set.
type InstanceBuffer struct {
	vbo   uint32
	count int32
	comps int32
}

// AttachInstanceAttrib adds a float32 per-instance attribute at loc with the
// given component count.
func (m *Mesh) AttachInstanceAttrib(loc uint32, comps int32) *InstanceBuffer {
	b := &InstanceBuffer{comps: comps}
	gl.BindVertexArray(m.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.EnableVertexAttribArray(loc)
	gl.VertexAttribPointer(loc, comps, gl.FLOAT, false, 0, glOffset(0))
	gl.VertexAttribDivisor(loc, 1)
	gl.BindVertexArray(0)
	m.instanceVBOs = append(m.instanceVBOs, b.vbo)
	return b
}

// Upload restreams the instance data and records the instance count.
func (b *InstanceBuffer) Upload(data []float32) {
	b.count = int32(len(data)) / b.comps
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(data) == 0 {
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STREAM_DRAW)
}

func (b *InstanceBuffer) Count() int32 { return b.count }
