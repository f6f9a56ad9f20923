package luminal

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Material selects how a mesh is shaded. A non-zero Texture wins over
// Color; the two are never active together.
type Material struct {
	Texture  TextureID
	Color    Color
	Lighting bool
	ScaleU   float32 // Texture repeat along U; zero means 1
	ScaleV   float32 // Texture repeat along V; zero means 1
}

// ColorMaterial returns an untextured material.
func ColorMaterial(c Color, lighting bool) Material {
	return Material{Color: c, Lighting: lighting}
}

// TextureMaterial returns a textured material with no repeat.
func TextureMaterial(tex TextureID, lighting bool) Material {
	return Material{Texture: tex, Lighting: lighting, ScaleU: 1, ScaleV: 1}
}

// MeshData is explicit geometry for NewMesh.
type MeshData struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
}

// Mesh is an indexed triangle mesh that owns its vertex array, vertex
// buffer and index buffer, plus a model transform and a material.
type Mesh struct {
	dev Device

	vao VertexArrayID
	vbo BufferID
	ebo BufferID

	layout      VertexLayout
	vertexCount int
	indexCount  int32
	uvOffset    int32     // Float offset of the texcoord in a vertex, -1 if none
	baseUV      []float32 // Unscaled texcoords, two per vertex

	textured bool
	texture  TextureID
	color    Color
	lighting bool
	scaleU   float32
	scaleV   float32

	transform Transform
	released  bool
}

// NewPlane creates a width×height quad centered on the origin in the XY
// plane, facing +Z, with position/normal/texcoord vertices.
func NewPlane(dev Device, width, height float32, mat Material) (*Mesh, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("plane size must be positive, got %gx%g", width, height)
	}
	w, h := width/2, height/2
	vertices := []float32{
		// Position      Normal   TexCoord
		-w, -h, 0, 0, 0, 1, 0, 0,
		w, -h, 0, 0, 0, 1, 1, 0,
		w, h, 0, 0, 0, 1, 1, 1,
		-w, h, 0, 0, 0, 1, 0, 1,
	}
	return NewMesh(dev, MeshData{
		Vertices: vertices,
		Indices:  QuadIndices,
		Layout:   LayoutPositionNormalUV,
	}, mat)
}

// NewMesh uploads explicit geometry. The texcoord attribute, if any, is the
// first two-component attribute that does not start the vertex.
func NewMesh(dev Device, data MeshData, mat Material) (*Mesh, error) {
	stride := int(data.Layout.Stride)
	if stride <= 0 {
		return nil, errors.New("mesh layout has no stride")
	}
	if len(data.Vertices) == 0 || len(data.Vertices)%stride != 0 {
		return nil, fmt.Errorf("mesh has %d floats, not a multiple of stride %d", len(data.Vertices), stride)
	}
	if len(data.Indices) == 0 {
		return nil, errors.New("mesh has no indices")
	}
	vertexCount := len(data.Vertices) / stride
	for _, idx := range data.Indices {
		if int(idx) >= vertexCount {
			return nil, fmt.Errorf("mesh index %d out of range for %d vertices", idx, vertexCount)
		}
	}

	m := &Mesh{
		dev:         dev,
		layout:      data.Layout,
		vertexCount: vertexCount,
		indexCount:  int32(len(data.Indices)),
		uvOffset:    -1,
		transform:   NewTransform(),
		scaleU:      1,
		scaleV:      1,
	}
	m.applyMaterial(mat)

	for _, a := range data.Layout.Attribs {
		if a.Size == 2 && a.Offset > 0 {
			m.uvOffset = a.Offset
			break
		}
	}

	vertices := append([]float32(nil), data.Vertices...)
	if m.uvOffset >= 0 {
		m.baseUV = make([]float32, 0, vertexCount*2)
		for i := 0; i < vertexCount; i++ {
			at := i*stride + int(m.uvOffset)
			m.baseUV = append(m.baseUV, vertices[at], vertices[at+1])
			vertices[at] *= m.scaleU
			vertices[at+1] *= m.scaleV
		}
	}

	m.vao = dev.CreateVertexArray()
	m.vbo = dev.CreateBuffer()
	m.ebo = dev.CreateBuffer()
	dev.UploadVertices(m.vao, m.vbo, data.Layout, vertices, StaticDraw)
	dev.UploadIndices(m.vao, m.ebo, data.Indices, StaticDraw)

	return m, nil
}

func (m *Mesh) applyMaterial(mat Material) {
	m.lighting = mat.Lighting
	if mat.ScaleU != 0 {
		m.scaleU = mat.ScaleU
	}
	if mat.ScaleV != 0 {
		m.scaleV = mat.ScaleV
	}
	if mat.Texture != 0 {
		m.textured = true
		m.texture = mat.Texture
		return
	}
	m.color = mat.Color
	if m.color == (Color{}) {
		m.color = ColorYellow
	}
}

// Render draws the mesh with prog using the camera matrices.
func (m *Mesh) Render(prog *Program, cam CameraMatrices) error {
	if m.released {
		return ErrReleased
	}
	if prog == nil || prog.ID() == 0 {
		return errors.New("mesh render: no shader program")
	}

	var u Uniforms
	u.SetMat4("projection", cam.Projection)
	u.SetMat4("view", cam.View)
	u.SetMat4("model", m.transform.Matrix())
	if m.textured {
		u.SetInt("textureSampler", 0)
		u.SetBool("useTexture", true)
	} else {
		u.SetColor("objectColor", m.color)
		u.SetBool("useTexture", false)
	}
	u.SetBool("useLighting", m.lighting)

	call := prog.call(u)
	call.VertexArray = m.vao
	call.Indexed = true
	call.Count = m.indexCount
	call.DepthTest = true
	call.Blend = BlendAlpha
	if m.textured {
		call.Textures = []TextureBinding{{Unit: 0, Texture: m.texture}}
	}

	m.dev.Draw(call)
	return nil
}

// SetTexture switches the mesh to textured shading with the given repeat.
func (m *Mesh) SetTexture(id TextureID, scaleU, scaleV float32) {
	m.textured = true
	m.texture = id
	m.SetTextureScale(scaleU, scaleV)
}

// SetTextureScale sets how many times the texture repeats across the mesh.
// Only the texcoords are rewritten, one small update per vertex.
func (m *Mesh) SetTextureScale(scaleU, scaleV float32) {
	m.scaleU = scaleU
	m.scaleV = scaleV
	if !m.textured || m.uvOffset < 0 || m.released {
		return
	}
	stride := int(m.layout.Stride)
	for i := 0; i < m.vertexCount; i++ {
		uv := []float32{m.baseUV[i*2] * scaleU, m.baseUV[i*2+1] * scaleV}
		m.dev.UpdateVertices(m.vbo, i*stride+int(m.uvOffset), uv)
	}
}

// SetColor switches the mesh to flat-color shading.
func (m *Mesh) SetColor(c Color) {
	m.color = c
	m.textured = false
	m.texture = 0
}

// SetLighting toggles lighting.
func (m *Mesh) SetLighting(enabled bool) { m.lighting = enabled }

func (m *Mesh) Textured() bool               { return m.textured }
func (m *Mesh) Texture() TextureID           { return m.texture }
func (m *Mesh) Color() Color                 { return m.color }
func (m *Mesh) Lighting() bool               { return m.lighting }
func (m *Mesh) TextureScale() (u, v float32) { return m.scaleU, m.scaleV }

// Transform returns the mesh's model transform for in-place edits.
func (m *Mesh) Transform() *Transform { return &m.transform }

// Translate accumulates a translation on the model transform.
func (m *Mesh) Translate(dx, dy, dz float32) { m.transform.Translate(dx, dy, dz) }

// Rotate accumulates a rotation on the model transform.
func (m *Mesh) Rotate(angleDeg float32, axis mgl32.Vec3) { m.transform.Rotate(angleDeg, axis) }

// SetRotation resets the model transform to a pure rotation.
func (m *Mesh) SetRotation(angleDeg float32, axis mgl32.Vec3) {
	m.transform.SetRotation(angleDeg, axis)
}

// Scale accumulates a scale on the model transform.
func (m *Mesh) Scale(sx, sy, sz float32) { m.transform.Scale(sx, sy, sz) }

// SetScale resets the model transform to a pure scale.
func (m *Mesh) SetScale(sx, sy, sz float32) { m.transform.SetScale(sx, sy, sz) }

// SetPosition overwrites the translation of the model transform.
func (m *Mesh) SetPosition(x, y, z float32) { m.transform.SetPosition(x, y, z) }

// ResetTransform restores the identity model transform.
func (m *Mesh) ResetTransform() { m.transform.Reset() }

// Cleanup releases the vertex array and both buffers. Later calls are no-ops.
func (m *Mesh) Cleanup() {
	if m.released {
		return
	}
	m.dev.DeleteVertexArray(m.vao)
	m.dev.DeleteBuffer(m.vbo)
	m.dev.DeleteBuffer(m.ebo)
	m.vao, m.vbo, m.ebo = 0, 0, 0
	m.released = true
}
