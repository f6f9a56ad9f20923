package luminal

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Projection size used until SetProjection is called.
const (
	DefaultProjectionWidth  = 800
	DefaultProjectionHeight = 600
)

const textVertexShader = `#version 410 core
layout (location = 0) in vec4 vertex; // xy = position, zw = uv

uniform mat4 proj;
uniform mat4 model;

out vec2 uv;

void main() {
    gl_Position = proj * model * vec4(vertex.xy, 0.0, 1.0);
    uv = vertex.zw;
}
` + "\x00"

const textFragmentShader = `#version 410 core
in vec2 uv;

uniform sampler2D tex;
uniform vec3 color;

out vec4 fragColor;

void main() {
    float coverage = texture(tex, uv).r;
    fragColor = vec4(color, coverage);
}
` + "\x00"

// AtlasOption configures the atlas baked by NewFontAtlas.
type AtlasOption func(*AtlasConfig)

// WithAtlasSize sets the atlas bitmap dimensions.
func WithAtlasSize(width, height int) AtlasOption {
	return func(c *AtlasConfig) {
		c.Width = width
		c.Height = height
	}
}

// WithGlyphRange sets the baked code point range [first, first+count).
func WithGlyphRange(first rune, count int) AtlasOption {
	return func(c *AtlasConfig) {
		c.First = first
		c.Count = count
	}
}

// FontAtlas renders single-line text from a baked glyph atlas. Each Render
// call rebuilds the vertex buffer and issues one draw.
type FontAtlas struct {
	dev     Device
	atlas   *GlyphAtlas
	texture TextureID
	program *Program
	vao     VertexArrayID
	vbo     BufferID

	projection mgl32.Mat4
	projW      int
	projH      int
	model      Transform

	vertices []float32 // Scratch buffer reused between renders
	released bool
}

// NewFontAtlas loads the named font through res and bakes it at size pixels.
func NewFontAtlas(dev Device, res *Resources, name string, size float32, opts ...AtlasOption) (*FontAtlas, error) {
	cfg := DefaultAtlasConfig(size)
	for _, opt := range opts {
		opt(&cfg)
	}

	ttf, err := res.Load(name)
	if err != nil {
		return nil, fmt.Errorf("load font %q: %w", name, err)
	}
	atlas, err := BakeAtlas(ttf, cfg)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", name, err)
	}
	return NewFontAtlasFromGlyphs(dev, atlas)
}

// NewFontAtlasFromGlyphs uploads an already baked atlas.
func NewFontAtlasFromGlyphs(dev Device, atlas *GlyphAtlas) (*FontAtlas, error) {
	tex, err := dev.CreateTexture(TextureDesc{
		Width:  atlas.Width,
		Height: atlas.Height,
		Format: FormatR8,
		Filter: FilterLinear,
		Wrap:   WrapClampToEdge,
	}, atlas.Pixels)
	if err != nil {
		return nil, fmt.Errorf("upload font atlas: %w", err)
	}

	prog, err := NewProgram(dev, textVertexShader, textFragmentShader)
	if err != nil {
		dev.DeleteTexture(tex)
		return nil, fmt.Errorf("text shader: %w", err)
	}

	f := &FontAtlas{
		dev:     dev,
		atlas:   atlas,
		texture: tex,
		program: prog,
		vao:     dev.CreateVertexArray(),
		vbo:     dev.CreateBuffer(),
		model:   NewTransform(),
	}
	dev.UploadVertices(f.vao, f.vbo, LayoutGlyph, nil, DynamicDraw)
	f.SetProjection(DefaultProjectionWidth, DefaultProjectionHeight)
	return f, nil
}

// SetProjection sets a pixel orthographic projection with the origin at the
// top-left corner and Y pointing down.
func (f *FontAtlas) SetProjection(width, height int) {
	f.projW = width
	f.projH = height
	f.projection = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// ProjectionSize returns the size passed to the last SetProjection.
func (f *FontAtlas) ProjectionSize() (width, height int) { return f.projW, f.projH }

// Projection returns the current projection matrix.
func (f *FontAtlas) Projection() mgl32.Mat4 { return f.projection }

// Measure returns the width (sum of advances) and height (tallest glyph)
// of text. It makes no GPU calls.
func (f *FontAtlas) Measure(text string) (width, height float32) {
	return f.atlas.Measure(text)
}

// TextWidth returns the measured width of text.
func (f *FontAtlas) TextWidth(text string) float32 {
	w, _ := f.Measure(text)
	return w
}

// TextHeight returns the measured height of text.
func (f *FontAtlas) TextHeight(text string) float32 {
	_, h := f.Measure(text)
	return h
}

// MeasureText returns the measured size of text.
func (f *FontAtlas) MeasureText(text string) Vec2 {
	w, h := f.Measure(text)
	return Vec2{X: w, Y: h}
}

// LineHeight returns the distance between consecutive baselines.
func (f *FontAtlas) LineHeight() float32 { return f.atlas.LineHeight }

// Atlas returns the CPU copy of the baked atlas.
func (f *FontAtlas) Atlas() *GlyphAtlas { return f.atlas }

// Texture returns the atlas texture handle.
func (f *FontAtlas) Texture() TextureID { return f.texture }

// SetTransform sets the model matrix applied to rendered text.
func (f *FontAtlas) SetTransform(t Transform) { f.model = t }

// Transform returns the text model transform for in-place edits.
func (f *FontAtlas) Transform() *Transform { return &f.model }

// Render draws text with its baseline starting at pixel (x, y) in the
// given color. Text with no glyph inside the baked range draws nothing.
// The draw alpha-blends without depth test; the device then returns to its
// baseline state.
func (f *FontAtlas) Render(text string, x, y, r, g, b float32) error {
	if f.released {
		return ErrReleased
	}

	f.vertices = f.appendVertices(f.vertices[:0], text, x, y)
	if len(f.vertices) == 0 {
		return nil
	}
	f.dev.UploadVertices(f.vao, f.vbo, LayoutGlyph, f.vertices, DynamicDraw)

	var u Uniforms
	u.SetMat4("proj", f.projection)
	u.SetMat4("model", f.model.Matrix())
	u.SetVec3("color", r, g, b)
	u.SetInt("tex", 0)

	call := f.program.call(u)
	call.VertexArray = f.vao
	call.Textures = []TextureBinding{{Unit: 0, Texture: f.texture}}
	call.Blend = BlendAlpha
	call.DepthTest = false
	call.Count = int32(len(f.vertices) / int(LayoutGlyph.Stride))
	f.dev.Draw(call)
	return nil
}

// RenderRelative draws text at a position given as fractions of the
// projection size.
func (f *FontAtlas) RenderRelative(text string, relX, relY, r, g, b float32) error {
	return f.Render(text, relX*float32(f.projW), relY*float32(f.projH), r, g, b)
}

// appendVertices appends two triangles per glyph: (x0,y0) (x1,y0) (x1,y1)
// and (x1,y1) (x0,y1) (x0,y0), each vertex being x, y, u, v.
func (f *FontAtlas) appendVertices(dst []float32, text string, x, y float32) []float32 {
	pen := Vec2{X: x, Y: y}
	for _, r := range text {
		q, ok := f.atlas.Quad(r, &pen)
		if !ok {
			continue
		}
		dst = append(dst,
			q.X0, q.Y0, q.U0, q.V0,
			q.X1, q.Y0, q.U1, q.V0,
			q.X1, q.Y1, q.U1, q.V1,
			q.X1, q.Y1, q.U1, q.V1,
			q.X0, q.Y1, q.U0, q.V1,
			q.X0, q.Y0, q.U0, q.V0,
		)
	}
	return dst
}

// Cleanup releases the texture, buffers and program. Later calls are no-ops.
func (f *FontAtlas) Cleanup() {
	if f.released {
		return
	}
	f.dev.DeleteTexture(f.texture)
	f.dev.DeleteBuffer(f.vbo)
	f.dev.DeleteVertexArray(f.vao)
	f.program.Release()
	f.texture, f.vbo, f.vao = 0, 0, 0
	f.released = true
}
