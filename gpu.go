package luminal

// GPU object handles. Zero is never a valid handle.
type (
	ProgramID     uint32
	BufferID      uint32
	VertexArrayID uint32
	TextureID     uint32
)

// BufferUsage hints how often a buffer's contents change.
type BufferUsage int

const (
	StaticDraw BufferUsage = iota
	DynamicDraw
	StreamDraw
)

// VertexAttrib describes one float attribute in an interleaved vertex.
type VertexAttrib struct {
	Location uint32
	Size     int32 // Number of float components
	Offset   int32 // Offset in floats from the start of the vertex
}

// VertexLayout describes an interleaved float vertex format.
type VertexLayout struct {
	Stride  int32 // Floats per vertex
	Attribs []VertexAttrib
}

// Standard vertex layouts.
var (
	// LayoutPositionNormalUV is position(3) normal(3) uv(2), used by 3D planes.
	LayoutPositionNormalUV = VertexLayout{
		Stride: 8,
		Attribs: []VertexAttrib{
			{Location: 0, Size: 3, Offset: 0},
			{Location: 1, Size: 3, Offset: 3},
			{Location: 2, Size: 2, Offset: 6},
		},
	}

	// LayoutPositionUV is position(3) uv(2), used by explicit meshes.
	LayoutPositionUV = VertexLayout{
		Stride: 5,
		Attribs: []VertexAttrib{
			{Location: 0, Size: 3, Offset: 0},
			{Location: 1, Size: 2, Offset: 3},
		},
	}

	// LayoutPosition2D is position(2), used by screen-space rectangles.
	LayoutPosition2D = VertexLayout{
		Stride:  2,
		Attribs: []VertexAttrib{{Location: 0, Size: 2, Offset: 0}},
	}

	// LayoutGlyph packs position(2) and atlas uv(2) into one vec4 attribute.
	LayoutGlyph = VertexLayout{
		Stride:  4,
		Attribs: []VertexAttrib{{Location: 0, Size: 4, Offset: 0}},
	}
)

// QuadIndices is the two-triangle index list shared by every quad.
var QuadIndices = []uint32{0, 1, 2, 2, 3, 0}

// TextureFormat selects the texel layout of a texture.
type TextureFormat int

const (
	FormatRGBA8 TextureFormat = iota
	FormatR8
)

// TextureFilter selects texture sampling.
type TextureFilter int

const (
	FilterLinear TextureFilter = iota
	FilterNearest
	FilterLinearMipmap
)

// TextureWrap selects texture addressing outside [0,1].
type TextureWrap int

const (
	WrapRepeat TextureWrap = iota
	WrapClampToEdge
)

// TextureDesc describes a 2D texture upload.
type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Filter        TextureFilter
	Wrap          TextureWrap
	Mipmaps       bool
}

// BlendMode is the blend state of a single draw call.
type BlendMode int

const (
	BlendNone  BlendMode = iota
	BlendAlpha           // src-alpha, one-minus-src-alpha
)

// Primitive is the kind of geometry a draw call rasterizes.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
)

// TextureBinding binds a texture to a texture unit for one draw call.
type TextureBinding struct {
	Unit    uint32
	Texture TextureID
}

// DrawCall is a complete, self-describing draw. Every piece of pipeline
// state a draw depends on travels with it; a Device restores its baseline
// state after each call.
type DrawCall struct {
	Program     ProgramID
	VertexArray VertexArrayID
	Textures    []TextureBinding
	Uniforms    Uniforms
	Blend       BlendMode
	DepthTest   bool
	Primitive   Primitive
	Indexed     bool
	First       int32
	Count       int32 // Index count when Indexed, vertex count otherwise
}

// ContextState is the baseline pipeline state of a device. Draw calls may
// override it for their own duration only.
type ContextState struct {
	DepthTest   bool
	Multisample bool
	Blend       BlendMode
	ClearColor  Color
}

// DebugSeverity ranks a driver debug message.
type DebugSeverity int

const (
	SeverityNotification DebugSeverity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
)

func (s DebugSeverity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	}
	return "notification"
}

// DebugMessage is a message delivered by the driver's debug output.
// Source and Type are the driver's raw enum values.
type DebugMessage struct {
	Source   uint32
	Type     uint32
	ID       uint32
	Severity DebugSeverity
	Text     string
}

// Device is the GPU command surface every renderer submits through.
// All methods must be called on the thread that owns the context.
type Device interface {
	// Configure sets the baseline state restored after every draw call.
	Configure(state ContextState)
	Viewport(width, height int)
	SetClearColor(c Color)
	// Clear clears the color and depth buffers.
	Clear()
	// EnableDebugOutput installs fn as the driver debug hook. It reports
	// false when the driver has no debug output capability.
	EnableDebugOutput(fn func(DebugMessage)) bool

	CompileProgram(vertexSrc, fragmentSrc string) (ProgramID, error)
	DeleteProgram(id ProgramID)

	CreateVertexArray() VertexArrayID
	DeleteVertexArray(id VertexArrayID)
	CreateBuffer() BufferID
	DeleteBuffer(id BufferID)

	// UploadVertices replaces the contents of vbo and records it as the
	// vertex source of vao using layout.
	UploadVertices(vao VertexArrayID, vbo BufferID, layout VertexLayout, data []float32, usage BufferUsage)
	// UpdateVertices overwrites part of vbo starting at offset floats.
	UpdateVertices(vbo BufferID, offset int, data []float32)
	// UploadIndices replaces the contents of ebo and attaches it to vao.
	UploadIndices(vao VertexArrayID, ebo BufferID, data []uint32, usage BufferUsage)

	CreateTexture(desc TextureDesc, pixels []byte) (TextureID, error)
	DeleteTexture(id TextureID)

	Draw(call DrawCall)
}
