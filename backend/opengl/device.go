// Package opengl provides an OpenGL 4.1 core backend for luminal, with GLFW
// windowing.
package opengl

import (
	"fmt"
	"image"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/luminal"
)

// Device implements luminal.Device on the current OpenGL context.
type Device struct {
	baseline luminal.ContextState
	logger   *slog.Logger

	// Uniform locations per program, looked up lazily
	uniformLocs map[uint32]map[string]int32

	// Kept reachable while installed as the driver callback
	debugProc gl.DebugProc
}

// NewDevice loads the OpenGL function pointers of the current context.
func NewDevice(logger *slog.Logger) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init OpenGL: %w", err)
	}
	if logger == nil {
		logger = luminal.Logger()
	}
	logger.Info("OpenGL context",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	return &Device{
		logger:      logger,
		uniformLocs: make(map[uint32]map[string]int32),
	}, nil
}

func setCap(cap uint32, on bool) {
	if on {
		gl.Enable(cap)
	} else {
		gl.Disable(cap)
	}
}

func applyBlend(mode luminal.BlendMode) {
	setCap(gl.BLEND, mode == luminal.BlendAlpha)
	if mode == luminal.BlendAlpha {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
}

// Configure sets and applies the baseline state.
func (d *Device) Configure(state luminal.ContextState) {
	d.baseline = state
	setCap(gl.DEPTH_TEST, state.DepthTest)
	setCap(gl.MULTISAMPLE, state.Multisample)
	applyBlend(state.Blend)
	d.SetClearColor(state.ClearColor)
}

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) SetClearColor(c luminal.Color) {
	d.baseline.ClearColor = c
	gl.ClearColor(c.R, c.G, c.B, c.A)
}

func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels reads a width×height RGBA region of the color buffer into an
// image, flipped so that row 0 is the top of the region.
func (d *Device) ReadPixels(width, height int) *image.RGBA {
	pixels := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// OpenGL origin is bottom-left
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowLen := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowLen
		copy(img.Pix[y*rowLen:(y+1)*rowLen], pixels[src:src+rowLen])
	}
	return img
}

// EnableDebugOutput installs fn through KHR_debug or ARB_debug_output.
func (d *Device) EnableDebugOutput(fn func(luminal.DebugMessage)) bool {
	d.debugProc = func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		fn(luminal.DebugMessage{
			Source:   source,
			Type:     gltype,
			ID:       id,
			Severity: mapSeverity(severity),
			Text:     message,
		})
	}

	switch {
	case glfw.ExtensionSupported("GL_KHR_debug"):
		gl.DebugMessageCallback(d.debugProc, nil)
	case glfw.ExtensionSupported("GL_ARB_debug_output"):
		gl.DebugMessageCallbackARB(d.debugProc, nil)
	default:
		d.debugProc = nil
		return false
	}
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	return true
}

func mapSeverity(s uint32) luminal.DebugSeverity {
	switch s {
	case gl.DEBUG_SEVERITY_HIGH:
		return luminal.SeverityHigh
	case gl.DEBUG_SEVERITY_MEDIUM:
		return luminal.SeverityMedium
	case gl.DEBUG_SEVERITY_LOW:
		return luminal.SeverityLow
	}
	return luminal.SeverityNotification
}

func (d *Device) CompileProgram(vertexSrc, fragmentSrc string) (luminal.ProgramID, error) {
	id, err := createShaderProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return 0, err
	}
	d.logger.Debug("shader program linked", "program", id)
	return luminal.ProgramID(id), nil
}

func (d *Device) DeleteProgram(id luminal.ProgramID) {
	delete(d.uniformLocs, uint32(id))
	gl.DeleteProgram(uint32(id))
}

func (d *Device) CreateVertexArray() luminal.VertexArrayID {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return luminal.VertexArrayID(vao)
}

func (d *Device) DeleteVertexArray(id luminal.VertexArrayID) {
	vao := uint32(id)
	gl.DeleteVertexArrays(1, &vao)
}

func (d *Device) CreateBuffer() luminal.BufferID {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return luminal.BufferID(buf)
}

func (d *Device) DeleteBuffer(id luminal.BufferID) {
	buf := uint32(id)
	gl.DeleteBuffers(1, &buf)
}

func usageEnum(u luminal.BufferUsage) uint32 {
	switch u {
	case luminal.DynamicDraw:
		return gl.DYNAMIC_DRAW
	case luminal.StreamDraw:
		return gl.STREAM_DRAW
	}
	return gl.STATIC_DRAW
}

const floatSize = 4

func (d *Device) UploadVertices(vao luminal.VertexArrayID, vbo luminal.BufferID, layout luminal.VertexLayout, data []float32, usage luminal.BufferUsage) {
	gl.BindVertexArray(uint32(vao))
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(vbo))

	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*floatSize, ptr, usageEnum(usage))

	stride := layout.Stride * floatSize
	for _, a := range layout.Attribs {
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, stride, uintptr(a.Offset*floatSize))
		gl.EnableVertexAttribArray(a.Location)
	}

	gl.BindVertexArray(0)
}

func (d *Device) UpdateVertices(vbo luminal.BufferID, offset int, data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(vbo))
	gl.BufferSubData(gl.ARRAY_BUFFER, offset*floatSize, len(data)*floatSize, gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (d *Device) UploadIndices(vao luminal.VertexArrayID, ebo luminal.BufferID, data []uint32, usage luminal.BufferUsage) {
	gl.BindVertexArray(uint32(vao))
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(ebo))
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*4, gl.Ptr(data), usageEnum(usage))
	gl.BindVertexArray(0)
}

func (d *Device) CreateTexture(desc luminal.TextureDesc, pixels []byte) (luminal.TextureID, error) {
	internal, format, bpp := int32(gl.RGBA8), uint32(gl.RGBA), 4
	if desc.Format == luminal.FormatR8 {
		internal, format, bpp = gl.R8, gl.RED, 1
	}
	if want := desc.Width * desc.Height * bpp; len(pixels) != want {
		return 0, fmt.Errorf("texture %dx%d needs %d bytes, got %d", desc.Width, desc.Height, want, len(pixels))
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	wrap := int32(gl.REPEAT)
	if desc.Wrap == luminal.WrapClampToEdge {
		wrap = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)

	minFilter, magFilter := int32(gl.LINEAR), int32(gl.LINEAR)
	switch desc.Filter {
	case luminal.FilterNearest:
		minFilter, magFilter = gl.NEAREST, gl.NEAREST
	case luminal.FilterLinearMipmap:
		minFilter = gl.LINEAR_MIPMAP_LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)

	// Single-channel rows are not 4-byte aligned.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(desc.Width), int32(desc.Height), 0, format, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	if desc.Mipmaps || desc.Filter == luminal.FilterLinearMipmap {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return luminal.TextureID(tex), nil
}

func (d *Device) DeleteTexture(id luminal.TextureID) {
	tex := uint32(id)
	gl.DeleteTextures(1, &tex)
}

func (d *Device) uniformLocation(program uint32, name string) int32 {
	locs := d.uniformLocs[program]
	if locs == nil {
		locs = make(map[string]int32)
		d.uniformLocs[program] = locs
	}
	loc, ok := locs[name]
	if !ok {
		loc = gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		if loc < 0 {
			d.logger.Debug("uniform not active", "program", program, "name", name)
		}
		locs[name] = loc
	}
	return loc
}

func (d *Device) setUniform(program uint32, u luminal.Uniform) {
	loc := d.uniformLocation(program, u.Name)
	if loc < 0 {
		return
	}
	switch v := u.Value.(type) {
	case mgl32.Mat4:
		gl.UniformMatrix4fv(loc, 1, false, &v[0])
	case mgl32.Vec2:
		gl.Uniform2f(loc, v[0], v[1])
	case mgl32.Vec3:
		gl.Uniform3f(loc, v[0], v[1], v[2])
	case mgl32.Vec4:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case float32:
		gl.Uniform1f(loc, v)
	case int32:
		gl.Uniform1i(loc, v)
	case bool:
		var i int32
		if v {
			i = 1
		}
		gl.Uniform1i(loc, i)
	default:
		d.logger.Warn("unsupported uniform type", "name", u.Name, "type", fmt.Sprintf("%T", v))
	}
}

// Draw applies the call's state, draws, and restores the baseline.
func (d *Device) Draw(call luminal.DrawCall) {
	if call.Count <= 0 {
		return
	}

	setCap(gl.DEPTH_TEST, call.DepthTest)
	applyBlend(call.Blend)

	gl.UseProgram(uint32(call.Program))
	for _, u := range call.Uniforms {
		d.setUniform(uint32(call.Program), u)
	}
	for _, t := range call.Textures {
		gl.ActiveTexture(gl.TEXTURE0 + t.Unit)
		gl.BindTexture(gl.TEXTURE_2D, uint32(t.Texture))
	}

	mode := uint32(gl.TRIANGLES)
	if call.Primitive == luminal.Lines {
		mode = gl.LINES
	}

	gl.BindVertexArray(uint32(call.VertexArray))
	if call.Indexed {
		gl.DrawElementsWithOffset(mode, call.Count, gl.UNSIGNED_INT, uintptr(call.First)*4)
	} else {
		gl.DrawArrays(mode, call.First, call.Count)
	}

	// Restore baseline state
	gl.BindVertexArray(0)
	for _, t := range call.Textures {
		gl.ActiveTexture(gl.TEXTURE0 + t.Unit)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.UseProgram(0)
	setCap(gl.DEPTH_TEST, d.baseline.DepthTest)
	applyBlend(d.baseline.Blend)
}

var _ luminal.Device = (*Device)(nil)
