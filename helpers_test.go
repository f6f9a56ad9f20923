package luminal_test

import (
	"errors"

	"github.com/go-theft-auto/luminal"
)

// drawRecord is a draw call plus the blend state seen while it ran.
type drawRecord struct {
	call        luminal.DrawCall
	blendDuring luminal.BlendMode
}

type vertexUpload struct {
	vao    luminal.VertexArrayID
	vbo    luminal.BufferID
	layout luminal.VertexLayout
	data   []float32
	usage  luminal.BufferUsage
}

type vertexUpdate struct {
	vbo    luminal.BufferID
	offset int
	data   []float32
}

// mockDevice records every call and simulates the baseline-restoring
// state model of a real device.
type mockDevice struct {
	nextID uint32
	calls  int

	baseline luminal.ContextState
	blend    luminal.BlendMode // Current blend state
	viewport [2]int
	clears   int

	compileErr  error
	textureErr  error
	debugOutput bool
	debugFn     func(luminal.DebugMessage)

	programs []luminal.ProgramID
	textures []luminal.TextureDesc
	pixels   [][]byte

	uploads       []vertexUpload
	updates       []vertexUpdate
	indexUploads  [][]uint32
	draws         []drawRecord
	deletedVAOs   []luminal.VertexArrayID
	deletedBufs   []luminal.BufferID
	deletedTex    []luminal.TextureID
	deletedProgs  []luminal.ProgramID
	configured    int
	clearColorSet []luminal.Color
}

func newMockDevice() *mockDevice {
	return &mockDevice{}
}

func (d *mockDevice) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *mockDevice) Configure(state luminal.ContextState) {
	d.calls++
	d.configured++
	d.baseline = state
	d.blend = state.Blend
}

func (d *mockDevice) Viewport(width, height int) {
	d.calls++
	d.viewport = [2]int{width, height}
}

func (d *mockDevice) SetClearColor(c luminal.Color) {
	d.calls++
	d.clearColorSet = append(d.clearColorSet, c)
}

func (d *mockDevice) Clear() {
	d.calls++
	d.clears++
}

func (d *mockDevice) EnableDebugOutput(fn func(luminal.DebugMessage)) bool {
	d.calls++
	if !d.debugOutput {
		return false
	}
	d.debugFn = fn
	return true
}

func (d *mockDevice) CompileProgram(vs, fs string) (luminal.ProgramID, error) {
	d.calls++
	if d.compileErr != nil {
		return 0, d.compileErr
	}
	p := luminal.ProgramID(d.id())
	d.programs = append(d.programs, p)
	return p, nil
}

func (d *mockDevice) DeleteProgram(id luminal.ProgramID) {
	d.calls++
	d.deletedProgs = append(d.deletedProgs, id)
}

func (d *mockDevice) CreateVertexArray() luminal.VertexArrayID {
	d.calls++
	return luminal.VertexArrayID(d.id())
}

func (d *mockDevice) DeleteVertexArray(id luminal.VertexArrayID) {
	d.calls++
	d.deletedVAOs = append(d.deletedVAOs, id)
}

func (d *mockDevice) CreateBuffer() luminal.BufferID {
	d.calls++
	return luminal.BufferID(d.id())
}

func (d *mockDevice) DeleteBuffer(id luminal.BufferID) {
	d.calls++
	d.deletedBufs = append(d.deletedBufs, id)
}

func (d *mockDevice) UploadVertices(vao luminal.VertexArrayID, vbo luminal.BufferID, layout luminal.VertexLayout, data []float32, usage luminal.BufferUsage) {
	d.calls++
	d.uploads = append(d.uploads, vertexUpload{
		vao: vao, vbo: vbo, layout: layout, usage: usage,
		data: append([]float32(nil), data...),
	})
}

func (d *mockDevice) UpdateVertices(vbo luminal.BufferID, offset int, data []float32) {
	d.calls++
	d.updates = append(d.updates, vertexUpdate{vbo: vbo, offset: offset, data: append([]float32(nil), data...)})
}

func (d *mockDevice) UploadIndices(vao luminal.VertexArrayID, ebo luminal.BufferID, data []uint32, usage luminal.BufferUsage) {
	d.calls++
	d.indexUploads = append(d.indexUploads, append([]uint32(nil), data...))
}

func (d *mockDevice) CreateTexture(desc luminal.TextureDesc, pixels []byte) (luminal.TextureID, error) {
	d.calls++
	if d.textureErr != nil {
		return 0, d.textureErr
	}
	d.textures = append(d.textures, desc)
	d.pixels = append(d.pixels, pixels)
	return luminal.TextureID(d.id()), nil
}

func (d *mockDevice) DeleteTexture(id luminal.TextureID) {
	d.calls++
	d.deletedTex = append(d.deletedTex, id)
}

func (d *mockDevice) Draw(call luminal.DrawCall) {
	d.calls++
	d.blend = call.Blend
	d.draws = append(d.draws, drawRecord{call: call, blendDuring: d.blend})
	d.blend = d.baseline.Blend
}

func (d *mockDevice) lastDraw() drawRecord {
	return d.draws[len(d.draws)-1]
}

func uniform(call luminal.DrawCall, name string) any {
	v, _ := call.Uniforms.Get(name)
	return v
}

// mockPlatform creates a single mockSurface.
type mockPlatform struct {
	initErr    error
	surfaceErr error
	deviceErr  error

	device  *mockDevice
	surface *mockSurface

	inits      int
	terminates int
	surfaceCfg luminal.SurfaceConfig
}

func newMockPlatform() *mockPlatform {
	return &mockPlatform{
		device: newMockDevice(),
		surface: &mockSurface{
			x: 100, y: 50,
			mode:    luminal.VideoMode{Width: 1920, Height: 1080, RefreshRate: 60},
			hasMode: true,
		},
	}
}

func (p *mockPlatform) Init() error {
	p.inits++
	return p.initErr
}

func (p *mockPlatform) Terminate() {
	p.terminates++
}

func (p *mockPlatform) CreateSurface(cfg luminal.SurfaceConfig) (luminal.Surface, error) {
	if p.surfaceErr != nil {
		return nil, p.surfaceErr
	}
	p.surfaceCfg = cfg
	p.surface.w, p.surface.h = cfg.Width, cfg.Height
	return p.surface, nil
}

func (p *mockPlatform) LoadDevice() (luminal.Device, error) {
	if p.deviceErr != nil {
		return nil, p.deviceErr
	}
	return p.device, nil
}

// mockSurface is a scripted surface. PollEvents runs the next scripted
// event, and the surface asks to close after closeAfter frames.
type mockSurface struct {
	x, y, w, h int
	mode       luminal.VideoMode
	hasMode    bool
	pixelScale int // Framebuffer pixels per screen coordinate; 0 means 1

	shouldClose bool
	closeAfter  int
	polls       int
	swaps       int
	shown       bool
	destroyed   bool
	current     bool
	interval    int
	title       string
	now         float64

	fullscreen   bool
	enteredModes []luminal.VideoMode
	exitedTo     []luminal.Geometry

	events []func()

	fbSize  func(w, h int)
	key     func(luminal.Key, luminal.KeyAction)
	mouse   func(luminal.MouseButton, bool)
	cursor  func(x, y float64)
	focus   func(bool)
	cleared bool
}

func (s *mockSurface) MakeContextCurrent()   { s.current = true }
func (s *mockSurface) Show()                 { s.shown = true }
func (s *mockSurface) Destroy()              { s.destroyed = true }
func (s *mockSurface) ShouldClose() bool     { return s.shouldClose }
func (s *mockSurface) SetShouldClose(v bool) { s.shouldClose = v }
func (s *mockSurface) SwapBuffers()          { s.swaps++ }
func (s *mockSurface) SetSwapInterval(n int) { s.interval = n }
func (s *mockSurface) SetTitle(title string) { s.title = title }
func (s *mockSurface) Pos() (int, int)       { return s.x, s.y }
func (s *mockSurface) SetPos(x, y int)       { s.x, s.y = x, y }
func (s *mockSurface) Size() (int, int)      { return s.w, s.h }

func (s *mockSurface) FramebufferSize() (int, int) {
	if s.pixelScale > 1 {
		return s.w * s.pixelScale, s.h * s.pixelScale
	}
	return s.w, s.h
}
func (s *mockSurface) Time() float64 { return s.now }

func (s *mockSurface) PollEvents() {
	s.polls++
	s.now += 0.016
	if len(s.events) > 0 {
		ev := s.events[0]
		s.events = s.events[1:]
		ev()
	}
	if s.closeAfter > 0 && s.polls >= s.closeAfter {
		s.shouldClose = true
	}
}

func (s *mockSurface) PrimaryVideoMode() (luminal.VideoMode, bool) {
	return s.mode, s.hasMode
}

func (s *mockSurface) EnterFullscreen(mode luminal.VideoMode) {
	s.fullscreen = true
	s.enteredModes = append(s.enteredModes, mode)
	s.x, s.y, s.w, s.h = 0, 0, mode.Width, mode.Height
}

func (s *mockSurface) ExitFullscreen(g luminal.Geometry) {
	s.fullscreen = false
	s.exitedTo = append(s.exitedTo, g)
	s.x, s.y, s.w, s.h = g.X, g.Y, g.Width, g.Height
}

func (s *mockSurface) SetFramebufferSizeCallback(fn func(w, h int))              { s.fbSize = fn }
func (s *mockSurface) SetKeyCallback(fn func(luminal.Key, luminal.KeyAction))    { s.key = fn }
func (s *mockSurface) SetMouseButtonCallback(fn func(luminal.MouseButton, bool)) { s.mouse = fn }
func (s *mockSurface) SetCursorPosCallback(fn func(x, y float64))                { s.cursor = fn }
func (s *mockSurface) SetFocusCallback(fn func(bool))                            { s.focus = fn }

func (s *mockSurface) ClearCallbacks() {
	s.cleared = true
	s.fbSize, s.key, s.mouse, s.cursor, s.focus = nil, nil, nil, nil, nil
}

func (s *mockSurface) press(k luminal.Key) {
	s.key(k, luminal.KeyPress)
	s.key(k, luminal.KeyRelease)
}

var errBoom = errors.New("boom")

func testConfig() luminal.Config {
	cfg := luminal.DefaultConfig()
	cfg.Width, cfg.Height = 800, 600
	return cfg
}
