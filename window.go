package luminal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// SurfaceConfig describes the surface a Platform should create.
type SurfaceConfig struct {
	Width, Height int
	Title         string

	GLMajor, GLMinor int // Core, forward-compatible profile
	Samples          int
	Transparent      bool
	Resizable        bool
}

// VideoMode is a display's native mode.
type VideoMode struct {
	Width, Height int
	RefreshRate   int
}

// Platform owns the windowing system. Its methods must be called from the
// main thread.
type Platform interface {
	Init() error
	Terminate()
	// CreateSurface creates a hidden surface with a graphics context.
	CreateSurface(cfg SurfaceConfig) (Surface, error)
	// LoadDevice binds the GPU functions of the current context.
	LoadDevice() (Device, error)
}

// Surface is a native window with a graphics context.
type Surface interface {
	MakeContextCurrent()
	Show()
	Destroy()

	ShouldClose() bool
	SetShouldClose(v bool)
	SwapBuffers()
	PollEvents()
	SetSwapInterval(n int)
	SetTitle(title string)

	Pos() (x, y int)
	SetPos(x, y int)
	Size() (width, height int)
	FramebufferSize() (width, height int)

	// PrimaryVideoMode reports the primary display mode, if one is known.
	PrimaryVideoMode() (VideoMode, bool)
	// EnterFullscreen moves the surface onto the primary display.
	EnterFullscreen(mode VideoMode)
	// ExitFullscreen returns the surface to windowed mode at g.
	ExitFullscreen(g Geometry)

	SetFramebufferSizeCallback(fn func(width, height int))
	SetKeyCallback(fn func(key Key, action KeyAction))
	SetMouseButtonCallback(fn func(button MouseButton, pressed bool))
	SetCursorPosCallback(fn func(x, y float64))
	SetFocusCallback(fn func(focused bool))
	ClearCallbacks()

	// Time returns seconds since the platform was initialized.
	Time() float64
}

// Frame describes the frame being rendered.
type Frame struct {
	Index  uint64
	Time   float64 // Seconds since platform init
	Delta  float64 // Seconds since the previous frame
	Width  int
	Height int
}

// FrameFunc renders one frame. A returned error is logged and the loop
// continues with the next frame.
type FrameFunc func(Frame) error

// WindowOption configures a Window.
type WindowOption func(*Window)

// WithDeviceLoader replaces Platform.LoadDevice.
func WithDeviceLoader(load func() (Device, error)) WindowOption {
	return func(w *Window) { w.loadDevice = load }
}

// WithLogger sets the logger used by the window.
func WithLogger(l *slog.Logger) WindowOption {
	return func(w *Window) { w.logger = l }
}

// WithFullscreenKey overrides the key that toggles fullscreen.
func WithFullscreenKey(k Key) WindowOption {
	return func(w *Window) { w.fullscreenKey = k }
}

type resizeObserver struct {
	id int
	fn func(width, height int)
}

// Window owns the surface, the graphics context and the frame loop.
type Window struct {
	platform   Platform
	surface    Surface
	device     Device
	loadDevice func() (Device, error)
	logger     *slog.Logger
	cfg        Config
	input      *InputState

	title         string
	width         int
	height        int
	clearColor    Color
	fullscreenKey Key

	fullscreen bool
	windowed   Geometry // Restored when leaving fullscreen

	observers    []resizeObserver
	nextObserver int

	initialized bool
}

// NewWindow returns an uninitialized window. Call Init before Loop.
func NewWindow(platform Platform, cfg Config, opts ...WindowOption) *Window {
	w := &Window{
		platform:      platform,
		cfg:           cfg,
		input:         NewInputState(),
		title:         cfg.Title,
		width:         cfg.Width,
		height:        cfg.Height,
		clearColor:    cfg.ClearColorValue(),
		fullscreenKey: cfg.FullscreenKeyValue(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = loggerOr(w.logger)
	if w.loadDevice == nil {
		w.loadDevice = platform.LoadDevice
	}
	return w
}

// Init creates the surface and graphics context and configures the
// baseline pipeline state: depth test, multisampling and alpha blending.
// A failure releases whatever was created before it.
func (w *Window) Init() error {
	if w.initialized {
		return ErrAlreadyInitialized
	}

	if err := w.platform.Init(); err != nil {
		return fmt.Errorf("init platform: %w", err)
	}

	surface, err := w.platform.CreateSurface(SurfaceConfig{
		Width:       w.width,
		Height:      w.height,
		Title:       w.title,
		GLMajor:     4,
		GLMinor:     1,
		Samples:     w.cfg.Samples,
		Transparent: w.cfg.Transparent,
		Resizable:   w.cfg.Resizable,
	})
	if err != nil {
		w.platform.Terminate()
		return fmt.Errorf("create surface: %w", err)
	}
	if surface == nil {
		w.platform.Terminate()
		return errors.New("create surface: platform returned no surface")
	}
	w.surface = surface

	x, y := surface.Pos()
	w.windowed = Geometry{X: x, Y: y, Width: w.width, Height: w.height}

	surface.SetFramebufferSizeCallback(w.handleFramebufferSize)
	surface.SetKeyCallback(w.handleKey)
	surface.SetMouseButtonCallback(w.input.SetMouseButton)
	surface.SetCursorPosCallback(func(x, y float64) {
		w.input.SetMousePos(float32(x), float32(y))
	})
	surface.SetFocusCallback(func(focused bool) {
		if focused {
			w.logger.Debug("window focused")
		}
	})

	surface.MakeContextCurrent()
	surface.SetSwapInterval(swapInterval(w.cfg.VSync))
	surface.Show()

	dev, err := w.loadDevice()
	if err != nil {
		w.release()
		return fmt.Errorf("load graphics device: %w", err)
	}
	w.device = dev

	w.width, w.height = w.framebufferSize(w.width, w.height)
	dev.Configure(ContextState{
		DepthTest:   true,
		Multisample: w.cfg.Samples > 0,
		Blend:       BlendAlpha,
		ClearColor:  w.clearColor,
	})
	dev.Viewport(w.width, w.height)

	if w.cfg.DebugOutput {
		if dev.EnableDebugOutput(w.logDebugMessage) {
			w.logger.Debug("driver debug output enabled")
		} else {
			w.logger.Debug("driver debug output not supported")
		}
	}

	w.initialized = true
	w.logger.Info("window initialized", "title", w.title, "width", w.width, "height", w.height)
	return nil
}

func swapInterval(vsync bool) int {
	if vsync {
		return 1
	}
	return 0
}

func (w *Window) logDebugMessage(m DebugMessage) {
	level := slog.LevelDebug
	if m.Severity >= SeverityMedium {
		level = slog.LevelWarn
	}
	w.logger.Log(context.Background(), level, "driver debug message",
		"severity", m.Severity, "source", m.Source, "type", m.Type, "id", m.ID, "msg", m.Text)
}

func (w *Window) handleFramebufferSize(width, height int) {
	w.width, w.height = width, height
	w.applySize(width, height)
}

func (w *Window) handleKey(key Key, action KeyAction) {
	w.input.SetKey(key, action != KeyRelease)
	if action != KeyPress {
		return
	}
	switch key {
	case w.fullscreenKey:
		w.ToggleFullscreen()
	case KeyEscape:
		w.surface.SetShouldClose(true)
	}
}

// applySize updates the viewport and notifies resize observers in
// registration order.
func (w *Window) applySize(width, height int) {
	if w.device != nil {
		w.device.Viewport(width, height)
	}
	for _, o := range append([]resizeObserver(nil), w.observers...) {
		o.fn(width, height)
	}
}

// OnResize registers fn to be called with the new drawable size after every
// resize and fullscreen switch. The returned func unregisters it.
func (w *Window) OnResize(fn func(width, height int)) (remove func()) {
	id := w.nextObserver
	w.nextObserver++
	w.observers = append(w.observers, resizeObserver{id: id, fn: fn})
	return func() {
		for i, o := range w.observers {
			if o.id == id {
				w.observers = append(w.observers[:i], w.observers[i+1:]...)
				return
			}
		}
	}
}

// ToggleFullscreen switches between windowed mode and fullscreen on the
// primary display. The windowed geometry is saved on the way in and
// restored exactly on the way out.
func (w *Window) ToggleFullscreen() {
	if w.surface == nil {
		return
	}

	if w.fullscreen {
		w.fullscreen = false
		w.surface.ExitFullscreen(w.windowed)
		w.width, w.height = w.framebufferSize(w.windowed.Width, w.windowed.Height)
		w.logger.Debug("left fullscreen", "width", w.width, "height", w.height)
		w.applySize(w.width, w.height)
		return
	}

	mode, ok := w.surface.PrimaryVideoMode()
	if !ok {
		w.logger.Warn("fullscreen unavailable: no primary display mode")
		return
	}
	x, y := w.surface.Pos()
	sw, sh := w.surface.Size()
	w.windowed = Geometry{X: x, Y: y, Width: sw, Height: sh}

	w.fullscreen = true
	w.surface.EnterFullscreen(mode)
	w.width, w.height = w.framebufferSize(mode.Width, mode.Height)
	w.logger.Debug("entered fullscreen", "width", w.width, "height", w.height, "refresh", mode.RefreshRate)
	w.applySize(w.width, w.height)
}

// framebufferSize returns the drawable size in pixels, which differs from
// the window size in screen coordinates on HiDPI displays.
func (w *Window) framebufferSize(fallbackW, fallbackH int) (int, int) {
	if fw, fh := w.surface.FramebufferSize(); fw > 0 && fh > 0 {
		return fw, fh
	}
	return fallbackW, fallbackH
}

// Loop runs frames until a close is requested: clear, render, present,
// poll. A render error or panic is logged and the next frame still runs.
func (w *Window) Loop(render FrameFunc) error {
	if !w.initialized {
		return ErrNotInitialized
	}

	last := w.surface.Time()
	for index := uint64(0); !w.surface.ShouldClose(); index++ {
		now := w.surface.Time()
		frame := Frame{
			Index:  index,
			Time:   now,
			Delta:  now - last,
			Width:  w.width,
			Height: w.height,
		}
		last = now

		w.device.Clear()
		if err := w.runFrame(render, frame); err != nil {
			w.logger.Error("frame failed", "frame", index, "err", err)
		}
		w.surface.SwapBuffers()

		w.input.Reset()
		w.surface.PollEvents()
	}
	return nil
}

func (w *Window) runFrame(render FrameFunc, f Frame) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if verbose() {
				w.logger.Debug("frame panic stack", "stack", string(debug.Stack()))
			}
			err = fmt.Errorf("frame panicked: %v", r)
		}
	}()
	return render(f)
}

// Cleanup destroys the surface and terminates the platform. It is a no-op
// on a window that is not initialized.
func (w *Window) Cleanup() {
	if !w.initialized {
		return
	}
	w.release()
	w.initialized = false
	w.logger.Info("window resources cleaned up")
}

func (w *Window) release() {
	w.observers = nil
	if w.surface != nil {
		w.surface.ClearCallbacks()
		w.surface.Destroy()
		w.surface = nil
	}
	w.device = nil
	w.fullscreen = false
	w.platform.Terminate()
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.title = title
	if w.surface != nil {
		w.surface.SetTitle(title)
	}
}

// SetVSync enables or disables waiting for vertical sync on present.
func (w *Window) SetVSync(enabled bool) {
	w.cfg.VSync = enabled
	if w.surface != nil {
		w.surface.SetSwapInterval(swapInterval(enabled))
	}
}

// SetClearColor sets the color used to clear each frame.
func (w *Window) SetClearColor(c Color) {
	w.clearColor = c
	if w.device != nil {
		w.device.SetClearColor(c)
	}
}

// CenterWindow centers the window on the primary display.
func (w *Window) CenterWindow() {
	if w.surface == nil {
		return
	}
	mode, ok := w.surface.PrimaryVideoMode()
	if !ok {
		return
	}
	sw, sh := w.surface.Size()
	w.surface.SetPos((mode.Width-sw)/2, (mode.Height-sh)/2)
}

// RequestClose asks the loop to stop after the current frame.
func (w *Window) RequestClose() {
	if w.surface != nil {
		w.surface.SetShouldClose(true)
	}
}

// Time returns seconds since the platform was initialized, or zero.
func (w *Window) Time() float64 {
	if w.surface == nil {
		return 0
	}
	return w.surface.Time()
}

// KeyPressed returns true if key went down since the previous frame.
func (w *Window) KeyPressed(key Key) bool { return w.input.KeyPressed(key) }

func (w *Window) Title() string             { return w.title }
func (w *Window) Size() (width, height int) { return w.width, w.height }
func (w *Window) Width() int                { return w.width }
func (w *Window) Height() int               { return w.height }
func (w *Window) IsFullscreen() bool        { return w.fullscreen }
func (w *Window) Initialized() bool         { return w.initialized }
func (w *Window) Device() Device            { return w.device }
func (w *Window) Input() *InputState        { return w.input }
func (w *Window) Logger() *slog.Logger      { return w.logger }

// WindowedGeometry returns the geometry restored when leaving fullscreen.
func (w *Window) WindowedGeometry() Geometry { return w.windowed }
