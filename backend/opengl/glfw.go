package opengl

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/luminal"
)

// Platform implements luminal.Platform with GLFW. GLFW must be driven from
// the main OS thread; call runtime.LockOSThread in main's init.
type Platform struct {
	logger *slog.Logger
}

// NewPlatform returns a GLFW platform. A nil logger uses the luminal logger.
func NewPlatform(logger *slog.Logger) *Platform {
	if logger == nil {
		logger = luminal.Logger()
	}
	return &Platform{logger: logger}
}

func (p *Platform) Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init GLFW: %w", err)
	}
	return nil
}

func (p *Platform) Terminate() {
	glfw.Terminate()
}

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

// CreateSurface creates a hidden window with a core-profile context.
func (p *Platform) CreateSurface(cfg luminal.SurfaceConfig) (luminal.Surface, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, boolHint(cfg.Resizable))
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, cfg.Samples)
	glfw.WindowHint(glfw.TransparentFramebuffer, boolHint(cfg.Transparent))

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create GLFW window: %w", err)
	}
	return &Surface{window: window}, nil
}

// LoadDevice loads OpenGL for the current context.
func (p *Platform) LoadDevice() (luminal.Device, error) {
	return NewDevice(p.logger)
}

// Surface implements luminal.Surface over a GLFW window.
type Surface struct {
	window *glfw.Window
}

// Window returns the underlying GLFW window.
func (s *Surface) Window() *glfw.Window { return s.window }

func (s *Surface) MakeContextCurrent()                  { s.window.MakeContextCurrent() }
func (s *Surface) Show()                                { s.window.Show() }
func (s *Surface) Destroy()                             { s.window.Destroy() }
func (s *Surface) ShouldClose() bool                    { return s.window.ShouldClose() }
func (s *Surface) SetShouldClose(v bool)                { s.window.SetShouldClose(v) }
func (s *Surface) SwapBuffers()                         { s.window.SwapBuffers() }
func (s *Surface) PollEvents()                          { glfw.PollEvents() }
func (s *Surface) SetSwapInterval(n int)                { glfw.SwapInterval(n) }
func (s *Surface) SetTitle(title string)                { s.window.SetTitle(title) }
func (s *Surface) Pos() (x, y int)                      { return s.window.GetPos() }
func (s *Surface) SetPos(x, y int)                      { s.window.SetPos(x, y) }
func (s *Surface) Size() (width, height int)            { return s.window.GetSize() }
func (s *Surface) FramebufferSize() (width, height int) { return s.window.GetFramebufferSize() }
func (s *Surface) Time() float64                        { return glfw.GetTime() }

func (s *Surface) PrimaryVideoMode() (luminal.VideoMode, bool) {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return luminal.VideoMode{}, false
	}
	mode := monitor.GetVideoMode()
	if mode == nil {
		return luminal.VideoMode{}, false
	}
	return luminal.VideoMode{Width: mode.Width, Height: mode.Height, RefreshRate: mode.RefreshRate}, true
}

func (s *Surface) EnterFullscreen(mode luminal.VideoMode) {
	s.window.SetMonitor(glfw.GetPrimaryMonitor(), 0, 0, mode.Width, mode.Height, mode.RefreshRate)
}

func (s *Surface) ExitFullscreen(g luminal.Geometry) {
	s.window.SetMonitor(nil, g.X, g.Y, g.Width, g.Height, 0)
}

func (s *Surface) SetFramebufferSizeCallback(fn func(width, height int)) {
	s.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		fn(width, height)
	})
}

func (s *Surface) SetKeyCallback(fn func(key luminal.Key, action luminal.KeyAction)) {
	s.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k := glfwKeyToKey(key)
		if k == luminal.KeyNone {
			return
		}
		switch action {
		case glfw.Press:
			fn(k, luminal.KeyPress)
		case glfw.Repeat:
			fn(k, luminal.KeyRepeat)
		case glfw.Release:
			fn(k, luminal.KeyRelease)
		}
	})
}

func (s *Surface) SetMouseButtonCallback(fn func(button luminal.MouseButton, pressed bool)) {
	s.window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b := glfwMouseButtonToButton(button)
		if b < 0 {
			return
		}
		fn(b, action == glfw.Press)
	})
}

func (s *Surface) SetCursorPosCallback(fn func(x, y float64)) {
	s.window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		fn(x, y)
	})
}

func (s *Surface) SetFocusCallback(fn func(focused bool)) {
	s.window.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		fn(focused)
	})
}

// ClearCallbacks removes every callback installed through the Surface.
func (s *Surface) ClearCallbacks() {
	s.window.SetFramebufferSizeCallback(nil)
	s.window.SetKeyCallback(nil)
	s.window.SetMouseButtonCallback(nil)
	s.window.SetCursorPosCallback(nil)
	s.window.SetFocusCallback(nil)
}

var glfwKeys = map[glfw.Key]luminal.Key{
	glfw.KeyEscape: luminal.KeyEscape,
	glfw.KeyEnter:  luminal.KeyEnter,
	glfw.KeySpace:  luminal.KeySpace,
	glfw.KeyTab:    luminal.KeyTab,
	glfw.KeyLeft:   luminal.KeyLeft,
	glfw.KeyRight:  luminal.KeyRight,
	glfw.KeyUp:     luminal.KeyUp,
	glfw.KeyDown:   luminal.KeyDown,
	glfw.KeyW:      luminal.KeyW,
	glfw.KeyA:      luminal.KeyA,
	glfw.KeyS:      luminal.KeyS,
	glfw.KeyD:      luminal.KeyD,
	glfw.KeyQ:      luminal.KeyQ,
	glfw.KeyE:      luminal.KeyE,
	glfw.KeyR:      luminal.KeyR,
	glfw.Key1:      luminal.Key1,
	glfw.Key2:      luminal.Key2,
	glfw.Key3:      luminal.Key3,
	glfw.Key4:      luminal.Key4,
	glfw.Key5:      luminal.Key5,
	glfw.Key6:      luminal.Key6,
	glfw.KeyF1:     luminal.KeyF1,
	glfw.KeyF2:     luminal.KeyF2,
	glfw.KeyF3:     luminal.KeyF3,
	glfw.KeyF4:     luminal.KeyF4,
	glfw.KeyF5:     luminal.KeyF5,
	glfw.KeyF6:     luminal.KeyF6,
	glfw.KeyF7:     luminal.KeyF7,
	glfw.KeyF8:     luminal.KeyF8,
	glfw.KeyF9:     luminal.KeyF9,
	glfw.KeyF10:    luminal.KeyF10,
	glfw.KeyF11:    luminal.KeyF11,
	glfw.KeyF12:    luminal.KeyF12,
}

// glfwKeyToKey maps GLFW keys to luminal keys.
func glfwKeyToKey(key glfw.Key) luminal.Key {
	if k, ok := glfwKeys[key]; ok {
		return k
	}
	return luminal.KeyNone
}

// glfwMouseButtonToButton maps GLFW mouse buttons to luminal buttons.
func glfwMouseButtonToButton(button glfw.MouseButton) luminal.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return luminal.MouseButtonLeft
	case glfw.MouseButtonRight:
		return luminal.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return luminal.MouseButtonMiddle
	default:
		return -1
	}
}

var (
	_ luminal.Platform = (*Platform)(nil)
	_ luminal.Surface  = (*Surface)(nil)
)
