package luminal

import "fmt"

const rectVertexShader = `#version 410 core
layout (location = 0) in vec2 aPos;

uniform vec2 screenSize;

void main() {
    float x = aPos.x / screenSize.x * 2.0 - 1.0;
    float y = 1.0 - aPos.y / screenSize.y * 2.0;
    gl_Position = vec4(x, y, 0.0, 1.0);
}
` + "\x00"

const rectFragmentShader = `#version 410 core
uniform vec4 rectColor;

out vec4 fragColor;

void main() {
    fragColor = rectColor;
}
` + "\x00"

// ScreenRect is a solid rectangle in window pixels, origin top-left.
type ScreenRect struct {
	dev     Device
	program *Program
	vao     VertexArrayID
	vbo     BufferID
	ebo     BufferID

	rect     Rect
	released bool
}

// NewScreenRect compiles the rectangle shader and allocates its buffers.
func NewScreenRect(dev Device, r Rect) (*ScreenRect, error) {
	prog, err := NewProgram(dev, rectVertexShader, rectFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("rectangle shader: %w", err)
	}
	s := &ScreenRect{
		dev:     dev,
		program: prog,
		vao:     dev.CreateVertexArray(),
		vbo:     dev.CreateBuffer(),
		ebo:     dev.CreateBuffer(),
		rect:    r,
	}
	dev.UploadVertices(s.vao, s.vbo, LayoutPosition2D, s.corners(), DynamicDraw)
	dev.UploadIndices(s.vao, s.ebo, QuadIndices, StaticDraw)
	return s, nil
}

func (s *ScreenRect) corners() []float32 {
	r := s.rect
	return []float32{
		r.X, r.Y,
		r.X + r.W, r.Y,
		r.X + r.W, r.Y + r.H,
		r.X, r.Y + r.H,
	}
}

// SetRect moves or resizes the rectangle.
func (s *ScreenRect) SetRect(r Rect) {
	if r == s.rect || s.released {
		return
	}
	s.rect = r
	s.dev.UpdateVertices(s.vbo, 0, s.corners())
}

// Rect returns the rectangle in pixels.
func (s *ScreenRect) Rect() Rect { return s.rect }

// Draw fills the rectangle on a screenW×screenH surface.
func (s *ScreenRect) Draw(screenW, screenH int, c Color) error {
	if s.released {
		return ErrReleased
	}
	var u Uniforms
	u.SetVec2("screenSize", float32(screenW), float32(screenH))
	u.SetColor("rectColor", c)

	call := s.program.call(u)
	call.VertexArray = s.vao
	call.Indexed = true
	call.Count = int32(len(QuadIndices))
	call.Blend = BlendAlpha
	s.dev.Draw(call)
	return nil
}

// Cleanup releases the buffers and program. Later calls are no-ops.
func (s *ScreenRect) Cleanup() {
	if s.released {
		return
	}
	s.dev.DeleteVertexArray(s.vao)
	s.dev.DeleteBuffer(s.vbo)
	s.dev.DeleteBuffer(s.ebo)
	s.program.Release()
	s.vao, s.vbo, s.ebo = 0, 0, 0
	s.released = true
}

// Button is a labeled rectangle anchored at a position relative to the
// window size. Call UpdatePosition from a resize observer.
type Button struct {
	RelX, RelY float32 // Anchor as a fraction of the window size
	Width      float32
	Height     float32
	Label      string

	Color      Color
	HoverColor Color
	TextColor  Color

	font    *FontAtlas
	bg      *ScreenRect
	hovered bool
}

// NewButton creates a button of width×height pixels anchored at
// (relX, relY) and lays it out for a windowW×windowH window.
func NewButton(dev Device, font *FontAtlas, relX, relY, width, height float32, label string, windowW, windowH int) (*Button, error) {
	b := &Button{
		RelX:       relX,
		RelY:       relY,
		Width:      width,
		Height:     height,
		Label:      label,
		Color:      RGB(0.1, 0.2, 0.3),
		HoverColor: RGB(0.2, 0.35, 0.5),
		TextColor:  ColorWhite,
		font:       font,
	}
	bg, err := NewScreenRect(dev, b.rectFor(windowW, windowH))
	if err != nil {
		return nil, fmt.Errorf("button %q: %w", label, err)
	}
	b.bg = bg
	return b, nil
}

func (b *Button) rectFor(windowW, windowH int) Rect {
	return Rect{
		X: float32(int(b.RelX * float32(windowW))),
		Y: float32(int(b.RelY * float32(windowH))),
		W: b.Width,
		H: b.Height,
	}
}

// UpdatePosition recomputes the pixel position for a new window size.
func (b *Button) UpdatePosition(windowW, windowH int) {
	b.bg.SetRect(b.rectFor(windowW, windowH))
}

// Bounds returns the button rectangle in pixels.
func (b *Button) Bounds() Rect { return b.bg.Rect() }

// Contains returns true if the pixel (x, y) is inside the button.
func (b *Button) Contains(x, y float32) bool {
	return b.bg.Rect().Contains(Vec2{X: x, Y: y})
}

// Update tracks hover state and reports a left click inside the button.
func (b *Button) Update(in *InputState) (clicked bool) {
	b.hovered = b.Contains(in.MouseX, in.MouseY)
	return b.hovered && in.MouseClicked(MouseButtonLeft)
}

// Hovered returns the hover state from the last Update.
func (b *Button) Hovered() bool { return b.hovered }

// Draw draws the background and then the label.
func (b *Button) Draw(windowW, windowH int) error {
	if err := b.DrawBackground(windowW, windowH); err != nil {
		return err
	}
	return b.DrawText()
}

// DrawBackground draws only the rectangle.
func (b *Button) DrawBackground(windowW, windowH int) error {
	c := b.Color
	if b.hovered {
		c = b.HoverColor
	}
	return b.bg.Draw(windowW, windowH, c)
}

// DrawText draws only the label, centered on the rectangle. The label is
// drawn through the font's current projection.
func (b *Button) DrawText() error {
	r := b.bg.Rect()
	w, h := b.font.Measure(b.Label)
	x := r.X + (r.W-w)/2
	baseline := r.Y + (r.H+h)/2
	return b.font.Render(b.Label, x, baseline, b.TextColor.R, b.TextColor.G, b.TextColor.B)
}

// Cleanup releases the background rectangle. The font is not owned.
func (b *Button) Cleanup() {
	b.bg.Cleanup()
}
