package luminal

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked shader program plus the uniforms that persist across
// its draw calls (for example a light position set once per frame).
// Values passed with an individual draw call override persistent ones.
type Program struct {
	dev      Device
	id       ProgramID
	uniforms Uniforms
}

// NewProgram compiles and links the given sources.
// Compile and link failures are returned as *ShaderError.
func NewProgram(dev Device, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := dev.CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("create shader program: %w", err)
	}
	return &Program{dev: dev, id: id}, nil
}

// LoadProgram reads both sources through res and compiles them.
func LoadProgram(dev Device, res *Resources, vertexName, fragmentName string) (*Program, error) {
	vs, err := res.LoadString(vertexName)
	if err != nil {
		return nil, fmt.Errorf("load vertex shader: %w", err)
	}
	fs, err := res.LoadString(fragmentName)
	if err != nil {
		return nil, fmt.Errorf("load fragment shader: %w", err)
	}
	p, err := NewProgram(dev, vs, fs)
	if err != nil {
		return nil, fmt.Errorf("%s + %s: %w", vertexName, fragmentName, err)
	}
	return p, nil
}

// ID returns the program handle, or zero once released.
func (p *Program) ID() ProgramID { return p.id }

// Uniforms returns the persistent uniform values.
func (p *Program) Uniforms() Uniforms { return p.uniforms }

// Typed setters for persistent uniforms.

func (p *Program) SetMat4(name string, m mgl32.Mat4)       { p.uniforms.SetMat4(name, m) }
func (p *Program) SetVec2(name string, x, y float32)       { p.uniforms.SetVec2(name, x, y) }
func (p *Program) SetVec3(name string, x, y, z float32)    { p.uniforms.SetVec3(name, x, y, z) }
func (p *Program) SetVec4(name string, x, y, z, w float32) { p.uniforms.SetVec4(name, x, y, z, w) }
func (p *Program) SetFloat(name string, v float32)         { p.uniforms.SetFloat(name, v) }
func (p *Program) SetInt(name string, v int32)             { p.uniforms.SetInt(name, v) }
func (p *Program) SetBool(name string, v bool)             { p.uniforms.SetBool(name, v) }

// call returns a draw call bound to this program carrying the persistent
// uniforms overlaid with perDraw.
func (p *Program) call(perDraw Uniforms) DrawCall {
	return DrawCall{
		Program:  p.id,
		Uniforms: p.uniforms.Merge(perDraw),
	}
}

// Release deletes the program. It is safe to call more than once.
func (p *Program) Release() {
	if p == nil || p.id == 0 {
		return
	}
	p.dev.DeleteProgram(p.id)
	p.id = 0
}
