package luminal

import "github.com/go-gl/mathgl/mgl32"

// Uniform is a named shader uniform value. Value holds one of
// mgl32.Mat4, mgl32.Vec2, mgl32.Vec3, mgl32.Vec4, float32, int32 or bool.
type Uniform struct {
	Name  string
	Value any
}

// Uniforms is an ordered set of uniform values. Setting a name that is
// already present replaces its value in place.
type Uniforms []Uniform

func (u *Uniforms) set(name string, v any) {
	for i := range *u {
		if (*u)[i].Name == name {
			(*u)[i].Value = v
			return
		}
	}
	*u = append(*u, Uniform{Name: name, Value: v})
}

// SetMat4 sets a 4x4 matrix uniform.
func (u *Uniforms) SetMat4(name string, m mgl32.Mat4) { u.set(name, m) }

// SetVec2 sets a vec2 uniform.
func (u *Uniforms) SetVec2(name string, x, y float32) { u.set(name, mgl32.Vec2{x, y}) }

// SetVec3 sets a vec3 uniform.
func (u *Uniforms) SetVec3(name string, x, y, z float32) { u.set(name, mgl32.Vec3{x, y, z}) }

// SetVec4 sets a vec4 uniform.
func (u *Uniforms) SetVec4(name string, x, y, z, w float32) { u.set(name, mgl32.Vec4{x, y, z, w}) }

// SetColor sets a vec4 uniform from a color.
func (u *Uniforms) SetColor(name string, c Color) { u.SetVec4(name, c.R, c.G, c.B, c.A) }

// SetFloat sets a float uniform.
func (u *Uniforms) SetFloat(name string, v float32) { u.set(name, v) }

// SetInt sets an int or sampler uniform.
func (u *Uniforms) SetInt(name string, v int32) { u.set(name, v) }

// SetBool sets a bool uniform.
func (u *Uniforms) SetBool(name string, v bool) { u.set(name, v) }

// Get returns the value stored for name.
func (u Uniforms) Get(name string) (any, bool) {
	for _, e := range u {
		if e.Name == name {
			return e.Value, true
		}
	}
	return nil, false
}

// Merge returns a new set holding u overlaid with other.
func (u Uniforms) Merge(other Uniforms) Uniforms {
	out := make(Uniforms, len(u), len(u)+len(other))
	copy(out, u)
	for _, e := range other {
		out.set(e.Name, e.Value)
	}
	return out
}
