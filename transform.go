package luminal

import "github.com/go-gl/mathgl/mgl32"

// OpKind identifies the kind of an elementary transform operation.
type OpKind int

const (
	OpTranslate OpKind = iota
	OpScale
	OpRotate
)

// Op is an elementary affine operation.
type Op struct {
	Kind  OpKind
	X     float32 // Translation or scale factors
	Y     float32
	Z     float32
	Angle float32    // Degrees, for OpRotate
	Axis  mgl32.Vec3 // For OpRotate; normalized on use
}

// Translation returns a translation op.
func Translation(x, y, z float32) Op { return Op{Kind: OpTranslate, X: x, Y: y, Z: z} }

// Scaling returns a scale op.
func Scaling(x, y, z float32) Op { return Op{Kind: OpScale, X: x, Y: y, Z: z} }

// Rotation returns a rotation op of angleDeg degrees around axis.
// A zero axis produces the identity.
func Rotation(angleDeg float32, axis mgl32.Vec3) Op {
	return Op{Kind: OpRotate, Angle: angleDeg, Axis: axis}
}

// Matrix returns the matrix of the op alone.
func (o Op) Matrix() mgl32.Mat4 {
	switch o.Kind {
	case OpTranslate:
		return mgl32.Translate3D(o.X, o.Y, o.Z)
	case OpScale:
		return mgl32.Scale3D(o.X, o.Y, o.Z)
	case OpRotate:
		if o.Axis.LenSqr() == 0 {
			return mgl32.Ident4()
		}
		return mgl32.HomogRotate3D(mgl32.DegToRad(o.Angle), o.Axis.Normalize())
	}
	return mgl32.Ident4()
}

// Transform is a model matrix. The zero value is the identity.
//
// Two families of operations exist and must not be confused:
//
//   - accumulate (Translate, Rotate, Scale) post-multiply the current matrix, so
//     the new op is applied to vertices before everything already present;
//   - replace (SetScale, SetRotation) discard the current matrix, including
//     any translation, and start again from identity.
//
// SetPosition is neither: it overwrites only the translation column.
type Transform struct {
	m mgl32.Mat4 // All zeros stands for the identity
}

// mat returns the matrix with the zero value resolved to the identity.
// No affine transform has m[15] == 0, so the all-zero matrix is free.
func (t Transform) mat() mgl32.Mat4 {
	if t.m == (mgl32.Mat4{}) {
		return mgl32.Ident4()
	}
	return t.m
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{m: mgl32.Ident4()}
}

// Compose returns prior·op: op is applied in the local space of prior.
func Compose(prior Transform, op Op) Transform {
	return Transform{m: prior.mat().Mul4(op.Matrix())}
}

// Replace returns identity·op.
func Replace(op Op) Transform {
	return Compose(NewTransform(), op)
}

// Build returns the canonical composition identity → scale → rotate →
// translate, that is M = T·R·S: vertices are scaled, then rotated, then
// moved.
func Build(scale mgl32.Vec3, angleDeg float32, axis mgl32.Vec3, translation mgl32.Vec3) Transform {
	t := Replace(Translation(translation.X(), translation.Y(), translation.Z()))
	t = Compose(t, Rotation(angleDeg, axis))
	return Compose(t, Scaling(scale.X(), scale.Y(), scale.Z()))
}

// Translate accumulates a translation.
func (t *Transform) Translate(dx, dy, dz float32) {
	*t = Compose(*t, Translation(dx, dy, dz))
}

// Rotate accumulates a rotation of angleDeg degrees around axis.
func (t *Transform) Rotate(angleDeg float32, axis mgl32.Vec3) {
	*t = Compose(*t, Rotation(angleDeg, axis))
}

// Scale accumulates a scale.
func (t *Transform) Scale(sx, sy, sz float32) {
	*t = Compose(*t, Scaling(sx, sy, sz))
}

// SetScale resets the matrix to a pure scale.
func (t *Transform) SetScale(sx, sy, sz float32) {
	*t = Replace(Scaling(sx, sy, sz))
}

// SetRotation resets the matrix to a pure rotation.
func (t *Transform) SetRotation(angleDeg float32, axis mgl32.Vec3) {
	*t = Replace(Rotation(angleDeg, axis))
}

// SetPosition overwrites the translation column, leaving rotation and
// scale untouched.
func (t *Transform) SetPosition(x, y, z float32) {
	t.m = t.mat()
	t.m[12] = x
	t.m[13] = y
	t.m[14] = z
}

// Reset restores the identity.
func (t *Transform) Reset() {
	*t = NewTransform()
}

// Position returns the translation column.
func (t Transform) Position() mgl32.Vec3 {
	return mgl32.Vec3{t.m[12], t.m[13], t.m[14]}
}

// Matrix returns the model matrix.
func (t Transform) Matrix() mgl32.Mat4 { return t.mat() }

// Floats returns the matrix as 16 column-major floats, ready for upload.
func (t Transform) Floats() [16]float32 { return [16]float32(t.mat()) }
