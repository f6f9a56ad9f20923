package luminal_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/luminal"
)

const eps = 1e-5

// near compares with an absolute tolerance. mgl32's ApproxEqual family
// switches to eps² when either side is zero, which rejects float32 residue
// such as cos(90°).
func near(a, b float32) bool {
	d := a - b
	return d < eps && d > -eps
}

func vecNear(got, want mgl32.Vec3) bool {
	return near(got[0], want[0]) && near(got[1], want[1]) && near(got[2], want[2])
}

func assertMat(t *testing.T, got, want mgl32.Mat4) {
	t.Helper()
	for i := range got {
		if !near(got[i], want[i]) {
			t.Errorf("matrix mismatch at %d\ngot  %v\nwant %v", i, got, want)
			return
		}
	}
}

func TestNewTransformIsIdentity(t *testing.T) {
	tr := luminal.NewTransform()
	assertMat(t, tr.Matrix(), mgl32.Ident4())
}

func TestResetRestoresIdentity(t *testing.T) {
	tr := luminal.NewTransform()
	tr.Translate(1, 2, 3)
	tr.Rotate(30, mgl32.Vec3{0, 1, 0})
	tr.Reset()

	fresh := luminal.NewTransform()
	if tr.Matrix() != fresh.Matrix() {
		t.Errorf("Reset() = %v, want identity", tr.Matrix())
	}
}

func TestTranslateAccumulates(t *testing.T) {
	tr := luminal.NewTransform()
	tr.Translate(1, 0, 0)
	tr.Translate(0, 2, 0)

	if got := tr.Position(); !vecNear(got, mgl32.Vec3{1, 2, 0}) {
		t.Errorf("Position() = %v, want [1 2 0]", got)
	}
}

func TestSetScaleDiscardsTranslation(t *testing.T) {
	tr := luminal.NewTransform()
	tr.Translate(5, 5, 5)
	tr.SetScale(2, 2, 2)

	assertMat(t, tr.Matrix(), mgl32.Scale3D(2, 2, 2))
	if got := tr.Position(); got != (mgl32.Vec3{}) {
		t.Errorf("Position() after SetScale = %v, want zero", got)
	}
}

func TestSetRotationDiscardsPrior(t *testing.T) {
	tr := luminal.NewTransform()
	tr.Translate(0, 0, -10)
	tr.SetRotation(90, mgl32.Vec3{0, 1, 0})

	want := mgl32.HomogRotate3D(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	assertMat(t, tr.Matrix(), want)
}

func TestRotateAppliesInLocalSpace(t *testing.T) {
	tr := luminal.NewTransform()
	tr.Translate(10, 0, 0)
	tr.Rotate(90, mgl32.Vec3{0, 0, 1})

	// The rotation acts on the vertex first, the translation after it.
	p := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !vecNear(p.Vec3(), mgl32.Vec3{10, 1, 0}) {
		t.Errorf("transformed point = %v, want [10 1 0]", p.Vec3())
	}
}

func TestSetPositionKeepsRotation(t *testing.T) {
	tr := luminal.NewTransform()
	tr.SetRotation(90, mgl32.Vec3{1, 0, 0})
	tr.SetPosition(5, 0, -5)

	want := mgl32.Translate3D(5, 0, -5).Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(90), mgl32.Vec3{1, 0, 0}))
	assertMat(t, tr.Matrix(), want)
}

func TestComposeAndReplace(t *testing.T) {
	s := luminal.Replace(luminal.Scaling(2, 2, 2))
	assertMat(t, s.Matrix(), mgl32.Scale3D(2, 2, 2))

	st := luminal.Compose(s, luminal.Translation(1, 0, 0))
	p := st.Matrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !vecNear(p.Vec3(), mgl32.Vec3{2, 0, 0}) {
		t.Errorf("S·T origin = %v, want [2 0 0]", p.Vec3())
	}
}

func TestBuildOrder(t *testing.T) {
	scale := mgl32.Vec3{2, 1, 1}
	axis := mgl32.Vec3{0, 0, 1}
	pos := mgl32.Vec3{0, 0, -3}

	got := luminal.Build(scale, 90, axis, pos).Matrix()
	want := mgl32.Translate3D(0, 0, -3).
		Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(90), axis)).
		Mul4(mgl32.Scale3D(2, 1, 1))
	assertMat(t, got, want)

	// (1,0,0) is scaled to (2,0,0), rotated to (0,2,0), moved to (0,2,-3).
	p := got.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if !vecNear(p, mgl32.Vec3{0, 2, -3}) {
		t.Errorf("Build point = %v, want [0 2 -3]", p)
	}
}

func TestZeroAxisRotationIsIdentity(t *testing.T) {
	tr := luminal.NewTransform()
	tr.Rotate(45, mgl32.Vec3{})
	assertMat(t, tr.Matrix(), mgl32.Ident4())

	tr.SetRotation(45, mgl32.Vec3{})
	assertMat(t, tr.Matrix(), mgl32.Ident4())
}

func TestRotationAxisIsNormalized(t *testing.T) {
	a := luminal.Rotation(30, mgl32.Vec3{0, 5, 0}).Matrix()
	b := luminal.Rotation(30, mgl32.Vec3{0, 1, 0}).Matrix()
	assertMat(t, a, b)
}

func TestFloatsColumnMajor(t *testing.T) {
	tr := luminal.Replace(luminal.Translation(7, 8, 9))
	f := tr.Floats()
	if f[12] != 7 || f[13] != 8 || f[14] != 9 || f[15] != 1 {
		t.Errorf("Floats() translation column = %v, want [7 8 9 1]", f[12:])
	}
}

func TestScaleAccumulates(t *testing.T) {
	tr := luminal.NewTransform()
	tr.Translate(1, 0, 0)
	tr.Scale(2, 2, 2)
	tr.Scale(1, 3, 1)

	want := mgl32.Translate3D(1, 0, 0).Mul4(mgl32.Scale3D(2, 6, 2))
	assertMat(t, tr.Matrix(), want)
	assertMat(t, tr.Matrix(), luminal.Compose(luminal.Compose(
		luminal.Replace(luminal.Translation(1, 0, 0)),
		luminal.Scaling(2, 2, 2)), luminal.Scaling(1, 3, 1)).Matrix())
}

func TestZeroTransformIsIdentity(t *testing.T) {
	var tr luminal.Transform
	assertMat(t, tr.Matrix(), mgl32.Ident4())
	if tr.Floats() != [16]float32(mgl32.Ident4()) {
		t.Errorf("Floats() of zero Transform = %v, want identity", tr.Floats())
	}

	tr.Translate(1, 2, 3)
	assertMat(t, tr.Matrix(), mgl32.Translate3D(1, 2, 3))

	var pos luminal.Transform
	pos.SetPosition(4, 5, 6)
	assertMat(t, pos.Matrix(), mgl32.Translate3D(4, 5, 6))

	var c luminal.Transform
	assertMat(t, luminal.Compose(c, luminal.Scaling(2, 2, 2)).Matrix(), mgl32.Scale3D(2, 2, 2))
}
