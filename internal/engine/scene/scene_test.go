package scene

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/spacefolio/internal/engine/geometry"
)

func TestSceneAdd(t *testing.T) {
	s := New()
	m := NewMesh("cube", geometry.Box(1, 1, 1), Material{})
	l := NewAmbientLight("ambient", White)

	if err := s.Add(m, l); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if m.ID() == 0 || l.ID() == 0 || m.ID() == l.ID() {
		t.Errorf("expected distinct non-zero IDs, got %d and %d", m.ID(), l.ID())
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if err := s.Add(m); err == nil {
		t.Error("adding the same mesh twice should fail")
	}

	obj, ok := s.Find("ambient")
	if !ok || obj != Object(l) {
		t.Errorf("Find(ambient) = %v, %v", obj, ok)
	}
	if _, ok := s.Find("missing"); ok {
		t.Error("Find should miss unknown names")
	}
}

func TestSceneAddRejectsWholeBatch(t *testing.T) {
	tests := []struct {
		name  string
		batch func(m *Mesh) []Object
	}{
		{name: "nil mesh", batch: func(m *Mesh) []Object { return []Object{m, (*Mesh)(nil)} }},
		{name: "nil light", batch: func(m *Mesh) []Object { return []Object{m, (*Light)(nil)} }},
		{name: "nil interface", batch: func(m *Mesh) []Object { return []Object{m, nil} }},
		{name: "duplicate in batch", batch: func(m *Mesh) []Object { return []Object{m, m} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			m := NewMesh("cube", geometry.Box(1, 1, 1), Material{})
			if err := s.Add(tt.batch(m)...); err == nil {
				t.Fatal("expected error")
			}
			if s.Len() != 0 || m.ID() != 0 {
				t.Errorf("rejected batch left len %d, mesh id %d", s.Len(), m.ID())
			}
			if err := s.Add(m); err != nil {
				t.Errorf("mesh unusable after rejected batch: %v", err)
			}
		})
	}
}

func TestTransformMatrix(t *testing.T) {
	tr := IdentityTransform()
	tr.Position = mgl32.Vec3{10, 0, 0}
	tr.Rotation = mgl32.Vec3{0, 0, gomath.Pi / 2}

	// +X rotated 90° about Z becomes +Y, then translated.
	p := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if !nearVec(p, mgl32.Vec3{10, 1, 0}, 1e-5) {
		t.Errorf("transformed point = %v, want (10, 1, 0)", p)
	}

	tr = IdentityTransform()
	tr.Scale = mgl32.Vec3{2, 3, 4}
	p = tr.Matrix().Mul4x1(mgl32.Vec4{1, 1, 1, 1}).Vec3()
	if p != (mgl32.Vec3{2, 3, 4}) {
		t.Errorf("scaled point = %v, want (2, 3, 4)", p)
	}
}

// nearVec compares with an absolute tolerance; mgl32's ApproxEqualThreshold
// is relative and fails on components that should be exactly zero.
func nearVec(got, want mgl32.Vec3, tol float32) bool {
	return got.Sub(want).Len() <= tol
}

func nearMat(got, want mgl32.Mat4, tol float32) bool {
	for i := range got {
		if d := got[i] - want[i]; d > tol || d < -tol {
			return false
		}
	}
	return true
}

func TestCameraViewIsInverseOfWorld(t *testing.T) {
	cam := NewPerspectiveCamera(75, 4.0/3.0, 0.1, 1000)
	cam.Position = mgl32.Vec3{3, -2, 30}
	cam.Rotation = mgl32.Vec3{0.3, -1.1, 0.2}

	id := cam.View().Mul4(cam.World())
	if !nearMat(id, mgl32.Ident4(), 1e-5) {
		t.Errorf("View * World = %v, want identity", id)
	}
}

func TestCameraDefaultLooksDownNegativeZ(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	if f := cam.Forward(); !nearVec(f, mgl32.Vec3{0, 0, -1}, 1e-6) {
		t.Errorf("Forward() = %v, want (0, 0, -1)", f)
	}
}

func TestCameraLookAt(t *testing.T) {
	tests := []struct {
		name   string
		pos    mgl32.Vec3
		target mgl32.Vec3
	}{
		{name: "from +z", pos: mgl32.Vec3{0, 0, 30}},
		{name: "from side", pos: mgl32.Vec3{30, 0, 0}},
		{name: "from above", pos: mgl32.Vec3{5, 20, 5}},
		{name: "offset target", pos: mgl32.Vec3{-4, 2, 9}, target: mgl32.Vec3{1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
			cam.Position = tt.pos
			cam.LookAt(tt.target)

			want := tt.target.Sub(tt.pos).Normalize()
			if got := cam.Forward(); !nearVec(got, want, 1e-5) {
				t.Errorf("Forward() = %v, want %v", got, want)
			}
		})
	}

	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Rotation = mgl32.Vec3{0.1, 0.2, 0}
	cam.LookAt(cam.Position)
	if cam.Rotation != (mgl32.Vec3{0.1, 0.2, 0}) {
		t.Errorf("looking at own position changed rotation to %v", cam.Rotation)
	}
}

func TestHexColor(t *testing.T) {
	c := HexColor(0xFF6347)
	want := mgl32.Vec3{1, 99.0 / 255, 71.0 / 255}
	if !c.ApproxEqual(want) {
		t.Errorf("HexColor(0xFF6347) = %v, want %v", c, want)
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{in: "ring", want: VariantRing},
		{in: " Lit ", want: VariantLit},
		{in: "PORTFOLIO", want: VariantPortfolio},
		{in: "nebula", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVariant(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVariant(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPresets(t *testing.T) {
	if got := VariantRing.Preset(); got.Stars != 0 || got.Capabilities != (Capabilities{}) {
		t.Errorf("ring preset = %+v", got)
	}
	if got := VariantLit.Preset(); got.Stars != 1 || !got.Capabilities.OrbitControl || !got.Capabilities.DebugHelpers {
		t.Errorf("lit preset = %+v", got)
	}
	if got := VariantPortfolio.Preset(); got.Stars != 200 || !got.Capabilities.ScrollBinding || !got.Capabilities.Textures {
		t.Errorf("portfolio preset = %+v", got)
	}
	if s := (Capabilities{Lighting: true, ScrollBinding: true}).String(); s != "lighting,scroll" {
		t.Errorf("Capabilities.String() = %q", s)
	}
	if s := (Capabilities{}).String(); s != "none" {
		t.Errorf("empty Capabilities.String() = %q", s)
	}
}
