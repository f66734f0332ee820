package meshing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFaceTableCornersLieOnFacePlane(t *testing.T) {
	for _, f := range Faces {
		n := f.Normal()
		seen := map[mgl32.Vec3]bool{}
		for _, c := range f.Corners() {
			seen[c] = true
			// project onto the normal: +faces sit at 1, -faces at 0
			d := c.Dot(n)
			want := float32(0)
			if n.X()+n.Y()+n.Z() > 0 {
				want = 1
			}
			if n.X()+n.Y()+n.Z() < 0 {
				d = -d
			}
			if d != want {
				t.Errorf("%s corner %v not on face plane", f, c)
			}
		}
		if len(seen) != 4 {
			t.Errorf("%s has %d distinct corners, want 4", f, len(seen))
		}
	}
}

func TestFaceOffsetsAreUnitAndDistinct(t *testing.T) {
	seen := map[[3]int]Face{}
	for _, f := range Faces {
		dx, dy, dz := f.Offset()
		if abs(dx)+abs(dy)+abs(dz) != 1 {
			t.Errorf("%s offset (%d,%d,%d) is not a unit axis vector", f, dx, dy, dz)
		}
		key := [3]int{dx, dy, dz}
		if other, ok := seen[key]; ok {
			t.Errorf("%s and %s share offset %v", f, other, key)
		}
		seen[key] = f
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestInvalidFaceHasNoGeometry(t *testing.T) {
	for _, f := range []Face{-1, faceCount, Face(6), Face(100)} {
		if f.Valid() {
			t.Errorf("Face(%d).Valid() = true", int(f))
		}
		if f.String() != "invalid" {
			t.Errorf("Face(%d).String() = %q, want \"invalid\"", int(f), f.String())
		}
		if dx, dy, dz := f.Offset(); dx != 0 || dy != 0 || dz != 0 {
			t.Errorf("Face(%d).Offset() = (%d,%d,%d), want zero", int(f), dx, dy, dz)
		}
		if n := f.Normal(); n != (mgl32.Vec3{}) {
			t.Errorf("Face(%d).Normal() = %v, want zero", int(f), n)
		}
		if c := f.Corners(); c != ([4]mgl32.Vec3{}) {
			t.Errorf("Face(%d).Corners() = %v, want zero", int(f), c)
		}
		if s := FaceSet(0).With(f); s != 0 || s.Has(f) {
			t.Errorf("Face(%d) changed a FaceSet: %08b", int(f), s)
		}
	}
	for _, f := range Faces {
		if !f.Valid() {
			t.Errorf("%s should be valid", f)
		}
	}
}

func TestFaceSet(t *testing.T) {
	var s FaceSet
	s = s.With(FaceTop).With(FaceLeft).With(FaceTop)
	if !s.Has(FaceTop) || !s.Has(FaceLeft) || s.Has(FaceRight) {
		t.Errorf("unexpected membership in %08b", s)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestAppendRebasesIndices(t *testing.T) {
	a := NewMeshBuffer(1)
	a.appendFace(FaceTop, 0, 0, 0)
	b := NewMeshBuffer(1)
	b.appendFace(FaceBottom, 1, 0, 0)

	a.Append(b)
	if err := a.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if a.QuadCount() != 2 {
		t.Fatalf("QuadCount = %d, want 2", a.QuadCount())
	}
	if a.Indices[6] != 4 {
		t.Errorf("second quad starts at index %d, want 4", a.Indices[6])
	}
	if a.Vertices[4] != b.Vertices[0] {
		t.Errorf("appended vertices out of order")
	}
}

func TestValidateDetectsBrokenBuffers(t *testing.T) {
	good := func() *MeshBuffer {
		m := NewMeshBuffer(1)
		m.appendFace(FaceFront, 2, 3, 4)
		return m
	}

	tests := []struct {
		name   string
		mutate func(*MeshBuffer)
	}{
		{"missing uv", func(m *MeshBuffer) { m.UVs = m.UVs[:3] }},
		{"partial quad", func(m *MeshBuffer) {
			m.Vertices = m.Vertices[:3]
			m.UVs = m.UVs[:3]
		}},
		{"partial indices", func(m *MeshBuffer) { m.Indices = m.Indices[:5] }},
		{"index out of range", func(m *MeshBuffer) { m.Indices[2] = 4 }},
		{"extra index quad", func(m *MeshBuffer) { m.Indices = append(m.Indices, m.Indices...) }},
	}

	if err := good().Validate(); err != nil {
		t.Fatalf("valid buffer rejected: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := good()
			tt.mutate(m)
			if err := m.Validate(); err == nil {
				t.Errorf("expected Validate to fail")
			}
		})
	}
}

func TestConsumerFunc(t *testing.T) {
	var got *MeshBuffer
	var c Consumer = ConsumerFunc(func(m *MeshBuffer) error {
		got = m
		return nil
	})
	m := NewMeshBuffer(0)
	if err := c.ConsumeMesh(m); err != nil {
		t.Fatalf("ConsumeMesh: %v", err)
	}
	if got != m {
		t.Errorf("consumer received a different buffer")
	}
}
