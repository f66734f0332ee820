package meshing

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// MeshBuffer holds three parallel streams: four vertices and four UVs per
// quad, and six indices per quad referencing the vertices.
type MeshBuffer struct {
	Vertices []mgl32.Vec3
	UVs      []mgl32.Vec2
	Indices  []uint32
}

// NewMeshBuffer preallocates room for quads faces.
func NewMeshBuffer(quads int) *MeshBuffer {
	return &MeshBuffer{
		Vertices: make([]mgl32.Vec3, 0, quads*4),
		UVs:      make([]mgl32.Vec2, 0, quads*4),
		Indices:  make([]uint32, 0, quads*6),
	}
}

// QuadCount returns the number of emitted faces.
func (m *MeshBuffer) QuadCount() int {
	return len(m.Vertices) / 4
}

// TriangleCount returns the number of triangles described by Indices.
func (m *MeshBuffer) TriangleCount() int {
	return len(m.Indices) / 3
}

// Empty reports whether no face was emitted.
func (m *MeshBuffer) Empty() bool {
	return len(m.Vertices) == 0
}

// appendFace emits face f of the voxel at (x, y, z).
func (m *MeshBuffer) appendFace(f Face, x, y, z int) {
	base := uint32(len(m.Vertices))
	origin := mgl32.Vec3{float32(x), float32(y), float32(z)}
	for i, c := range faceTable[f].corners {
		m.Vertices = append(m.Vertices, origin.Add(CubeCorners[c]))
		m.UVs = append(m.UVs, FaceUVs[i])
	}
	for _, o := range quadIndices {
		m.Indices = append(m.Indices, base+o)
	}
}

// Append concatenates other onto m, rebasing its indices past m's vertices.
func (m *MeshBuffer) Append(other *MeshBuffer) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	m.UVs = append(m.UVs, other.UVs...)
	for _, i := range other.Indices {
		m.Indices = append(m.Indices, base+i)
	}
}

// Validate checks that the streams describe whole quads with in-range indices.
func (m *MeshBuffer) Validate() error {
	if len(m.Vertices) != len(m.UVs) {
		return errors.Errorf("mesh has %d vertices but %d uvs", len(m.Vertices), len(m.UVs))
	}
	if len(m.Vertices)%4 != 0 {
		return errors.Errorf("vertex count %d is not a multiple of 4", len(m.Vertices))
	}
	if len(m.Indices)%6 != 0 {
		return errors.Errorf("index count %d is not a multiple of 6", len(m.Indices))
	}
	if len(m.Indices)/6 != len(m.Vertices)/4 {
		return errors.Errorf("%d quads of indices for %d quads of vertices", len(m.Indices)/6, len(m.Vertices)/4)
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return errors.Errorf("index %d at position %d out of range (vertices=%d)", idx, i, n)
		}
	}
	return nil
}
