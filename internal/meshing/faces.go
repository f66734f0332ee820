package meshing

import "github.com/go-gl/mathgl/mgl32"

// Face identifies one side of a unit cube.
type Face int

const (
	FaceBack   Face = iota // -Z
	FaceFront              // +Z
	FaceTop                // +Y
	FaceBottom             // -Y
	FaceLeft               // -X
	FaceRight              // +X

	faceCount
)

// Faces lists every face in table order.
var Faces = [faceCount]Face{FaceBack, FaceFront, FaceTop, FaceBottom, FaceLeft, FaceRight}

func (f Face) String() string {
	switch f {
	case FaceBack:
		return "back"
	case FaceFront:
		return "front"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	default:
		return "invalid"
	}
}

// CubeCorners are the eight corners of the unit cube at the voxel origin.
var CubeCorners = [8]mgl32.Vec3{
	{0, 0, 0},
	{1, 0, 0},
	{1, 1, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 0, 1},
	{1, 1, 1},
	{0, 1, 1},
}

// FaceUVs are assigned to a quad's corners in emission order.
var FaceUVs = [4]mgl32.Vec2{
	{0, 0},
	{0, 1},
	{1, 0},
	{1, 1},
}

type faceDescriptor struct {
	offset  [3]int
	corners [4]int
}

// faceTable is the only definition of face geometry. Corners taken as
// (0,1,2) and (2,1,3) wind counter-clockwise seen from outside the cube.
var faceTable = [faceCount]faceDescriptor{
	FaceBack:   {offset: [3]int{0, 0, -1}, corners: [4]int{0, 3, 1, 2}},
	FaceFront:  {offset: [3]int{0, 0, 1}, corners: [4]int{5, 6, 4, 7}},
	FaceTop:    {offset: [3]int{0, 1, 0}, corners: [4]int{3, 7, 2, 6}},
	FaceBottom: {offset: [3]int{0, -1, 0}, corners: [4]int{1, 5, 0, 4}},
	FaceLeft:   {offset: [3]int{-1, 0, 0}, corners: [4]int{4, 7, 0, 3}},
	FaceRight:  {offset: [3]int{1, 0, 0}, corners: [4]int{1, 2, 5, 6}},
}

// Valid reports whether f is one of Faces. The geometry accessors return
// zero values for invalid faces.
func (f Face) Valid() bool {
	return f >= 0 && f < faceCount
}

// Offset returns the neighbour direction checked for f.
func (f Face) Offset() (dx, dy, dz int) {
	if !f.Valid() {
		return 0, 0, 0
	}
	o := faceTable[f].offset
	return o[0], o[1], o[2]
}

// Normal returns the outward unit normal of f.
func (f Face) Normal() mgl32.Vec3 {
	dx, dy, dz := f.Offset()
	return mgl32.Vec3{float32(dx), float32(dy), float32(dz)}
}

// Corners returns the four cube corners of f in emission order.
func (f Face) Corners() [4]mgl32.Vec3 {
	var out [4]mgl32.Vec3
	if !f.Valid() {
		return out
	}
	for i, c := range faceTable[f].corners {
		out[i] = CubeCorners[c]
	}
	return out
}

// quadIndices are the per-quad index offsets: triangles (0,1,2) and (2,1,3).
var quadIndices = [6]uint32{0, 1, 2, 2, 1, 3}

// FaceSet is a bitmask of faces.
type FaceSet uint8

// Has reports whether f is in the set.
func (s FaceSet) Has(f Face) bool {
	return f.Valid() && s&(1<<uint(f)) != 0
}

// With returns the set including f.
func (s FaceSet) With(f Face) FaceSet {
	if !f.Valid() {
		return s
	}
	return s | 1<<uint(f)
}

// Len returns the number of faces in the set.
func (s FaceSet) Len() int {
	n := 0
	for _, f := range Faces {
		if s.Has(f) {
			n++
		}
	}
	return n
}
