package meshing

// Volume is the read-only voxel query the mesher needs. Coordinates outside
// [0,width) x [0,height) x [0,width) must report false.
type Volume interface {
	Dimensions() (width, height int)
	IsSolid(x, y, z int) bool
}

// VisibleFaces returns the faces of (x, y, z) that border a non-solid voxel.
// Air voxels have no visible faces.
func VisibleFaces(v Volume, x, y, z int) FaceSet {
	var set FaceSet
	if !v.IsSolid(x, y, z) {
		return set
	}
	for _, f := range Faces {
		dx, dy, dz := f.Offset()
		if !v.IsSolid(x+dx, y+dy, z+dz) {
			set = set.With(f)
		}
	}
	return set
}

// Build emits one quad per exposed voxel face of v, visiting voxels in
// y, x, z order. Coincident vertices of adjacent faces are not shared.
func Build(v Volume) *MeshBuffer {
	_, height := v.Dimensions()
	return buildSlab(v, 0, height)
}

// buildSlab meshes the voxels with yMin <= y < yMax into a fresh buffer.
func buildSlab(v Volume, yMin, yMax int) *MeshBuffer {
	width, _ := v.Dimensions()
	m := NewMeshBuffer(0)
	for y := yMin; y < yMax; y++ {
		for x := range width {
			for z := range width {
				faces := VisibleFaces(v, x, y, z)
				if faces == 0 {
					continue
				}
				for _, f := range Faces {
					if faces.Has(f) {
						m.appendFace(f, x, y, z)
					}
				}
			}
		}
	}
	return m
}

// BuildParallel splits v into horizontal slabs, meshes them concurrently and
// joins the results in slab order, so the output equals Build(v).
func BuildParallel(v Volume, workers int) *MeshBuffer {
	if workers <= 1 {
		return Build(v)
	}
	pool := NewWorkerPool(workers, workers)
	defer pool.Shutdown()
	return pool.Build(v)
}

// slabs partitions [0,height) into at most n contiguous ranges.
func slabs(height, n int) [][2]int {
	if n > height {
		n = height
	}
	if n < 1 {
		n = 1
	}
	out := make([][2]int, 0, n)
	size, rem := height/n, height%n
	start := 0
	for i := range n {
		end := start + size
		if i < rem {
			end++
		}
		out = append(out, [2]int{start, end})
		start = end
	}
	return out
}
