package world

import (
	"math"

	"github.com/pkg/errors"
	"github.com/willf/bitset"
)

// ErrInvalidDimensions is returned when a chunk is requested with a
// non-positive width or height.
var ErrInvalidDimensions = errors.New("chunk dimensions must be positive and within MaxVolume")

// MaxVolume caps width*width*height so the bitset stays addressable and
// allocatable (128 MiB at the limit).
const MaxVolume = 1 << 30

// Chunk is a dense WIDTH x HEIGHT x WIDTH grid of solid/empty voxels.
// One bit per voxel, addressed by index(x, y, z).
type Chunk struct {
	width  int
	height int
	solid  *bitset.BitSet
}

// NewChunk creates an empty (all air) chunk.
func NewChunk(width, height int) (*Chunk, error) {
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}
	return &Chunk{
		width:  width,
		height: height,
		solid:  bitset.New(uint(width * width * height)),
	}, nil
}

// CheckDimensions returns a wrapped ErrInvalidDimensions unless both sizes are
// positive and the voxel count fits MaxVolume.
func CheckDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidDimensions, "got width=%d height=%d", width, height)
	}
	if !volumeFits(width, height) {
		return errors.Wrapf(ErrInvalidDimensions, "width=%d height=%d exceeds %d voxels", width, height, MaxVolume)
	}
	return nil
}

// volumeFits reports whether width*width*height is at most MaxVolume,
// checking each step before it can overflow.
func volumeFits(width, height int) bool {
	if width > math.MaxInt/width {
		return false
	}
	area := width * width
	return area <= MaxVolume/height
}

// Dimensions returns the chunk width (x and z) and height (y).
func (c *Chunk) Dimensions() (width, height int) {
	return c.width, c.height
}

// Volume returns the number of voxels in the chunk.
func (c *Chunk) Volume() int {
	return c.width * c.width * c.height
}

// Contains reports whether (x, y, z) lies inside the chunk.
func (c *Chunk) Contains(x, y, z int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height && z >= 0 && z < c.width
}

// index converts local coordinates to a flat row-major offset
func (c *Chunk) index(x, y, z int) uint {
	return uint(x + z*c.width + y*c.width*c.width)
}

// IsSolid returns the stored flag for (x, y, z). Coordinates outside the
// chunk are air.
func (c *Chunk) IsSolid(x, y, z int) bool {
	if !c.Contains(x, y, z) {
		return false
	}
	return c.solid.Test(c.index(x, y, z))
}

// SetSolid sets the flag for (x, y, z). Out of range writes are ignored.
// Generators call this; the chunk must not be modified while it is meshed.
func (c *Chunk) SetSolid(x, y, z int, solid bool) {
	if !c.Contains(x, y, z) {
		return
	}
	i := c.index(x, y, z)
	if solid {
		c.solid.Set(i)
	} else {
		c.solid.Clear(i)
	}
}

// SolidCount returns the number of solid voxels.
func (c *Chunk) SolidCount() int {
	return int(c.solid.Count())
}

// ColumnHeight returns one past the highest solid y in column (x, z), or 0
// when the column is empty or out of range.
func (c *Chunk) ColumnHeight(x, z int) int {
	for y := c.height - 1; y >= 0; y-- {
		if c.IsSolid(x, y, z) {
			return y + 1
		}
	}
	return 0
}
