package world

import (
	"math/rand"
	"strconv"
)

// DefaultCaveThreshold is the cave density above which a voxel is carved.
const DefaultCaveThreshold = 1.0

// TerrainGenerator fills a chunk in one pass. PopulateChunk overwrites every
// voxel, so the result does not depend on previous chunk contents.
type TerrainGenerator interface {
	PopulateChunk(c *Chunk)
}

// HeightSource is a generator with a known surface height per column.
type HeightSource interface {
	HeightAt(x, z int) int
}

// SurfaceSpan is the lowest and highest surface height over a chunk's columns.
type SurfaceSpan struct {
	Min, Max int
}

func (s SurfaceSpan) String() string {
	return strconv.Itoa(s.Min) + ".." + strconv.Itoa(s.Max)
}

// SurfaceRange scans the width x width columns of src.
func SurfaceRange(src HeightSource, width int) SurfaceSpan {
	span := SurfaceSpan{Min: src.HeightAt(0, 0), Max: src.HeightAt(0, 0)}
	for x := range width {
		for z := range width {
			h := src.HeightAt(x, z)
			span.Min = min(span.Min, h)
			span.Max = max(span.Max, h)
		}
	}
	return span
}

// Populate fills c from field: a voxel is solid when y lies below the
// column's surface height and its cave density does not exceed threshold.
// Carving only removes voxels.
func Populate(c *Chunk, field Field, threshold float64) {
	width, height := c.Dimensions()
	for x := range width {
		for z := range width {
			surface := field.SurfaceHeight(x, z)
			for y := range height {
				solid := y < surface
				if solid && field.CaveDensity(x, y, z) > threshold {
					solid = false
				}
				c.SetSolid(x, y, z, solid)
			}
		}
	}
}

// NoiseGenerator is the heightmap-plus-caves generator.
type NoiseGenerator struct {
	field     Field
	threshold float64
}

// NewNoiseGenerator creates a generator over field with the given cave
// threshold.
func NewNoiseGenerator(field Field, threshold float64) *NoiseGenerator {
	return &NoiseGenerator{field: field, threshold: threshold}
}

// HeightAt exposes the surface height of column (x, z).
func (g *NoiseGenerator) HeightAt(x, z int) int {
	return g.field.SurfaceHeight(x, z)
}

// PopulateChunk fills c using the noise field.
func (g *NoiseGenerator) PopulateChunk(c *Chunk) {
	Populate(c, g.field, g.threshold)
}

// FlatGenerator fills every column up to a fixed height.
type FlatGenerator struct {
	height int
}

// NewFlatGenerator creates a generator producing a flat surface at height.
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{height: height}
}

// HeightAt returns the constant surface height.
func (g *FlatGenerator) HeightAt(x, z int) int {
	return g.height
}

// PopulateChunk fills every voxel with y < height.
func (g *FlatGenerator) PopulateChunk(c *Chunk) {
	width, height := c.Dimensions()
	for y := range height {
		for x := range width {
			for z := range width {
				c.SetSolid(x, y, z, y < g.height)
			}
		}
	}
}

// RandomGenerator marks each voxel solid independently with probability fill.
type RandomGenerator struct {
	seed int64
	fill float64
}

// NewRandomGenerator creates a seeded per-voxel random generator.
func NewRandomGenerator(seed int64, fill float64) *RandomGenerator {
	return &RandomGenerator{seed: seed, fill: fill}
}

// PopulateChunk visits voxels in y, x, z order so equal seeds give equal chunks.
func (g *RandomGenerator) PopulateChunk(c *Chunk) {
	rng := rand.New(rand.NewSource(g.seed))
	width, height := c.Dimensions()
	for y := range height {
		for x := range width {
			for z := range width {
				c.SetSolid(x, y, z, rng.Float64() < g.fill)
			}
		}
	}
}
