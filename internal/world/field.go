package world

import "math"

// Field answers the two questions populate asks about every voxel.
type Field interface {
	// SurfaceHeight returns the terrain height for column (x, z). Voxels
	// with y below it are filled.
	SurfaceHeight(x, z int) int
	// CaveDensity returns a non-negative carving density for (x, y, z).
	CaveDensity(x, y, z int) float64
}

// NoiseParams positions and scales one noise lookup. Coordinates are divided
// by the chunk width, multiplied by Scale and shifted by Offset before
// sampling; the folded sample is multiplied by Amplitude.
type NoiseParams struct {
	Offset    float64 `yaml:"offset"`
	Scale     float64 `yaml:"scale"`
	Amplitude float64 `yaml:"amplitude"`
}

func (p NoiseParams) coord(v, width int) float64 {
	return float64(v)/float64(width)*p.Scale + p.Offset
}

// NoiseField derives surface heights and cave densities from a Sampler for
// a chunk of the given dimensions.
type NoiseField struct {
	sampler Sampler
	width   int
	height  int
	surface NoiseParams
	cave    NoiseParams
}

// NewNoiseField binds sampler to a width x height chunk.
func NewNoiseField(sampler Sampler, width, height int, surface, cave NoiseParams) *NoiseField {
	return &NoiseField{
		sampler: sampler,
		width:   width,
		height:  height,
		surface: surface,
		cave:    cave,
	}
}

// SurfaceHeight folds negative noise to positive and centres the terrain on
// half the chunk height.
func (f *NoiseField) SurfaceHeight(x, z int) int {
	n := f.sampler.Sample2D(f.surface.coord(x, f.width), f.surface.coord(z, f.width))
	return int(math.Floor(math.Abs(n)*f.surface.Amplitude)) + f.height/2
}

// CaveDensity is the absolute 3D sample times the cave amplitude.
func (f *NoiseField) CaveDensity(x, y, z int) float64 {
	n := f.sampler.Sample3D(
		f.cave.coord(x, f.width),
		f.cave.coord(y, f.width),
		f.cave.coord(z, f.width),
	)
	return math.Abs(n) * f.cave.Amplitude
}
