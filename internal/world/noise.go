package world

import (
	"math"
	"strings"

	"github.com/ojrac/opensimplex-go"
	"github.com/pkg/errors"
)

// Sampler is a seedable coherent noise source. Both methods are pure and
// return values in [-1, 1].
type Sampler interface {
	Sample2D(x, z float64) float64
	Sample3D(x, y, z float64) float64
}

// Noise kinds accepted by NewSampler.
const (
	NoiseSimplex = "simplex"
	NoiseValue   = "value"
)

// NewSampler returns the sampler registered under kind.
func NewSampler(kind string, seed int64) (Sampler, error) {
	switch strings.ToLower(kind) {
	case NoiseSimplex, "":
		return NewSimplexSampler(seed), nil
	case NoiseValue:
		return NewValueSampler(seed), nil
	default:
		return nil, errors.Errorf("unknown noise kind %q", kind)
	}
}

// SimplexSampler wraps OpenSimplex noise.
type SimplexSampler struct {
	noise opensimplex.Noise
}

// NewSimplexSampler creates an OpenSimplex sampler for seed.
func NewSimplexSampler(seed int64) *SimplexSampler {
	return &SimplexSampler{noise: opensimplex.New(seed)}
}

func (s *SimplexSampler) Sample2D(x, z float64) float64 {
	return s.noise.Eval2(x, z)
}

func (s *SimplexSampler) Sample3D(x, y, z float64) float64 {
	return s.noise.Eval3(x, y, z)
}

// ValueSampler is multi-octave hashed value noise. No lattice state is kept;
// every sample is derived from the seed and the coordinates.
type ValueSampler struct {
	seed        int64
	octaves     int
	persistence float64
	lacunarity  float64
}

// NewValueSampler creates a 4-octave value noise sampler for seed.
func NewValueSampler(seed int64) *ValueSampler {
	return &ValueSampler{
		seed:        seed,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2.0,
	}
}

// Sample2D maps the [0,1] octave sum onto [-1,1].
func (s *ValueSampler) Sample2D(x, z float64) float64 {
	return octaveNoise2D(x, z, s.seed, s.octaves, s.persistence, s.lacunarity)*2 - 1
}

// Sample3D maps the [0,1] octave sum onto [-1,1].
func (s *ValueSampler) Sample3D(x, y, z float64) float64 {
	return octaveNoise3D(x, y, z, s.seed, s.octaves, s.persistence, s.lacunarity)*2 - 1
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func hash2(x int64, z int64, seed int64) uint64 {
	// SplitMix64 style integer hash, stable across runs for same inputs
	v := uint64(x) + (uint64(z) << 1) + uint64(seed)*0x9E3779B97F4A7C15
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

func latticeValue(x int64, z int64, seed int64) float64 {
	h := hash2(x, z, seed)
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

func valueNoise2D(x float64, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)

	fx := fade(x - x0)
	fz := fade(z - z0)

	ix, iz := int64(x0), int64(z0)
	v00 := latticeValue(ix, iz, seed)
	v10 := latticeValue(ix+1, iz, seed)
	v01 := latticeValue(ix, iz+1, seed)
	v11 := latticeValue(ix+1, iz+1, seed)

	return lerp(lerp(v00, v10, fx), lerp(v01, v11, fx), fz) // [0,1]
}

func octaveNoise2D(x float64, z float64, seed int64, octaves int, persistence, lacunarity float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := range octaves {
		sum += valueNoise2D(x*frequency, z*frequency, seed+int64(i*131)) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

func hash3(x, y, z int64, seed int64) uint64 {
	// separate golden ratio variants per axis so axes are not interchangeable
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(z)*0x6C62272E07BB0142 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

func latticeValue3D(x, y, z int64, seed int64) float64 {
	h := hash3(x, y, z, seed)
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

func valueNoise3D(x, y, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	z0 := math.Floor(z)

	fx := fade(x - x0)
	fy := fade(y - y0)
	fz := fade(z - z0)

	ix, iy, iz := int64(x0), int64(y0), int64(z0)

	// along X first, then Y, then Z
	i00 := lerp(latticeValue3D(ix, iy, iz, seed), latticeValue3D(ix+1, iy, iz, seed), fx)
	i10 := lerp(latticeValue3D(ix, iy+1, iz, seed), latticeValue3D(ix+1, iy+1, iz, seed), fx)
	i01 := lerp(latticeValue3D(ix, iy, iz+1, seed), latticeValue3D(ix+1, iy, iz+1, seed), fx)
	i11 := lerp(latticeValue3D(ix, iy+1, iz+1, seed), latticeValue3D(ix+1, iy+1, iz+1, seed), fx)

	return lerp(lerp(i00, i10, fy), lerp(i01, i11, fy), fz) // [0,1]
}

func octaveNoise3D(x, y, z float64, seed int64, octaves int, persistence, lacunarity float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := range octaves {
		sum += valueNoise3D(x*frequency, y*frequency, z*frequency, seed+int64(i*131)) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
