package world

import (
	"crypto/sha256"
	"testing"
)

func TestGeneratorsImplementInterface(t *testing.T) {
	var _ TerrainGenerator = NewNoiseGenerator(nil, DefaultCaveThreshold)
	var _ TerrainGenerator = NewFlatGenerator(10)
	var _ TerrainGenerator = NewRandomGenerator(1, 0.5)
}

type stubField struct {
	height  int
	density float64
}

func (f stubField) SurfaceHeight(x, z int) int { return f.height }
func (f stubField) CaveDensity(x, y, z int) float64 { return f.density }

func mustChunk(t testing.TB, width, height int) *Chunk {
	t.Helper()
	c, err := NewChunk(width, height)
	if err != nil {
		t.Fatalf("NewChunk(%d, %d): %v", width, height, err)
	}
	return c
}

func TestPopulateSurfaceFill(t *testing.T) {
	c := mustChunk(t, 8, 16)
	Populate(c, stubField{height: 10, density: 0}, DefaultCaveThreshold)

	for y := range 16 {
		for x := range 8 {
			for z := range 8 {
				if want := y < 10; c.IsSolid(x, y, z) != want {
					t.Fatalf("IsSolid(%d,%d,%d) = %v, want %v", x, y, z, !want, want)
				}
			}
		}
	}
}

func TestPopulateCaveCarvingWins(t *testing.T) {
	c := mustChunk(t, 8, 16)
	Populate(c, stubField{height: 10, density: 1.5}, DefaultCaveThreshold)

	if n := c.SolidCount(); n != 0 {
		t.Fatalf("expected every voxel below the surface carved, %d remain solid", n)
	}
}

func TestPopulateThresholdIsStrict(t *testing.T) {
	c := mustChunk(t, 4, 8)
	// density equal to the threshold does not carve
	Populate(c, stubField{height: 3, density: 1.0}, 1.0)
	if n := c.SolidCount(); n != 4*4*3 {
		t.Errorf("SolidCount = %d, want %d", n, 4*4*3)
	}
}

func TestPopulateOverwritesPreviousContents(t *testing.T) {
	c := mustChunk(t, 4, 8)
	NewFlatGenerator(8).PopulateChunk(c)
	Populate(c, stubField{height: 2}, DefaultCaveThreshold)
	if c.IsSolid(0, 5, 0) {
		t.Errorf("voxel above the new surface should have been cleared")
	}
}

func TestFlatGeneratorHeight(t *testing.T) {
	g := NewFlatGenerator(10)
	if h := g.HeightAt(0, 0); h != 10 {
		t.Errorf("Expected height 10, got %d", h)
	}
	if h := g.HeightAt(100, -50); h != 10 {
		t.Errorf("Expected height 10, got %d", h)
	}
}

func TestSurfaceRange(t *testing.T) {
	if got := SurfaceRange(NewFlatGenerator(7), 4); got != (SurfaceSpan{Min: 7, Max: 7}) {
		t.Errorf("flat surface range = %+v, want 7..7", got)
	}

	g := newNoiseGenerator(t, NoiseSimplex, 1337, 16, 16)
	span := SurfaceRange(g, 16)
	if span.Min > span.Max {
		t.Fatalf("range inverted: %+v", span)
	}
	for x := range 16 {
		for z := range 16 {
			if h := g.HeightAt(x, z); h < span.Min || h > span.Max {
				t.Fatalf("column (%d,%d) height %d outside %+v", x, z, h, span)
			}
		}
	}
	if span.Min < 8 {
		t.Errorf("surface never drops below half the chunk height, got min %d", span.Min)
	}
}

func TestFlatGeneratorPopulate(t *testing.T) {
	c := mustChunk(t, 4, 8)
	NewFlatGenerator(5).PopulateChunk(c)

	for y := 0; y < 5; y++ {
		if !c.IsSolid(0, y, 0) {
			t.Errorf("Expected solid at 0,%d,0", y)
		}
	}
	if c.IsSolid(0, 5, 0) {
		t.Errorf("Expected air at 0,5,0")
	}
}

// hashChunk computes a SHA-256 hash of all voxels in a chunk
func hashChunk(c *Chunk) [32]byte {
	h := sha256.New()
	width, height := c.Dimensions()
	for y := range height {
		for x := range width {
			for z := range width {
				var b byte
				if c.IsSolid(x, y, z) {
					b = 1
				}
				h.Write([]byte{b})
			}
		}
	}
	var result [32]byte
	copy(result[:], h.Sum(nil))
	return result
}

func newNoiseGenerator(t testing.TB, kind string, seed int64, width, height int) *NoiseGenerator {
	t.Helper()
	s, err := NewSampler(kind, seed)
	if err != nil {
		t.Fatalf("NewSampler: %v", err)
	}
	field := NewNoiseField(s, width, height,
		NoiseParams{Offset: 0, Scale: 1.25, Amplitude: float64(height) / 2},
		NoiseParams{Offset: 0, Scale: 3, Amplitude: 3},
	)
	return NewNoiseGenerator(field, DefaultCaveThreshold)
}

// TestNoiseDeterminism verifies same seed produces identical terrain
func TestNoiseDeterminism(t *testing.T) {
	for _, kind := range []string{NoiseSimplex, NoiseValue} {
		var first [32]byte
		for i := 0; i < 10; i++ {
			c := mustChunk(t, 16, 16)
			newNoiseGenerator(t, kind, 12345, 16, 16).PopulateChunk(c)
			h := hashChunk(c)
			if i == 0 {
				first = h
				continue
			}
			if h != first {
				t.Fatalf("%s: chunk generation not deterministic: hash[0] != hash[%d]", kind, i)
			}
		}
	}
}

func TestNoiseTerrainHasSolidAndAir(t *testing.T) {
	c := mustChunk(t, 16, 16)
	newNoiseGenerator(t, NoiseSimplex, 1337, 16, 16).PopulateChunk(c)

	n := c.SolidCount()
	if n == 0 {
		t.Errorf("Expected terrain to have solid voxels, got all air")
	}
	if n == c.Volume() {
		t.Errorf("Expected terrain to have air voxels, got all solid")
	}
}

// caves only remove voxels, so the noise result never exceeds the heightmap
func TestNoiseTerrainNeverAboveSurface(t *testing.T) {
	g := newNoiseGenerator(t, NoiseValue, 99, 16, 32)
	c := mustChunk(t, 16, 32)
	g.PopulateChunk(c)

	for x := range 16 {
		for z := range 16 {
			if top := c.ColumnHeight(x, z); top > g.HeightAt(x, z) {
				t.Fatalf("column (%d,%d) reaches %d, above surface %d", x, z, top, g.HeightAt(x, z))
			}
		}
	}
}

func TestRandomGeneratorDeterministic(t *testing.T) {
	a := mustChunk(t, 8, 8)
	b := mustChunk(t, 8, 8)
	NewRandomGenerator(42, 0.3).PopulateChunk(a)
	NewRandomGenerator(42, 0.3).PopulateChunk(b)
	if hashChunk(a) != hashChunk(b) {
		t.Fatalf("random generator not deterministic for equal seeds")
	}

	c := mustChunk(t, 8, 8)
	NewRandomGenerator(43, 0.3).PopulateChunk(c)
	if hashChunk(a) == hashChunk(c) {
		t.Errorf("different seeds produced identical chunks")
	}
}

func TestRandomGeneratorFillExtremes(t *testing.T) {
	c := mustChunk(t, 4, 4)
	NewRandomGenerator(1, 0).PopulateChunk(c)
	if c.SolidCount() != 0 {
		t.Errorf("fill 0 produced %d solid voxels", c.SolidCount())
	}
	NewRandomGenerator(1, 1).PopulateChunk(c)
	if c.SolidCount() != c.Volume() {
		t.Errorf("fill 1 produced %d of %d solid voxels", c.SolidCount(), c.Volume())
	}
}

func BenchmarkNoisePopulateChunk(b *testing.B) {
	g := newNoiseGenerator(b, NoiseSimplex, 12345, 16, 16)
	c := mustChunk(b, 16, 16)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.PopulateChunk(c)
	}
}
