package config

import (
	"io"
	"os"
	"strings"

	"mini-voxel/internal/world"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Generator names accepted in Config.Generator.
const (
	GeneratorNoise  = "noise"
	GeneratorFlat   = "flat"
	GeneratorRandom = "random"
)

// Config holds everything needed to generate and mesh one chunk.
type Config struct {
	Chunk      ChunkConfig       `yaml:"chunk"`
	Noise      NoiseConfig       `yaml:"noise"`
	Surface    world.NoiseParams `yaml:"surface"`
	Cave       CaveConfig        `yaml:"cave"`
	Generator  string            `yaml:"generator"`  // noise | flat | random
	FlatHeight int               `yaml:"flatHeight"` // flat generator surface
	RandomFill float64           `yaml:"randomFill"` // random generator solid probability
	Mesh       MeshConfig        `yaml:"mesh"`
}

// ChunkConfig sizes the chunk: Width voxels along x and z, Height along y.
type ChunkConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// NoiseConfig selects the noise sampler. An empty Kind means simplex.
type NoiseConfig struct {
	Kind string `yaml:"kind"` // simplex | value
	Seed int64  `yaml:"seed"`
}

// CaveConfig is the 3D carving lookup plus the density above which a voxel
// is removed.
type CaveConfig struct {
	world.NoiseParams `yaml:",inline"`
	Threshold         float64 `yaml:"threshold"`
}

// MeshConfig controls the mesher.
type MeshConfig struct {
	Workers int `yaml:"workers"` // >1 meshes slabs in parallel
}

// Default returns a 16x16x16 simplex-noise configuration.
func Default() Config {
	return Config{
		Chunk: ChunkConfig{Width: 16, Height: 16},
		Noise: NoiseConfig{Kind: world.NoiseSimplex, Seed: 1337},
		Surface: world.NoiseParams{
			Offset:    0,
			Scale:     1.25,
			Amplitude: 6,
		},
		Cave: CaveConfig{
			// amplitude equal to scale keeps densities within [0, scale]
			NoiseParams: world.NoiseParams{Offset: 0, Scale: 3, Amplitude: 3},
			Threshold:   world.DefaultCaveThreshold,
		},
		Generator:  GeneratorNoise,
		FlatHeight: 8,
		RandomFill: 0.5,
		Mesh:       MeshConfig{Workers: 1},
	}
}

// Load reads a YAML file on top of Default().
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML from r on top of Default() and validates the result.
// Fields missing from the document keep their defaults.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "decode config yaml")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the generator cannot run with.
func (c Config) Validate() error {
	if err := world.CheckDimensions(c.Chunk.Width, c.Chunk.Height); err != nil {
		return errors.Wrap(err, "chunk")
	}
	switch strings.ToLower(c.Noise.Kind) {
	case "", world.NoiseSimplex, world.NoiseValue:
	default:
		return errors.Errorf("noise.kind must be %q or %q, got %q", world.NoiseSimplex, world.NoiseValue, c.Noise.Kind)
	}
	switch c.Generator {
	case GeneratorNoise, GeneratorFlat, GeneratorRandom:
	default:
		return errors.Errorf("generator must be one of noise, flat, random; got %q", c.Generator)
	}
	if c.RandomFill < 0 || c.RandomFill > 1 {
		return errors.Errorf("randomFill must be within [0,1], got %g", c.RandomFill)
	}
	if c.Mesh.Workers < 0 {
		return errors.Errorf("mesh.workers must not be negative, got %d", c.Mesh.Workers)
	}
	return nil
}

// NewGenerator builds the terrain generator selected by c.
func (c Config) NewGenerator() (world.TerrainGenerator, error) {
	switch c.Generator {
	case GeneratorFlat:
		return world.NewFlatGenerator(c.FlatHeight), nil
	case GeneratorRandom:
		return world.NewRandomGenerator(c.Noise.Seed, c.RandomFill), nil
	case GeneratorNoise:
		sampler, err := world.NewSampler(c.Noise.Kind, c.Noise.Seed)
		if err != nil {
			return nil, err
		}
		field := world.NewNoiseField(sampler, c.Chunk.Width, c.Chunk.Height, c.Surface, c.Cave.NoiseParams)
		return world.NewNoiseGenerator(field, c.Cave.Threshold), nil
	default:
		return nil, errors.Errorf("unknown generator %q", c.Generator)
	}
}
