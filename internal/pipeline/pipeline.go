package pipeline

import (
	"log/slog"

	"mini-voxel/internal/config"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/pkg/errors"
)

// Stage names recorded in Result.Timings.
const (
	StagePopulate = "world.Populate"
	StageMesh     = "meshing.Build"
	StageConsume  = "consumer.ConsumeMesh"
)

// Pipeline generates a chunk, meshes it and hands the mesh to a consumer.
type Pipeline struct {
	cfg       config.Config
	log       *slog.Logger
	generator world.TerrainGenerator
	pool      *meshing.WorkerPool
}

// Result is everything one Run produced. The caller owns all of it.
type Result struct {
	Chunk   *world.Chunk
	Mesh    *meshing.MeshBuffer
	Timings *profiling.Recorder
	// Surface is nil for generators without a heightmap.
	Surface *world.SurfaceSpan
}

// New validates cfg and prepares the generator. A nil logger discards output.
func New(cfg config.Config, log *slog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	gen, err := cfg.NewGenerator()
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:       cfg,
		log:       log,
		generator: gen,
	}
	if cfg.Mesh.Workers > 1 {
		p.pool = meshing.NewWorkerPool(cfg.Mesh.Workers, cfg.Mesh.Workers)
	}
	return p, nil
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() config.Config {
	return p.cfg
}

// Run populates a fresh chunk, meshes it once population has finished and
// passes the mesh to consumer. A nil consumer skips the hand-off.
func (p *Pipeline) Run(consumer meshing.Consumer) (*Result, error) {
	rec := profiling.NewRecorder()

	chunk, err := world.NewChunk(p.cfg.Chunk.Width, p.cfg.Chunk.Height)
	if err != nil {
		return nil, err
	}

	stop := rec.Track(StagePopulate)
	p.generator.PopulateChunk(chunk)
	stop()
	var surface *world.SurfaceSpan
	surfaceAttr := "none"
	if src, ok := p.generator.(world.HeightSource); ok {
		span := world.SurfaceRange(src, p.cfg.Chunk.Width)
		surface = &span
		surfaceAttr = span.String()
	}
	p.log.Debug("chunk populated",
		"width", p.cfg.Chunk.Width,
		"height", p.cfg.Chunk.Height,
		"generator", p.cfg.Generator,
		"solid", chunk.SolidCount(),
		"surface", surfaceAttr,
		"took", profiling.FormatDuration(rec.Snapshot()[StagePopulate]),
	)

	stop = rec.Track(StageMesh)
	var mesh *meshing.MeshBuffer
	if p.pool != nil {
		mesh = p.pool.Build(chunk)
	} else {
		mesh = meshing.Build(chunk)
	}
	stop()
	if err := mesh.Validate(); err != nil {
		return nil, errors.Wrap(err, "mesh failed validation")
	}
	workers, queued := 1, 0
	if p.pool != nil {
		workers, queued = p.pool.Workers(), p.pool.GetQueueLength()
	}
	p.log.Debug("chunk meshed",
		"quads", mesh.QuadCount(),
		"vertices", len(mesh.Vertices),
		"indices", len(mesh.Indices),
		"workers", workers,
		"queued", queued,
		"took", profiling.FormatDuration(rec.Snapshot()[StageMesh]),
	)

	if consumer != nil {
		stop = rec.Track(StageConsume)
		err = consumer.ConsumeMesh(mesh)
		stop()
		if err != nil {
			return nil, errors.Wrap(err, "consume mesh")
		}
	}

	p.log.Info("chunk generated",
		"seed", p.cfg.Noise.Seed,
		"solid", chunk.SolidCount(),
		"quads", mesh.QuadCount(),
		"timings", rec.TopN(3),
	)
	return &Result{Chunk: chunk, Mesh: mesh, Timings: rec, Surface: surface}, nil
}

// Close stops the meshing workers, if any.
func (p *Pipeline) Close() {
	if p.pool != nil {
		p.pool.Shutdown()
		p.pool = nil
	}
}
