package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"mini-voxel/internal/config"
	"mini-voxel/internal/export"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/pipeline"
	"mini-voxel/internal/viewer"

	"github.com/faiface/mainthread"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func init() { runtime.LockOSThread() }

func main() {
	var err error
	mainthread.Run(func() {
		err = newApp(os.Stdout, os.Stderr).Run(os.Args)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "chunkgen:", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "chunkgen",
		Usage:     "generates a procedural voxel chunk and meshes its visible faces",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file"},
			&cli.Int64Flag{Name: "seed", Usage: "noise / random seed"},
			&cli.IntFlag{Name: "width", Usage: "chunk width and depth in voxels"},
			&cli.IntFlag{Name: "height", Usage: "chunk height in voxels"},
			&cli.IntFlag{Name: "workers", Usage: "mesh slabs on this many goroutines"},
			&cli.StringFlag{Name: "noise", Usage: "noise kind: simplex or value"},
			&cli.StringFlag{Name: "generator", Usage: "noise, flat or random"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging"},
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "write the chunk mesh as binary glTF (.glb, or .glb.zst for zstd)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "chunk.glb"},
				},
				Action: generateAction,
			},
			{
				Name:  "preview",
				Usage: "write a top-down heightmap PNG",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "heightmap.png"},
					&cli.IntFlag{Name: "scale", Value: 8},
					&cli.BoolFlag{Name: "caption", Value: true, Usage: "print the seed and size below the map"},
				},
				Action: previewAction,
			},
			{
				Name:   "stats",
				Usage:  "print voxel and mesh counts with stage timings",
				Action: statsAction,
			},
			{
				Name:  "view",
				Usage: "open an OpenGL window showing the mesh",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "window-width", Value: 1024},
					&cli.IntFlag{Name: "window-height", Value: 768},
				},
				Action: viewAction,
			},
		},
	}
}

// loadConfig reads --config if given, then applies flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if c.IsSet("seed") {
		cfg.Noise.Seed = c.Int64("seed")
	}
	if c.IsSet("width") {
		cfg.Chunk.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Chunk.Height = c.Int("height")
	}
	if c.IsSet("workers") {
		cfg.Mesh.Workers = c.Int("workers")
	}
	if c.IsSet("noise") {
		cfg.Noise.Kind = c.String("noise")
	}
	if c.IsSet("generator") {
		cfg.Generator = c.String("generator")
	}
	return cfg, cfg.Validate()
}

func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))
}

func newPipeline(c *cli.Context) (*pipeline.Pipeline, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return pipeline.New(cfg, newLogger(c))
}

func generateAction(c *cli.Context) error {
	p, err := newPipeline(c)
	if err != nil {
		return err
	}
	defer p.Close()

	out := c.String("out")
	res, err := p.Run(export.GLBFile{Path: out})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "wrote %s: %d quads, %d vertices, %d indices\n",
		out, res.Mesh.QuadCount(), len(res.Mesh.Vertices), len(res.Mesh.Indices))
	return nil
}

func previewAction(c *cli.Context) (err error) {
	p, err := newPipeline(c)
	if err != nil {
		return err
	}
	defer p.Close()

	res, err := p.Run(nil)
	if err != nil {
		return err
	}

	opts := export.HeightmapOptions{Scale: c.Int("scale")}
	if c.Bool("caption") {
		cfg := p.Config()
		opts.Caption = fmt.Sprintf("seed %d  %dx%dx%d", cfg.Noise.Seed, cfg.Chunk.Width, cfg.Chunk.Height, cfg.Chunk.Width)
	}

	out := c.String("out")
	f, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "create preview")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close preview")
		}
	}()
	if err := export.WriteHeightmapPNG(f, res.Chunk, opts); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "wrote %s\n", out)
	return nil
}

func statsAction(c *cli.Context) error {
	p, err := newPipeline(c)
	if err != nil {
		return err
	}
	defer p.Close()

	var consumed int
	res, err := p.Run(meshing.ConsumerFunc(func(m *meshing.MeshBuffer) error {
		consumed = m.QuadCount()
		return nil
	}))
	if err != nil {
		return err
	}

	width, height := res.Chunk.Dimensions()
	w := c.App.Writer
	fmt.Fprintf(w, "chunk:     %dx%dx%d\n", width, height, width)
	fmt.Fprintf(w, "solid:     %d / %d\n", res.Chunk.SolidCount(), res.Chunk.Volume())
	if res.Surface != nil {
		fmt.Fprintf(w, "surface:   %s\n", res.Surface)
	}
	fmt.Fprintf(w, "quads:     %d\n", consumed)
	fmt.Fprintf(w, "triangles: %d\n", res.Mesh.TriangleCount())
	fmt.Fprintf(w, "vertices:  %d\n", len(res.Mesh.Vertices))
	fmt.Fprintf(w, "indices:   %d\n", len(res.Mesh.Indices))
	fmt.Fprintf(w, "timings:   %s\n", res.Timings.TopN(len(res.Timings.Stages())))
	return nil
}

func viewAction(c *cli.Context) error {
	p, err := newPipeline(c)
	if err != nil {
		return err
	}
	defer p.Close()

	cfg := p.Config()
	title := fmt.Sprintf("chunkgen - seed %d", cfg.Noise.Seed)
	v := viewer.New(title, c.Int("window-width"), c.Int("window-height"), newLogger(c))
	_, err = p.Run(v)
	return err
}
