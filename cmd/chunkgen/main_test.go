package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mini-voxel/internal/export"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr)
	if err := app.Run(append([]string{"chunkgen"}, args...)); err != nil {
		t.Fatalf("chunkgen %v: %v\nstderr:\n%s", args, err, stderr.String())
	}
	return stdout.String()
}

func TestStatsCommand(t *testing.T) {
	out := run(t, "--width", "8", "--height", "8", "--generator", "flat", "stats")
	// flat fill of 8 in an 8x8x8 chunk is a full cube: 6 faces of 8x8 quads
	for _, want := range []string{"chunk:     8x8x8", "solid:     512 / 512", "surface:   8..8", "quads:     384"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"chunk.glb", "chunk.glb.zst"} {
		path := filepath.Join(dir, name)
		run(t, "--seed", "3", "--workers", "2", "generate", "--out", path)

		m, err := export.OpenGLB(path)
		if err != nil {
			t.Fatalf("OpenGLB(%s): %v", name, err)
		}
		if m.Empty() {
			t.Errorf("%s: mesh is empty", name)
		}
	}
}

func TestPreviewCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.png")
	run(t, "preview", "--out", path, "--scale", "2")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read preview: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("\x89PNG")) {
		t.Errorf("preview is not a PNG")
	}
}

func TestConfigFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunk.yaml")
	if err := os.WriteFile(path, []byte("chunk:\n  width: 4\n  height: 4\ngenerator: flat\nflatHeight: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out := run(t, "--config", path, "--width", "2", "stats")
	// 2x1x2 slab: 2 caps of 4 plus 4 walls of 2
	if !strings.Contains(out, "quads:     16") {
		t.Errorf("unexpected stats:\n%s", out)
	}
}

func TestInvalidFlagsRejected(t *testing.T) {
	var stdout, stderr bytes.Buffer
	for _, width := range []string{"0", "4294967296"} {
		err := newApp(&stdout, &stderr).Run([]string{"chunkgen", "--width", width, "stats"})
		if err == nil {
			t.Errorf("expected --width %s to be rejected", width)
		}
	}
}
