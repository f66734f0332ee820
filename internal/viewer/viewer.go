package viewer

import (
	"log/slog"
	"time"

	"mini-voxel/internal/meshing"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const orbitSpeed = 60.0 // degrees per second

// Viewer is a mesh consumer that opens an OpenGL window and shows the mesh
// until the window is closed. GL calls are funnelled through mainthread, so
// the program must be running inside mainthread.Run.
type Viewer struct {
	Title  string
	Width  int
	Height int
	Log    *slog.Logger
}

// New returns a viewer with a width x height window. A nil logger discards
// output.
func New(title string, width, height int, log *slog.Logger) *Viewer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Viewer{Title: title, Width: width, Height: height, Log: log}
}

// ConsumeMesh blocks until the window is closed.
func (v *Viewer) ConsumeMesh(m *meshing.MeshBuffer) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "refusing to display invalid mesh")
	}
	var err error
	mainthread.Call(func() {
		err = v.run(m)
	})
	return err
}

type gpuMesh struct {
	vao, positions, uvs, ebo uint32
	count                    int32
}

func upload(m *meshing.MeshBuffer) *gpuMesh {
	g := &gpuMesh{count: int32(len(m.Indices))}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.positions)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.positions)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*3*4, gl.Ptr(m.Vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.GenBuffers(1, &g.uvs)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.uvs)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.UVs)*2*4, gl.Ptr(m.UVs), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	// unbind to reduce accidental state changes
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return g
}

func (g *gpuMesh) draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (g *gpuMesh) delete() {
	gl.DeleteBuffers(1, &g.ebo)
	gl.DeleteBuffers(1, &g.uvs)
	gl.DeleteBuffers(1, &g.positions)
	gl.DeleteVertexArrays(1, &g.vao)
}

func (v *Viewer) run(m *meshing.MeshBuffer) error {
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "init glfw")
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(v.Width, v.Height, v.Title, nil, nil)
	if err != nil {
		return errors.Wrap(err, "create window")
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "init gl")
	}

	shader, err := NewShader(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return err
	}
	defer shader.Delete()

	var mesh *gpuMesh
	if !m.Empty() {
		mesh = upload(m)
		defer mesh.delete()
	}

	cam := NewCamera(v.Width, v.Height)
	cam.Frame(m)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		if h > 0 {
			gl.Viewport(0, 0, int32(w), int32(h))
			cam.AspectRatio = float32(w) / float32(h)
		}
	})

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(0.53, 0.70, 0.92, 1.0)

	v.Log.Info("viewer opened", "quads", m.QuadCount(), "controls", "arrows orbit, space pauses, esc quits")

	spin := true
	spaceWasDown := false
	last := time.Now()
	for !window.ShouldClose() {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}
		spaceDown := window.GetKey(glfw.KeySpace) == glfw.Press
		if spaceDown && !spaceWasDown {
			spin = !spin
		}
		spaceWasDown = spaceDown
		in := orbitInput(window, spin).Mul(orbitSpeed * dt)
		cam.Orbit(in.X(), in.Y())

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		if mesh != nil {
			shader.Use()
			shader.SetMatrix4("proj", cam.GetProjectionMatrix())
			shader.SetMatrix4("view", cam.GetViewMatrix())
			shader.SetVector3("lightDir", mgl32.Vec3{0.4, 1.0, 0.3})
			mesh.draw()
		}

		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// orbitInput returns the yaw and pitch direction requested by the arrow keys.
func orbitInput(w *glfw.Window, spin bool) mgl32.Vec2 {
	var in mgl32.Vec2
	if spin {
		in[0] = 0.5
	}
	if w.GetKey(glfw.KeyLeft) == glfw.Press {
		in[0] = -1
	}
	if w.GetKey(glfw.KeyRight) == glfw.Press {
		in[0] = 1
	}
	if w.GetKey(glfw.KeyUp) == glfw.Press {
		in[1] = 1
	}
	if w.GetKey(glfw.KeyDown) == glfw.Press {
		in[1] = -1
	}
	return in
}
