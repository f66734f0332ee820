package viewer

import (
	"math"

	"mini-voxel/internal/meshing"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera orbits a fixed target at a fixed distance.
type Camera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	Target   mgl32.Vec3
	Distance float32
	Yaw      float32 // degrees around +Y
	Pitch    float32 // degrees above the horizon
}

func NewCamera(width, height int) *Camera {
	return &Camera{
		AspectRatio: float32(width) / float32(height),
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
		Distance:    10,
		Yaw:         45,
		Pitch:       30,
	}
}

// Frame points the camera at the mesh's bounding box so the whole mesh is
// in view.
func (c *Camera) Frame(m *meshing.MeshBuffer) {
	lo, hi, ok := bounds(m)
	if !ok {
		c.Target = mgl32.Vec3{}
		c.Distance = 10
		return
	}
	c.Target = lo.Add(hi).Mul(0.5)
	radius := hi.Sub(lo).Len() / 2
	half := mgl32.DegToRad(c.FOV) / 2
	c.Distance = radius/float32(math.Sin(float64(half))) + c.NearPlane
	if c.FarPlane < c.Distance+radius {
		c.FarPlane = (c.Distance + radius) * 2
	}
}

func (c *Camera) Eye() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	dir := mgl32.Vec3{
		float32(math.Cos(pitch) * math.Cos(yaw)),
		float32(math.Sin(pitch)),
		float32(math.Cos(pitch) * math.Sin(yaw)),
	}
	return c.Target.Add(dir.Mul(c.Distance))
}

// Orbit rotates the camera, keeping pitch short of the poles.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw = float32(math.Mod(float64(c.Yaw+dYaw), 360))
	c.Pitch = mgl32.Clamp(c.Pitch+dPitch, -89, 89)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, mgl32.Vec3{0, 1, 0})
}

func bounds(m *meshing.MeshBuffer) (lo, hi mgl32.Vec3, ok bool) {
	if m == nil || len(m.Vertices) == 0 {
		return lo, hi, false
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v[i])
			hi[i] = max(hi[i], v[i])
		}
	}
	return lo, hi, true
}
