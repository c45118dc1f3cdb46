package observer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MouseSensitivity = 0.1
	MaxPitch         = 89.0

	FlySpeed         = 20.0 // blocks per second
	SprintMultiplier = 4.0
)

// Movement is the per-frame movement intent, each axis in [-1, 1].
type Movement struct {
	Forward float32
	Right   float32
	Up      float32
	Sprint  bool
}

// FlyCamera is a free-flying observer. Its Position is what the streaming
// manager is ticked with.
type FlyCamera struct {
	Position mgl32.Vec3
	Yaw      float64 // degrees, 0 looks down +X
	Pitch    float64 // degrees, clamped to ±MaxPitch
	Speed    float32

	FOV       float32
	NearPlane float32
	FarPlane  float32

	FirstMouse bool
	LastMouseX float64
	LastMouseY float64
}

// NewFlyCamera places a camera at pos looking down -Z.
func NewFlyCamera(pos mgl32.Vec3) *FlyCamera {
	return &FlyCamera{
		Position:   pos,
		Yaw:        -90,
		Speed:      FlySpeed,
		FOV:        60.0,
		NearPlane:  0.1,
		FarPlane:   1000.0,
		FirstMouse: true,
	}
}

// HandleMouseMovement turns cursor positions into yaw and pitch changes.
func (c *FlyCamera) HandleMouseMovement(xpos, ypos float64) {
	if c.FirstMouse {
		c.LastMouseX = xpos
		c.LastMouseY = ypos
		c.FirstMouse = false
		return
	}

	xoffset := xpos - c.LastMouseX
	yoffset := c.LastMouseY - ypos
	c.LastMouseX = xpos
	c.LastMouseY = ypos

	c.Look(xoffset*MouseSensitivity, yoffset*MouseSensitivity)
}

// Look rotates the camera by the given degrees.
func (c *FlyCamera) Look(dyaw, dpitch float64) {
	c.Yaw = math.Mod(c.Yaw+dyaw, 360)
	c.Pitch = max(-MaxPitch, min(MaxPitch, c.Pitch+dpitch))
}

// Front returns the unit view direction.
func (c *FlyCamera) Front() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(c.Yaw))
	pt := mgl32.DegToRad(float32(c.Pitch))
	fx := float32(math.Cos(float64(y)) * math.Cos(float64(pt)))
	fy := float32(math.Sin(float64(pt)))
	fz := float32(math.Sin(float64(y)) * math.Cos(float64(pt)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

// Move advances the camera by dt seconds. Forward and Right follow the
// heading on the horizontal plane; Up is world-vertical.
func (c *FlyCamera) Move(m Movement, dt float64) {
	yaw := mgl32.DegToRad(float32(c.Yaw))
	forward := mgl32.Vec3{float32(math.Cos(float64(yaw))), 0, float32(math.Sin(float64(yaw)))}
	right := forward.Cross(mgl32.Vec3{0, 1, 0})

	dir := forward.Mul(m.Forward).Add(right.Mul(m.Right)).Add(mgl32.Vec3{0, m.Up, 0})
	if dir.Len() == 0 {
		return
	}
	speed := c.Speed
	if m.Sprint {
		speed *= SprintMultiplier
	}
	c.Position = c.Position.Add(dir.Normalize().Mul(speed * float32(dt)))
}

// ViewMatrix returns the world-to-eye transform.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective transform for a viewport of the given size.
func (c *FlyCamera) ProjectionMatrix(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.NearPlane, c.FarPlane)
}
