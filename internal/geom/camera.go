package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// FlyCamera is a free-look camera steered by yaw and pitch in radians.
type FlyCamera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
}

const maxPitch = math32.Pi/2 - 0.01

// Forward returns the unit view direction for the current yaw and pitch.
func (c *FlyCamera) Forward() mgl32.Vec3 {
	cp := math32.Cos(c.Pitch)
	return mgl32.Vec3{
		cp * math32.Sin(c.Yaw),
		math32.Sin(c.Pitch),
		-cp * math32.Cos(c.Yaw),
	}
}

// Right returns the unit right vector on the ground plane.
func (c *FlyCamera) Right() mgl32.Vec3 {
	return mgl32.Vec3{math32.Cos(c.Yaw), 0, math32.Sin(c.Yaw)}
}

// Rotate adds to yaw and pitch, clamping pitch short of the poles.
func (c *FlyCamera) Rotate(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = Clamp(c.Pitch+dPitch, -maxPitch, maxPitch)
}

// Move translates along the view axes: fwd along the look direction, side
// along the right vector, up along world Y.
func (c *FlyCamera) Move(fwd, side, up float32) {
	c.Position = c.Position.
		Add(c.Forward().Mul(fwd)).
		Add(c.Right().Mul(side)).
		Add(mgl32.Vec3{0, up, 0})
}

// View returns the look-at matrix for the current pose.
func (c *FlyCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
}

// OrbitCamera circles a target at a fixed distance and height.
type OrbitCamera struct {
	Target   mgl32.Vec3
	Angle    float32
	Height   float32
	Distance float32
}

// Position returns the eye point for the current orbit angle.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	return mgl32.Vec3{
		c.Target.X() + c.Distance*math32.Sin(c.Angle),
		c.Target.Y() + c.Height,
		c.Target.Z() + c.Distance*math32.Cos(c.Angle),
	}
}

// View returns the look-at matrix from the orbit position to the target.
func (c *OrbitCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}
