// Package camera provides an orbital 3D camera for the room viewer.
package camera

import "math"

// Camera orbits a fixed target point. Yaw and pitch are in radians;
// distance is in meters.
type Camera struct {
	TargetX, TargetY, TargetZ float32

	Yaw      float32
	Pitch    float32
	Distance float32

	MinDistance, MaxDistance float32
	MinPitch, MaxPitch       float32
}

// New creates a camera orbiting the center of a room of the given size.
func New(roomW, roomH, roomD float32) *Camera {
	diag := float32(math.Sqrt(float64(roomW*roomW + roomD*roomD)))
	return &Camera{
		TargetX:     roomW / 2,
		TargetY:     roomH / 2,
		TargetZ:     roomD / 2,
		Yaw:         math.Pi / 4,
		Pitch:       0.5,
		Distance:    diag,
		MinDistance: 1,
		MaxDistance: diag * 3,
		MinPitch:    -1.3,
		MaxPitch:    1.45,
	}
}

// Orbit rotates the camera by the given yaw and pitch deltas.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = clamp(c.Pitch+dPitch, c.MinPitch, c.MaxPitch)
}

// Dolly moves the camera toward or away from the target.
func (c *Camera) Dolly(delta float32) {
	c.Distance = clamp(c.Distance-delta, c.MinDistance, c.MaxDistance)
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() (x, y, z float32) {
	cy := float32(math.Cos(float64(c.Yaw)))
	sy := float32(math.Sin(float64(c.Yaw)))
	cp := float32(math.Cos(float64(c.Pitch)))
	sp := float32(math.Sin(float64(c.Pitch)))

	x = c.TargetX + c.Distance*cp*cy
	y = c.TargetY + c.Distance*sp
	z = c.TargetZ + c.Distance*cp*sy
	return x, y, z
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
