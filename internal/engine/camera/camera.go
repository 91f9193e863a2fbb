// Package camera provides scripted viewers that drive tile streaming.
package camera

import (
	gomath "math"
	"time"

	"github.com/Faultbox/terrastream/pkg/math"
)

// GroundFunc reports the terrain height under a ground-plane position.
type GroundFunc func(pos math.Vec2) (float32, bool)

// Flythrough moves a viewer over the ground plane at constant speed, either
// in a straight line or around a circle that passes through Start.
type Flythrough struct {
	Start   math.Vec2
	Speed   float32 // World units per second
	Radius  float32 // 0 flies straight along Heading
	Heading float32 // Radians, 0 is +X

	// Eye height above the ground, and the height used before ground is known
	EyeHeight     float32
	DefaultHeight float32

	distance float32 // Travelled so far
}

// NewFlythrough creates a flythrough with default eye heights.
func NewFlythrough(start math.Vec2, speed, radius float32) *Flythrough {
	return &Flythrough{
		Start:         start,
		Speed:         speed,
		Radius:        radius,
		EyeHeight:     2,
		DefaultHeight: 50,
	}
}

// Advance moves the viewer forward by dt and returns the new position.
func (f *Flythrough) Advance(dt time.Duration) math.Vec2 {
	f.distance += f.Speed * float32(dt.Seconds())
	return f.Position()
}

// Distance returns how far the viewer has travelled.
func (f *Flythrough) Distance() float32 {
	return f.distance
}

// Position returns the current ground-plane position.
func (f *Flythrough) Position() math.Vec2 {
	if f.Radius <= 0 {
		dx, dy := f.ForwardDirection()
		return f.Start.Add(math.Vec2{X: dx, Y: dy}.Scale(f.distance))
	}

	// Circle centred one radius behind Start, entered at angle Heading+pi
	angle := float64(f.distance / f.Radius)
	base := float64(f.Heading) + gomath.Pi
	cx := f.Start.X - f.Radius*float32(gomath.Cos(base))
	cy := f.Start.Y - f.Radius*float32(gomath.Sin(base))
	return math.Vec2{
		X: cx + f.Radius*float32(gomath.Cos(base+angle)),
		Y: cy + f.Radius*float32(gomath.Sin(base+angle)),
	}
}

// ForwardDirection returns the unit direction of travel on the ground plane.
func (f *Flythrough) ForwardDirection() (x, y float32) {
	heading := float64(f.Heading)
	if f.Radius > 0 {
		heading += float64(f.distance/f.Radius) - gomath.Pi/2
	}
	return float32(gomath.Cos(heading)), float32(gomath.Sin(heading))
}

// Eye returns the 3D eye position, EyeHeight above the ground when ground
// reports a height and DefaultHeight otherwise. The ground-plane Y maps to Z.
func (f *Flythrough) Eye(ground GroundFunc) math.Vec3 {
	pos := f.Position()
	y := f.DefaultHeight
	if ground != nil {
		if h, ok := ground(pos); ok {
			y = h + f.EyeHeight
		}
	}
	return math.Vec3{X: pos.X, Y: y, Z: pos.Y}
}
