package camera

import (
	gomath "math"
	"testing"
	"time"

	"github.com/Faultbox/terrastream/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-3
}

func TestFlythroughStraight(t *testing.T) {
	f := NewFlythrough(math.Vec2{X: 5, Y: -5}, 10, 0)

	pos := f.Advance(2 * time.Second)
	if !near(pos.X, 25) || !near(pos.Y, -5) {
		t.Errorf("Advance() = %v, want (25, -5)", pos)
	}
	if !near(f.Distance(), 20) {
		t.Errorf("Distance() = %v, want 20", f.Distance())
	}

	f.Heading = gomath.Pi / 2
	pos = f.Position()
	if !near(pos.X, 5) || !near(pos.Y, 15) {
		t.Errorf("Position() with heading north = %v, want (5, 15)", pos)
	}
}

func TestFlythroughOrbit(t *testing.T) {
	f := NewFlythrough(math.Vec2{X: 100, Y: 0}, 10, 50)

	if pos := f.Position(); !near(pos.X, 100) || !near(pos.Y, 0) {
		t.Fatalf("orbit should start at Start, got %v", pos)
	}

	// Every point is one radius from the circle centre
	centre := math.Vec2{X: 150, Y: 0}
	for range 20 {
		pos := f.Advance(time.Second)
		if d := pos.Distance(centre); !near(d, 50) {
			t.Fatalf("distance from centre = %v, want 50", d)
		}
	}

	// A full lap returns to Start
	f = NewFlythrough(math.Vec2{X: 100, Y: 0}, 10, 50)
	laps := 1.0
	f.Advance(time.Duration(laps * 2 * gomath.Pi * 5 * float64(time.Second)))
	if pos := f.Position(); !near(pos.X, 100) || !near(pos.Y, 0) {
		t.Errorf("after one lap = %v, want Start", pos)
	}
}

func TestFlythroughForwardDirection(t *testing.T) {
	f := NewFlythrough(math.Vec2{}, 10, 0)
	if x, y := f.ForwardDirection(); !near(x, 1) || !near(y, 0) {
		t.Errorf("ForwardDirection() = (%v, %v), want (1, 0)", x, y)
	}

	// Orbit starts moving perpendicular to the radius
	f = NewFlythrough(math.Vec2{}, 10, 50)
	a := f.Position()
	f.Advance(time.Millisecond)
	b := f.Position()
	x, y := f.ForwardDirection()
	step := b.Sub(a).Normalize()
	if !near(step.X, x) || !near(step.Y, y) {
		t.Errorf("ForwardDirection() = (%v, %v), want about %v", x, y, step)
	}
}

func TestFlythroughEye(t *testing.T) {
	f := NewFlythrough(math.Vec2{X: 1, Y: 2}, 0, 0)

	if eye := f.Eye(nil); eye != (math.Vec3{X: 1, Y: 50, Z: 2}) {
		t.Errorf("Eye(nil) = %v, want default height", eye)
	}

	ground := func(pos math.Vec2) (float32, bool) { return 7, true }
	if eye := f.Eye(ground); eye != (math.Vec3{X: 1, Y: 9, Z: 2}) {
		t.Errorf("Eye(ground) = %v, want 2 above ground", eye)
	}

	missing := func(pos math.Vec2) (float32, bool) { return 0, false }
	if eye := f.Eye(missing); eye.Y != 50 {
		t.Errorf("Eye(missing) height = %v, want 50", eye.Y)
	}
}
