package math

// Rect is an axis-aligned square or rectangle on the ground plane.
type Rect struct {
	Min, Max Vec2
}

// RectFromCenter builds a rect of the given size centred on c.
func RectFromCenter(c Vec2, size float32) Rect {
	h := size / 2
	return Rect{
		Min: Vec2{c.X - h, c.Y - h},
		Max: Vec2{c.X + h, c.Y + h},
	}
}

// Center returns the midpoint of the rect.
func (r Rect) Center() Vec2 {
	return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Contains reports whether p lies inside or on the edge of r.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ClosestPoint clamps p into r.
func (r Rect) ClosestPoint(p Vec2) Vec2 {
	return Vec2{clamp(p.X, r.Min.X, r.Max.X), clamp(p.Y, r.Min.Y, r.Max.Y)}
}

// SqrDistance returns the squared distance from p to the nearest point of r.
// Points inside the rect are at distance zero.
func (r Rect) SqrDistance(p Vec2) float32 {
	return r.ClosestPoint(p).SqrDistance(p)
}

// Distance returns the distance from p to the nearest point of r.
func (r Rect) Distance(p Vec2) float32 {
	return r.ClosestPoint(p).Distance(p)
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
