// Package math provides the small vector and bounds types shared by the terrain packages.
package math

import "math"

// Vec2 is a 2D vector. World-space terrain positions use X for east and Y for north.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// SqrLength returns the squared magnitude.
func (v Vec2) SqrLength() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.SqrLength())))
}

// Normalize returns a unit vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

// SqrDistance returns the squared distance to another point.
func (v Vec2) SqrDistance(other Vec2) float32 {
	return v.Sub(other).SqrLength()
}

// RoundToInt rounds half to even, so 2.5 becomes 2 and 3.5 becomes 4.
func RoundToInt(f float32) int {
	return int(math.RoundToEven(float64(f)))
}
