package terrain

import "sort"

// HeightCurve remaps a normalized height before it is scaled into mesh units.
// Implementations must be safe for concurrent use.
type HeightCurve interface {
	Evaluate(t float32) float32
}

// LinearCurve leaves heights unchanged.
type LinearCurve struct{}

// Evaluate returns t.
func (LinearCurve) Evaluate(t float32) float32 {
	return t
}

// CurveKey is one control point of a Curve.
type CurveKey struct {
	Time  float32
	Value float32
}

// Curve is a piecewise-linear curve through its keys. Inputs before the first
// key or after the last are clamped to the end values.
type Curve struct {
	keys []CurveKey
}

// NewCurve builds a curve from keys in any order.
func NewCurve(keys ...CurveKey) *Curve {
	sorted := make([]CurveKey, len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})
	return &Curve{keys: sorted}
}

// Evaluate samples the curve at t. A curve without keys is the identity.
func (c *Curve) Evaluate(t float32) float32 {
	n := len(c.keys)
	if n == 0 {
		return t
	}
	if t <= c.keys[0].Time {
		return c.keys[0].Value
	}
	if t >= c.keys[n-1].Time {
		return c.keys[n-1].Value
	}

	i := sort.Search(n, func(i int) bool { return c.keys[i].Time >= t })
	a, b := c.keys[i-1], c.keys[i]
	if b.Time == a.Time {
		return b.Value
	}
	f := (t - a.Time) / (b.Time - a.Time)
	return a.Value + (b.Value-a.Value)*f
}
