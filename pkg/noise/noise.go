package noise

import (
	"math"
	"math/rand"

	tmath "github.com/Faultbox/terrastream/pkg/math"
)

// Normalization decides how raw octave sums are remapped into [0, 1].
type Normalization string

const (
	// NormalizeLocal stretches each generated grid between its own min and max.
	// Adjacent grids do not share a scale, so tiles built this way show seams.
	NormalizeLocal Normalization = "local"

	// NormalizeGlobal divides by the theoretical amplitude sum so every grid
	// generated with the same parameters shares one scale.
	NormalizeGlobal Normalization = "global"
)

// MinScale replaces non-positive scales.
const MinScale = 0.0001

// offsetRange bounds the random per-octave offsets.
const offsetRange = 100000

// Params configures fractal noise generation.
type Params struct {
	Seed        int64
	Scale       float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Normalize   Normalization
	Backend     string
}

// Generate builds a width x height heightfield. offset is the world-space
// sampling anchor of the grid centre; grids whose offsets differ by exactly
// width-1 share their border column when normalized globally.
func Generate(width, height int, p Params, offset tmath.Vec2) Grid {
	return GenerateWith(NewSampler(p.Backend, p.Seed), width, height, p, offset)
}

// GenerateWith is Generate with an explicit sampler.
func GenerateWith(s Sampler, width, height int, p Params, offset tmath.Vec2) Grid {
	grid := NewGrid(width, height)

	scale := p.Scale
	if scale <= 0 {
		scale = MinScale
	}
	octaves := max(p.Octaves, 0)

	prng := rand.New(rand.NewSource(p.Seed))
	offsets := make([][2]float64, octaves)
	maxAmplitude := 0.0
	amplitude := 1.0
	for i := range offsets {
		offsets[i][0] = float64(prng.Intn(2*offsetRange)-offsetRange) + float64(offset.X)
		offsets[i][1] = float64(prng.Intn(2*offsetRange)-offsetRange) - float64(offset.Y)
		maxAmplitude += amplitude
		amplitude *= p.Persistence
	}

	halfW := float64(width) / 2
	halfH := float64(height) / 2
	minValue := math.Inf(1)
	maxValue := math.Inf(-1)
	raw := make([]float64, width*height)

	for y := range height {
		for x := range width {
			amplitude := 1.0
			frequency := 1.0
			value := 0.0
			for i := range octaves {
				sx := (float64(x) - halfW + offsets[i][0]) / scale * frequency
				sy := (float64(y) - halfH + offsets[i][1]) / scale * frequency
				value += s.Noise2D(sx, sy) * amplitude
				amplitude *= p.Persistence
				frequency *= p.Lacunarity
			}
			minValue = math.Min(minValue, value)
			maxValue = math.Max(maxValue, value)
			raw[y*width+x] = value
		}
	}

	switch p.Normalize {
	case NormalizeLocal:
		spread := maxValue - minValue
		for i, v := range raw {
			if spread <= 0 {
				grid.Values[i] = 0.5
				continue
			}
			grid.Values[i] = float32((v - minValue) / spread)
		}
	default:
		for i, v := range raw {
			if maxAmplitude <= 0 {
				grid.Values[i] = 0.5
				continue
			}
			grid.Values[i] = clamp01(float32((v/maxAmplitude + 1) / 2))
		}
	}

	return grid
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
