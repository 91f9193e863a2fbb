// Package noise generates seeded fractal heightfields and falloff masks.
package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Sampler returns coherent noise in roughly [-1, 1] for a 2D sample point.
type Sampler interface {
	Noise2D(x, y float64) float64
}

// Backend names accepted by NewSampler.
const (
	BackendPerlin  = "perlin"
	BackendSimplex = "simplex"
)

// perlin.NewPerlin arguments. A single octave is requested because Generate
// layers its own octaves with per-octave offsets.
const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 1
)

// perlinPeriod is the lattice period of go-perlin's permutation table.
const perlinPeriod = 256

type perlinSampler struct {
	p *perlin.Perlin
}

// NewPerlin returns a Perlin gradient noise sampler.
func NewPerlin(seed int64) Sampler {
	return perlinSampler{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

// Noise2D folds the sample point into [0, 256) before sampling. go-perlin
// truncates toward zero when picking a lattice cell, which breaks continuity
// below -4096.
func (s perlinSampler) Noise2D(x, y float64) float64 {
	return s.p.Noise2D(wrapPeriod(x), wrapPeriod(y))
}

func wrapPeriod(v float64) float64 {
	v = math.Mod(v, perlinPeriod)
	if v < 0 {
		v += perlinPeriod
	}
	return v
}

type simplexSampler struct {
	n opensimplex.Noise
}

// NewSimplex returns an OpenSimplex sampler.
func NewSimplex(seed int64) Sampler {
	return simplexSampler{n: opensimplex.New(seed)}
}

func (s simplexSampler) Noise2D(x, y float64) float64 {
	return s.n.Eval2(x, y)
}

// NewSampler picks a backend by name. Unknown names fall back to Perlin.
func NewSampler(backend string, seed int64) Sampler {
	switch backend {
	case BackendSimplex:
		return NewSimplex(seed)
	default:
		return NewPerlin(seed)
	}
}
