package noise

import (
	"image"
	"math"

	"texgen/internal/core"
	prng "texgen/pkg/core"
)

const (
	paramFrequency  = "frequency"
	paramIterations = "iterations"
)

// Perlin renders multi-octave gradient noise in grayscale.
type Perlin struct {
	*Memo
	schema core.Schema
}

// NewPerlin returns a Perlin generator.
func NewPerlin() *Perlin {
	p := &Perlin{schema: core.Schema{
		{Key: paramFrequency, Label: "Frequency", Kind: core.ParamInt, Default: 4},
		{Key: paramIterations, Label: "Iterations", Kind: core.ParamInt, Default: 4},
		seedSpec(),
	}}
	p.Memo = NewMemo(p.generate)
	return p
}

func (p *Perlin) Title() string { return "Perlin" }

func (p *Perlin) Description() string {
	return "Generates Perlin noise with configurable frequency, octaves, and seed"
}

func (p *Perlin) Schema() core.Schema { return p.schema }

func (p *Perlin) generate(in *core.ImagePair, par core.Parameters, seed int64) *image.NRGBA {
	res := in.Res()
	baseFreq := par.Get(paramFrequency, 4)
	iterations := par.Int(paramIterations, 4)
	perm := PermutationTable(seed)

	img := image.NewNRGBA(image.Rect(0, 0, res, res))
	for y := 0; y < res; y++ {
		for x := 0; x < res; x++ {
			setPix(img, x, y, grayFromUnit(Octaves(perm, x, y, res, baseFreq, iterations)))
		}
	}
	return img
}

// PermutationTable shuffles 0..255 with the seeded RNG and duplicates the
// result to 512 entries so lattice hashing never needs a modulo.
func PermutationTable(seed int64) []int {
	perm := prng.NewRNG(seed).Permutation(256)
	p := make([]int, 512)
	for i := range p {
		p[i] = perm[i&255]
	}
	return p
}

// Octaves accumulates iterations octaves of gradient noise at pixel (x, y)
// and returns the amplitude-normalized sum mapped to [0,1].
func Octaves(perm []int, x, y, res int, baseFreq float64, iterations int) float64 {
	amplitude, frequency := 1.0, baseFreq
	sum, total := 0.0, 0.0
	for o := 0; o < iterations; o++ {
		nx := float64(x) * frequency / float64(res)
		ny := float64(y) * frequency / float64(res)
		sum += Gradient2(perm, nx, ny) * amplitude
		total += amplitude
		amplitude *= 0.5
		frequency *= 2
	}
	if total == 0 {
		return 0.5
	}
	return (sum/total + 1) * 0.5
}

// Gradient2 evaluates 2D gradient noise at (x, y).
func Gradient2(p []int, x, y float64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	X, Y := int(fx)&255, int(fy)&255
	x -= fx
	y -= fy
	u, v := fade(x), fade(y)

	aa := p[p[X]+Y]
	ab := p[p[X]+Y+1]
	ba := p[p[X+1]+Y]
	bb := p[p[X+1]+Y+1]

	x1 := lerp(u, grad(aa, x, y), grad(ba, x-1, y))
	x2 := lerp(u, grad(ab, x, y-1), grad(bb, x-1, y-1))
	return lerp(v, x1, x2)
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad picks one of eight gradient directions from the low three bits of
// hash and returns its dot product with (x, y).
func grad(hash int, x, y float64) float64 {
	h := hash & 7
	u, v := y, x
	if h < 4 {
		u, v = x, y
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

func init() {
	core.Register("perlin", func(core.Env) core.Operation { return NewPerlin() })
}
