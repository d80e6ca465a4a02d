package noise

import (
	"image"

	perlin "github.com/aquilax/go-perlin"

	"texgen/internal/core"
)

const (
	paramAlpha   = "alpha"
	paramBeta    = "beta"
	paramOctaves = "octaves"
)

// Fractal renders fractional Brownian motion built from summed Perlin octaves.
// alpha divides the amplitude and beta multiplies the frequency per octave.
type Fractal struct {
	*Memo
	schema core.Schema
}

// NewFractal returns a Fractal generator.
func NewFractal() *Fractal {
	f := &Fractal{schema: core.Schema{
		{Key: paramAlpha, Label: "Alpha", Kind: core.ParamFloat, Default: 2},
		{Key: paramBeta, Label: "Beta", Kind: core.ParamFloat, Default: 2},
		{Key: paramOctaves, Label: "Octaves", Kind: core.ParamInt, Default: 3},
		{Key: paramScale, Label: "Scale", Kind: core.ParamInt, Default: 64},
		seedSpec(),
	}}
	f.Memo = NewMemo(f.generate)
	return f
}

func (f *Fractal) Title() string { return "Fractal" }

func (f *Fractal) Description() string {
	return "Generates fractal Brownian noise from summed Perlin octaves"
}

func (f *Fractal) Schema() core.Schema { return f.schema }

func (f *Fractal) generate(in *core.ImagePair, par core.Parameters, seed int64) *image.NRGBA {
	res := in.Res()
	scale := par.Get(paramScale, 64)
	if scale == 0 {
		scale = 1
	}
	octaves := par.Int(paramOctaves, 3)
	if octaves < 1 {
		octaves = 1
	}
	gen := perlin.NewPerlin(par.Get(paramAlpha, 2), par.Get(paramBeta, 2), int32(octaves), seed)

	img := image.NewNRGBA(image.Rect(0, 0, res, res))
	for y := 0; y < res; y++ {
		for x := 0; x < res; x++ {
			v := gen.Noise2D(float64(x)/scale, float64(y)/scale)
			setPix(img, x, y, grayFromUnit((v+1)/2))
		}
	}
	return img
}

func init() {
	core.Register("fractal", func(core.Env) core.Operation { return NewFractal() })
}
