package noise

import (
	"image"

	"github.com/ojrac/opensimplex-go"

	"texgen/internal/core"
)

const paramScale = "scale"

// Simplex renders OpenSimplex noise in grayscale.
type Simplex struct {
	*Memo
	schema core.Schema
}

// NewSimplex returns a Simplex generator.
func NewSimplex() *Simplex {
	s := &Simplex{schema: core.Schema{
		{Key: paramScale, Label: "Scale", Kind: core.ParamInt, Default: 200},
		seedSpec(),
	}}
	s.Memo = NewMemo(s.generate)
	return s
}

func (s *Simplex) Title() string { return "Simplex" }

func (s *Simplex) Description() string {
	return "Generates a grayscale noise image using the OpenSimplex algorithm"
}

func (s *Simplex) Schema() core.Schema { return s.schema }

func (s *Simplex) generate(in *core.ImagePair, par core.Parameters, seed int64) *image.NRGBA {
	res := in.Res()
	scale := par.Get(paramScale, 200)
	if scale == 0 {
		scale = 1
	}
	n := opensimplex.New(seed)

	img := image.NewNRGBA(image.Rect(0, 0, res, res))
	for y := 0; y < res; y++ {
		for x := 0; x < res; x++ {
			v := n.Eval2(float64(x)/scale, float64(y)/scale)
			setPix(img, x, y, grayFromUnit((v+1)/2))
		}
	}
	return img
}

func init() {
	core.Register("simplex", func(core.Env) core.Operation { return NewSimplex() })
}
