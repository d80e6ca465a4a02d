package mask

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"texgen/internal/core"
)

const paramAmount = "amount"

// Mix blends the left buffer into the right one in CIE-Lab space.
type Mix struct {
	schema core.Schema
}

// NewMix returns a Mix operation.
func NewMix() *Mix {
	return &Mix{schema: core.Schema{
		{Key: paramAmount, Label: "Amount", Kind: core.ParamSlider, Default: 50},
	}}
}

func (m *Mix) Title() string { return "Mix" }

func (m *Mix) Description() string {
	return "Blends the left image into the right buffer"
}

func (m *Mix) Schema() core.Schema { return m.schema }

// Execute writes the blend to Right. amount is the share of Left, 0..100.
func (m *Mix) Execute(pair *core.ImagePair, p core.Parameters) (*core.ImagePair, error) {
	if err := pair.Validate(); err != nil {
		return nil, fmt.Errorf("mix: %w", err)
	}
	t := p.Get(paramAmount, 50) / 100
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	lb, rb := pair.Left.Rect, pair.Right.Rect
	out := image.NewNRGBA(image.Rect(0, 0, lb.Dx(), lb.Dy()))
	for y := 0; y < lb.Dy(); y++ {
		for x := 0; x < lb.Dx(); x++ {
			l := pair.Left.NRGBAAt(lb.Min.X+x, lb.Min.Y+y)
			r := pair.Right.NRGBAAt(rb.Min.X+x, rb.Min.Y+y)
			out.SetNRGBA(x, y, Blend(r, l, t))
		}
	}
	pair.Right = out
	return pair, nil
}

// Blend moves from a toward b by t in Lab space. Alpha is interpolated
// linearly.
func Blend(a, b color.NRGBA, t float64) color.NRGBA {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	ca, cb := toColorful(a), toColorful(b)
	cr, cg, cbl := ca.BlendLab(cb, t).Clamped().RGB255()
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.NRGBA{R: cr, G: cg, B: cbl, A: uint8(alpha + 0.5)}
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func init() {
	core.Register("mix", func(core.Env) core.Operation { return NewMix() })
}
