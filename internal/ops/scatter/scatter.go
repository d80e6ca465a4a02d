package scatter

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"texgen/internal/core"
	"texgen/internal/logger"
	prng "texgen/pkg/core"
)

const (
	paramQuantity = "quantity"
	paramSize     = "size"
	paramStdDev   = "stddev"
	paramClear    = "clear"
)

// Operation scatters sprites drawn from a weighted catalogue over the left
// buffer.
type Operation struct {
	catalogue core.Catalogue
	schema    core.Schema
}

// New returns a scatter operation reading from catalogue. A nil catalogue
// behaves as an empty one.
func New(catalogue core.Catalogue) *Operation {
	return &Operation{
		catalogue: catalogue,
		schema: core.Schema{
			{Key: paramQuantity, Label: "Quantity", Kind: core.ParamInt, Default: 10},
			{Key: paramSize, Label: "Size", Kind: core.ParamInt, Default: 64},
			{Key: paramStdDev, Label: "StdDev", Kind: core.ParamFloat, Default: 10},
			{Key: paramClear, Label: "Clear", Kind: core.ParamInt, Default: 1},
			{Key: core.SeedKey, Label: "Seed", Kind: core.ParamSeed, Default: float64(core.RandomSeed())},
		},
	}
}

func (o *Operation) Title() string { return "Scatter" }

func (o *Operation) Description() string {
	return "Scatter: randomly distributes sprites across the image buffer"
}

func (o *Operation) Schema() core.Schema { return o.schema }

// Execute places quantity sprites. With an empty catalogue the input is
// returned untouched.
func (o *Operation) Execute(pair *core.ImagePair, p core.Parameters) (*core.ImagePair, error) {
	if o.catalogue == nil || o.catalogue.Count() == 0 {
		logger.L().Debug("scatter skipped", zap.Error(core.ErrEmptyCatalogue))
		return pair, nil
	}
	seed, err := p.Seed()
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}

	quantity := p.Int(paramQuantity, 10)
	meanSize := p.Int(paramSize, 64)
	stdDev := p.Get(paramStdDev, 10)
	rnd := prng.NewRNG(seed)
	res := pair.Res()

	canvas := core.NewCanvas(res, color.NRGBA{})
	if p.Get(paramClear, 1) == 0 {
		canvas = core.CopyImage(pair.Left)
	}

	for i := 0; i < quantity; i++ {
		idx, err := o.catalogue.WeightedRandomIndex(rnd.Source())
		if errors.Is(err, core.ErrEmptyCatalogue) {
			// Catalogue emptied concurrently; keep what was placed.
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scatter: draw %d: %w", i, err)
		}
		if idx < 0 || idx >= o.catalogue.Count() {
			return nil, fmt.Errorf("scatter: draw %d: sprite index %d out of range", i, idx)
		}
		sprite := o.catalogue.SpriteAt(idx)

		size := max(1, int(rnd.NormFloat64()*stdDev+float64(meanSize)))
		angle := rnd.Float64() * math.Pi * 2
		stamp := Transform(sprite, size, angle)

		x0 := rnd.IntN(res)
		y0 := rnd.IntN(res)
		Composite(canvas, stamp, x0, y0)
	}

	pair.Left = canvas
	return pair, nil
}

// Transform renders sprite into a size×size transparent buffer, scaled to
// fill it and rotated by angle radians about its center, using bilinear
// interpolation.
func Transform(sprite image.Image, size int, angle float64) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	sb := sprite.Bounds()
	if sb.Empty() {
		return dst
	}
	draw.BiLinear.Transform(dst, Affine(sb, size, angle), sprite, sb, draw.Over, nil)
	return dst
}

// Affine composes translate(size/2) · rotate(angle) · scale(size/w, size/h) ·
// translate(-w/2, -h/2), mapping sprite coordinates to stamp coordinates.
func Affine(sb image.Rectangle, size int, angle float64) f64.Aff3 {
	w, h := float64(sb.Dx()), float64(sb.Dy())
	s := float64(size)
	sx, sy := s/w, s/h
	sin, cos := math.Sincos(angle)

	a, b := cos*sx, -sin*sy
	d, e := sin*sx, cos*sy
	// Sprite origin may be offset; centre on the bounds midpoint.
	mx := float64(sb.Min.X) + w/2
	my := float64(sb.Min.Y) + h/2
	return f64.Aff3{
		a, b, s/2 - a*mx - b*my,
		d, e, s/2 - d*mx - e*my,
	}
}

// Composite copies every non-transparent pixel of stamp onto canvas with its
// top-left corner at (x0, y0), wrapping toroidally. Pixels overwrite rather
// than blend.
func Composite(canvas, stamp *image.NRGBA, x0, y0 int) {
	cw, ch := canvas.Rect.Dx(), canvas.Rect.Dy()
	sb := stamp.Rect
	for y := 0; y < sb.Dy(); y++ {
		for x := 0; x < sb.Dx(); x++ {
			px := stamp.NRGBAAt(sb.Min.X+x, sb.Min.Y+y)
			if px.A == 0 {
				continue
			}
			dx := ((x0+x)%cw + cw) % cw
			dy := ((y0+y)%ch + ch) % ch
			canvas.SetNRGBA(canvas.Rect.Min.X+dx, canvas.Rect.Min.Y+dy, px)
		}
	}
}

func init() {
	core.Register("scatter", func(env core.Env) core.Operation { return New(env.Catalogue) })
}
