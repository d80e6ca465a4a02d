// Package noise implements the seeded generators of the pipeline. Every
// generator is memoized: it only regenerates when a parameter changed.
package noise

import (
	"fmt"
	"image"

	"texgen/internal/core"
)

// GenerateFunc produces a res×res buffer from the operation input, the
// current parameters and the seed.
type GenerateFunc func(in *core.ImagePair, p core.Parameters, seed int64) *image.NRGBA

// Memo caches the last generated buffer together with the parameters that
// produced it.
type Memo struct {
	generate    GenerateFunc
	result      *image.NRGBA
	last        core.Parameters
	generations int
}

// NewMemo wraps generate.
func NewMemo(generate GenerateFunc) *Memo {
	return &Memo{generate: generate, last: core.Parameters{}}
}

// Execute writes the cached buffer into pair.Left, regenerating it first if
// no result exists yet or any incoming parameter is new or changed.
func (m *Memo) Execute(pair *core.ImagePair, p core.Parameters) (*core.ImagePair, error) {
	seed, err := p.Seed()
	if err != nil {
		return nil, fmt.Errorf("noise: %w", err)
	}
	if m.stale(p) {
		m.result = m.generate(pair, p, seed)
		m.last = p.Clone()
		m.generations++
	}
	pair.Left = core.CopyImage(m.result)
	return pair, nil
}

// stale compares p against the remembered snapshot. A key the snapshot never
// held always counts as changed.
func (m *Memo) stale(p core.Parameters) bool {
	if m.result == nil {
		return true
	}
	for k, cur := range p {
		prev, ok := m.last[k]
		if !ok || cur != prev {
			return true
		}
	}
	return false
}

// Generations reports how many times the buffer was regenerated.
func (m *Memo) Generations() int { return m.generations }

func seedSpec() core.ParamSpec {
	return core.ParamSpec{Key: core.SeedKey, Label: "Seed", Kind: core.ParamSeed, Default: float64(core.RandomSeed())}
}

// grayFromUnit maps v in [0,1] to an opaque gray pixel, truncating like an
// integer cast and clamping out-of-range input.
func grayFromUnit(v float64) [4]uint8 {
	g := int(v * 255)
	if g < 0 {
		g = 0
	} else if g > 255 {
		g = 255
	}
	return [4]uint8{uint8(g), uint8(g), uint8(g), 0xff}
}

func setPix(img *image.NRGBA, x, y int, px [4]uint8) {
	i := img.PixOffset(x, y)
	img.Pix[i+0] = px[0]
	img.Pix[i+1] = px[1]
	img.Pix[i+2] = px[2]
	img.Pix[i+3] = px[3]
}
