package noise

import (
	"image"

	"texgen/internal/core"
	prng "texgen/pkg/core"
)

const (
	paramSeeds  = "seeds"
	paramGrowth = "growth"
	paramDeath  = "death"
)

// Vegetation grows a binary plant cover over the fertility map found in the
// input's left buffer using a stochastic cellular automaton.
type Vegetation struct {
	*Memo
	schema core.Schema
}

// NewVegetation returns a Vegetation generator.
func NewVegetation() *Vegetation {
	v := &Vegetation{schema: core.Schema{
		{Key: paramSeeds, Label: "Seeds", Kind: core.ParamInt, Default: 100},
		{Key: paramGrowth, Label: "Growth", Kind: core.ParamFloat, Default: 0.5},
		{Key: paramDeath, Label: "Death", Kind: core.ParamFloat, Default: 0.2},
		{Key: paramIterations, Label: "Iterations", Kind: core.ParamInt, Default: 50},
		seedSpec(),
	}}
	v.Memo = NewMemo(v.generate)
	return v
}

func (v *Vegetation) Title() string { return "Vegetation" }

func (v *Vegetation) Description() string {
	return "Simulates vegetation growth over fertility map using CA"
}

func (v *Vegetation) Schema() core.Schema { return v.schema }

func (v *Vegetation) generate(in *core.ImagePair, par core.Parameters, seed int64) *image.NRGBA {
	res := in.Res()
	sim := NewGrowth(res, Fertility(in.Left, res), GrowthConfig{
		Seeds:  par.Int(paramSeeds, 100),
		Growth: par.Get(paramGrowth, 0.5),
		Death:  par.Get(paramDeath, 0.2),
	})
	sim.Reset(seed)
	for i, n := 0, par.Int(paramIterations, 50); i < n; i++ {
		sim.Step()
	}
	return sim.Render()
}

// Fertility converts img to per-cell values in [0,1] using the average of the
// red, green and blue channels. Missing pixels count as barren.
func Fertility(img *image.NRGBA, res int) []float64 {
	out := make([]float64, res*res)
	if img == nil {
		return out
	}
	b := img.Rect
	for y := 0; y < res && y < b.Dy(); y++ {
		for x := 0; x < res && x < b.Dx(); x++ {
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			sum := int(img.Pix[i]) + int(img.Pix[i+1]) + int(img.Pix[i+2])
			out[y*res+x] = (float64(sum) / 3) / 255
		}
	}
	return out
}

// GrowthConfig holds the automaton tunables.
type GrowthConfig struct {
	Seeds  int
	Growth float64
	Death  float64
}

// Growth is the vegetation automaton on a toroidal grid.
type Growth struct {
	cfg       GrowthConfig
	res       int
	fertility []float64
	cur, nxt  *core.ByteGrid
	rng       *prng.RNG
}

// NewGrowth returns an automaton over the given fertility map.
func NewGrowth(res int, fertility []float64, cfg GrowthConfig) *Growth {
	return &Growth{
		cfg:       cfg,
		res:       res,
		fertility: fertility,
		cur:       core.NewByteGrid(res, res),
		nxt:       core.NewByteGrid(res, res),
	}
}

// Reset clears the grid and plants cfg.Seeds live cells at random positions.
func (g *Growth) Reset(seed int64) {
	g.rng = prng.NewRNG(seed)
	g.cur.Clear()
	g.nxt.Clear()
	for i := 0; i < g.cfg.Seeds; i++ {
		x := g.rng.IntN(g.res)
		y := g.rng.IntN(g.res)
		g.cur.Cells()[g.cur.Index(x, y)] = 1
	}
}

// Step advances every cell once. Reads come from the current generation only.
func (g *Growth) Step() {
	cur, nxt := g.cur.Cells(), g.nxt.Cells()
	for y := 0; y < g.res; y++ {
		for x := 0; x < g.res; x++ {
			idx := g.cur.Index(x, y)
			fert := g.fertility[idx]
			if cur[idx] == 1 {
				survival := 1 - g.cfg.Death*(1-fert)
				nxt[idx] = boolCell(g.rng.Float64() < survival)
				continue
			}
			nxt[idx] = 0
			if g.cur.MooreCount(x, y) > 0 && g.rng.Float64() < fert*g.cfg.Growth {
				nxt[idx] = 1
			}
		}
	}
	g.cur, g.nxt = g.nxt, g.cur
}

// Cells exposes the current generation.
func (g *Growth) Cells() []uint8 { return g.cur.Cells() }

// Alive counts live cells.
func (g *Growth) Alive() int {
	n := 0
	for _, c := range g.cur.Cells() {
		n += int(c)
	}
	return n
}

// Render draws live cells white and dead cells black.
func (g *Growth) Render() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.res, g.res))
	for i, c := range g.cur.Cells() {
		v := uint8(0)
		if c == 1 {
			v = 0xff
		}
		img.Pix[i*4+0] = v
		img.Pix[i*4+1] = v
		img.Pix[i*4+2] = v
		img.Pix[i*4+3] = 0xff
	}
	return img
}

func boolCell(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func init() {
	core.Register("vegetation", func(core.Env) core.Operation { return NewVegetation() })
}
