package noise

import (
	"errors"
	"image"

	"go.uber.org/zap"

	"texgen/internal/coloring"
	"texgen/internal/core"
	"texgen/internal/logger"
	prng "texgen/pkg/core"
)

const (
	paramCells    = "cells"
	paramGaussian = "gaussian"
	paramPoints   = "points"
)

// Cell renders a jittered grid of 4-colored regions.
type Cell struct {
	*Memo
	schema core.Schema
}

// NewCell returns a Cell generator.
func NewCell() *Cell {
	c := &Cell{schema: core.Schema{
		{Key: paramCells, Label: "Frequency", Kind: core.ParamInt, Default: 10},
		{Key: paramGaussian, Label: "Gaussian", Kind: core.ParamSlider, Default: 40},
		seedSpec(),
	}}
	c.Memo = NewMemo(c.generate)
	return c
}

func (c *Cell) Title() string { return "Cell Noise" }

func (c *Cell) Description() string {
	return "Generates 4-colored cells around a jittered grid of seeds"
}

func (c *Cell) Schema() core.Schema { return c.schema }

func (c *Cell) generate(in *core.ImagePair, par core.Parameters, seed int64) *image.NRGBA {
	res := in.Res()
	cells := par.Int(paramCells, 10)
	mix := par.Get(paramGaussian, 40) / 100
	pts := coloring.JitteredGrid(res, cells, mix, prng.NewRNG(seed))
	return renderRegions(c.Title(), res, pts)
}

// Voronoi renders 4-colored Voronoi regions around uniformly scattered seeds.
type Voronoi struct {
	*Memo
	schema core.Schema
}

// NewVoronoi returns a Voronoi generator.
func NewVoronoi() *Voronoi {
	v := &Voronoi{schema: core.Schema{
		{Key: paramPoints, Label: "Points", Kind: core.ParamInt, Default: 20},
		seedSpec(),
	}}
	v.Memo = NewMemo(v.generate)
	return v
}

func (v *Voronoi) Title() string { return "Voronoi" }

func (v *Voronoi) Description() string {
	return "Generates a toroidal Voronoi diagram with 4-colored regions"
}

func (v *Voronoi) Schema() core.Schema { return v.schema }

func (v *Voronoi) generate(in *core.ImagePair, par core.Parameters, seed int64) *image.NRGBA {
	res := in.Res()
	n := par.Int(paramPoints, 20)
	pts := coloring.UniformPoints(res, n, prng.NewRNG(seed))
	return renderRegions(v.Title(), res, pts)
}

func renderRegions(title string, res int, pts []coloring.Point) *image.NRGBA {
	img, err := coloring.Render(res, pts)
	reportColoring(title, err)
	return img
}

// reportColoring logs an exhausted coloring once, naming the operation.
func reportColoring(title string, err error) {
	var ex *coloring.ExhaustedError
	if !errors.As(err, &ex) {
		return
	}
	logger.L().Warn("region coloring exhausted, rendering partial coloring",
		zap.String("op", title), zap.Int("nodes", ex.Nodes), zap.Int("edges", ex.Edges))
}

func init() {
	core.Register("cell", func(core.Env) core.Operation { return NewCell() })
	core.Register("voronoi", func(core.Env) core.Operation { return NewVoronoi() })
}
