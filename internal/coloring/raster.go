package coloring

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"texgen/internal/core"
)

// Palette maps colors 0..3 to pixels. Uncolored regions render as Fallback.
var Palette = [NumColors]color.NRGBA{
	{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	{R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	{R: 0x00, G: 0xff, B: 0xff, A: 0xff},
	{R: 0x00, G: 0x00, B: 0xff, A: 0xff},
}

// Fallback is the color of regions the solver left uncolored.
var Fallback = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// ColorOf returns the palette entry for c.
func ColorOf(c int) color.NRGBA {
	if c < 0 || c >= NumColors {
		return Fallback
	}
	return Palette[c]
}

// Nearest returns the index of the node closest to (x, y) under toroidal
// distance. The first node wins ties. It returns -1 for an empty graph.
func (g *Graph) Nearest(x, y float64, res int) int {
	best := -1
	bestDist := math.MaxFloat64
	for i := range g.Nodes {
		d := WrappedDistance(g.Nodes[i].Point, x, y, res)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// Rasterize paints every pixel of a res×res image with the color of its
// nearest node.
func (g *Graph) Rasterize(res int) *image.NRGBA {
	img := core.NewCanvas(res, Fallback)
	if len(g.Nodes) == 0 {
		return img
	}
	for y := 0; y < res; y++ {
		for x := 0; x < res; x++ {
			n := g.Nearest(float64(x), float64(y), res)
			img.SetNRGBA(x, y, ColorOf(g.Nodes[n].Color))
		}
	}
	return img
}

// ExhaustedError reports a graph the solver could not 4-color. It matches
// core.ErrColoringExhausted under errors.Is.
type ExhaustedError struct {
	Nodes int
	Edges int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%v: %d nodes, %d edges", core.ErrColoringExhausted, e.Nodes, e.Edges)
}

func (e *ExhaustedError) Unwrap() error { return core.ErrColoringExhausted }

// Render triangulates points, colors the region graph and rasterizes it.
func Render(res int, points []Point) (*image.NRGBA, error) {
	return RenderGraph(Triangulate(points), res)
}

// RenderGraph colors g and rasterizes it. When the coloring is exhausted the
// image is still returned, rendered with whatever coloring remains, together
// with an *ExhaustedError. Reporting is left to the caller.
func RenderGraph(g *Graph, res int) (*image.NRGBA, error) {
	var err error
	if !g.Solve() {
		err = &ExhaustedError{Nodes: len(g.Nodes), Edges: g.EdgeCount()}
	}
	return g.Rasterize(res), err
}
