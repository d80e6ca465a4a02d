// Package coloring partitions the plane into at most four region classes.
// Seed points are joined by their Delaunay edges and the resulting graph is
// 4-colored so that no two adjacent regions share a class.
package coloring

import (
	"math"

	"github.com/fogleman/delaunay"
	"go.uber.org/zap"

	"texgen/internal/logger"
	prng "texgen/pkg/core"
)

// Uncolored marks a node that has no color assigned.
const Uncolored = -1

// NumColors is the size of the color alphabet.
const NumColors = 4

// Point is a seed position in canvas coordinates.
type Point struct {
	X, Y float64
}

// Node is one seed of the region graph.
type Node struct {
	Point
	Color     int
	Neighbors []int

	domain []int
}

// Graph is an undirected adjacency graph over seed points.
type Graph struct {
	Nodes []Node
}

// NewGraph returns a graph with one uncolored, unconnected node per point.
func NewGraph(points []Point) *Graph {
	g := &Graph{Nodes: make([]Node, len(points))}
	for i, p := range points {
		g.Nodes[i] = Node{Point: p, Color: Uncolored}
	}
	return g
}

// Connect adds the undirected edge a–b. Self loops and duplicates are ignored.
func (g *Graph) Connect(a, b int) {
	if a == b || a < 0 || b < 0 || a >= len(g.Nodes) || b >= len(g.Nodes) {
		return
	}
	if g.Adjacent(a, b) {
		return
	}
	g.Nodes[a].Neighbors = append(g.Nodes[a].Neighbors, b)
	g.Nodes[b].Neighbors = append(g.Nodes[b].Neighbors, a)
}

// Adjacent reports whether a and b share an edge.
func (g *Graph) Adjacent(a, b int) bool {
	for _, n := range g.Nodes[a].Neighbors {
		if n == b {
			return true
		}
	}
	return false
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, n := range g.Nodes {
		total += len(n.Neighbors)
	}
	return total / 2
}

// Triangulate builds the region graph from the Delaunay triangulation of
// points. With fewer than three points every pair is adjacent.
func Triangulate(points []Point) *Graph {
	g := NewGraph(points)
	if len(points) < 3 {
		for a := range points {
			for b := a + 1; b < len(points); b++ {
				g.Connect(a, b)
			}
		}
		return g
	}

	pts := make([]delaunay.Point, len(points))
	for i, p := range points {
		pts[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		logger.L().Warn("delaunay triangulation degenerate",
			zap.Int("points", len(points)), zap.Error(err))
	}
	if tri == nil {
		return g
	}
	for t := 0; t+2 < len(tri.Triangles); t += 3 {
		a, b, c := tri.Triangles[t], tri.Triangles[t+1], tri.Triangles[t+2]
		g.Connect(a, b)
		g.Connect(b, c)
		g.Connect(c, a)
	}
	return g
}

// Validate reports whether every node carries a color in 0..3 and no edge
// joins two nodes of the same color.
func (g *Graph) Validate() bool {
	for _, n := range g.Nodes {
		if n.Color < 0 || n.Color >= NumColors {
			return false
		}
		for _, j := range n.Neighbors {
			if g.Nodes[j].Color == n.Color {
				return false
			}
		}
	}
	return true
}

// UniformPoints scatters n points uniformly over [0,res)².
func UniformPoints(res, n int, rng *prng.RNG) []Point {
	pts := make([]Point, 0, max(n, 0))
	for i := 0; i < n; i++ {
		x := rng.Float64() * float64(res)
		y := rng.Float64() * float64(res)
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts
}

// JitteredGrid places one point per cell of a cells×cells grid. Each point
// blends a uniform position inside its cell with a Gaussian sample around the
// cell center (sigma = cell width / 6); mix = 0 is fully uniform, mix = 1
// fully Gaussian.
func JitteredGrid(res, cells int, mix float64, rng *prng.RNG) []Point {
	if cells <= 0 {
		return nil
	}
	cw := float64(res) / float64(cells)
	sigma := cw / 6
	pts := make([]Point, 0, cells*cells)
	for j := 0; j < cells; j++ {
		for i := 0; i < cells; i++ {
			ux := float64(i)*cw + rng.Float64()*cw
			uy := float64(j)*cw + rng.Float64()*cw
			cx := float64(i)*cw + cw/2
			cy := float64(j)*cw + cw/2
			gx := cx + rng.NormFloat64()*sigma
			gy := cy + rng.NormFloat64()*sigma
			pts = append(pts, Point{
				X: wrap((1-mix)*ux+mix*gx, res),
				Y: wrap((1-mix)*uy+mix*gy, res),
			})
		}
	}
	return pts
}

// wrap folds v into [0,res) so Gaussian samples near the border stay on
// the torus.
func wrap(v float64, res int) float64 {
	r := float64(res)
	v = math.Mod(v, r)
	if v < 0 {
		v += r
	}
	if v >= r {
		v = 0
	}
	return v
}

// WrappedDistance is the Euclidean distance between p and (x, y) on a torus
// of edge length res.
func WrappedDistance(p Point, x, y float64, res int) float64 {
	r := float64(res)
	dx := math.Abs(p.X - x)
	dx = math.Min(dx, r-dx)
	dy := math.Abs(p.Y - y)
	dy = math.Min(dy, r-dy)
	return math.Sqrt(dx*dx + dy*dy)
}
