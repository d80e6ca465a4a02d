//go:build ebiten

package render

import (
	"texgen/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// PairPainter uploads an image pair into two textures and draws them side by
// side over a checkerboard.
type PairPainter struct {
	res     int
	left    *ebiten.Image
	right   *ebiten.Image
	checker *ebiten.Image
	buf     []byte
}

// NewPairPainter allocates a painter for res×res pairs.
func NewPairPainter(res int) *PairPainter {
	pp := &PairPainter{res: res, buf: make([]byte, 4*res*res)}
	pp.left = ebiten.NewImage(res, res)
	pp.right = ebiten.NewImage(res, res)
	pp.checker = ebiten.NewImage(res, res)
	fillChecker(pp.buf, res, res, 8, 72, 48)
	pp.checker.WritePixels(pp.buf)
	return pp
}

// Upload copies pair into the textures. A nil or mismatched pair clears them.
func (pp *PairPainter) Upload(pair *core.ImagePair) {
	if pair == nil || pair.Validate() != nil || pair.Res() != pp.res {
		pp.left.Clear()
		pp.right.Clear()
		return
	}
	premultiplyNRGBA(pp.buf, pair.Left)
	pp.left.WritePixels(pp.buf)
	premultiplyNRGBA(pp.buf, pair.Right)
	pp.right.WritePixels(pp.buf)
}

// Draw renders left at the origin and right next to it, both scaled.
func (pp *PairPainter) Draw(dst *ebiten.Image, scale int) {
	for i, img := range []*ebiten.Image{pp.left, pp.right} {
		x := float64(i * pp.res * scale)
		for _, layer := range []*ebiten.Image{pp.checker, img} {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(float64(scale), float64(scale))
			op.GeoM.Translate(x, 0)
			dst.DrawImage(layer, op)
		}
	}
}

// Res returns the edge length of each texture.
func (pp *PairPainter) Res() int { return pp.res }
