package core

import (
	"image"
	"image/color"
)

// ImagePair is the dual canvas every operation reads and writes. Both buffers
// are square and share the same size.
type ImagePair struct {
	Left  *image.NRGBA
	Right *image.NRGBA
}

// NewImagePair allocates a res×res pair filled with opaque black.
func NewImagePair(res int) *ImagePair {
	if res <= 0 {
		res = 1
	}
	return &ImagePair{Left: NewCanvas(res, color.NRGBA{A: 0xff}), Right: NewCanvas(res, color.NRGBA{A: 0xff})}
}

// Res returns the edge length of the pair.
func (p *ImagePair) Res() int {
	if p == nil || p.Left == nil {
		return 0
	}
	return p.Left.Rect.Dx()
}

// Copy returns a deep copy; the two pairs share no pixel memory.
func (p *ImagePair) Copy() *ImagePair {
	if p == nil {
		return nil
	}
	return &ImagePair{Left: CopyImage(p.Left), Right: CopyImage(p.Right)}
}

// Validate checks the pair invariants: present, square and equal sized.
func (p *ImagePair) Validate() error {
	if p == nil || p.Left == nil || p.Right == nil {
		return ErrSizeMismatch
	}
	lb, rb := p.Left.Rect, p.Right.Rect
	if lb.Dx() != lb.Dy() || lb.Size() != rb.Size() {
		return ErrSizeMismatch
	}
	return nil
}

// NewCanvas allocates a res×res buffer filled with c.
func NewCanvas(res int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, res, res))
	if c == (color.NRGBA{}) {
		return img
	}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// CopyImage returns a deep copy of src normalized to a zero origin.
func CopyImage(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Rect
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		so := src.PixOffset(b.Min.X, b.Min.Y+y)
		do := dst.PixOffset(0, y)
		copy(dst.Pix[do:do+4*b.Dx()], src.Pix[so:so+4*b.Dx()])
	}
	return dst
}

// Gray returns an opaque gray color with the given intensity.
func Gray(v uint8) color.NRGBA {
	return color.NRGBA{R: v, G: v, B: v, A: 0xff}
}
