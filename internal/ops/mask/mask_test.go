package mask

import (
	"errors"
	"image/color"
	"testing"

	"texgen/internal/core"
)

func TestCopyDuplicatesLeft(t *testing.T) {
	pair := core.NewImagePair(4)
	pair.Left.SetNRGBA(1, 2, core.Gray(80))
	out, err := Copy{}.Execute(pair, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Right.NRGBAAt(1, 2) != core.Gray(80) {
		t.Fatalf("right = %v", out.Right.NRGBAAt(1, 2))
	}
	out.Right.SetNRGBA(0, 0, core.Gray(5))
	if out.Left.NRGBAAt(0, 0) != core.Gray(0) {
		t.Fatal("copy shares memory with left")
	}
}

func TestMixEndpoints(t *testing.T) {
	pair := core.NewImagePair(2)
	pair.Left = core.NewCanvas(2, color.NRGBA{R: 255, A: 255})
	pair.Right = core.NewCanvas(2, color.NRGBA{B: 255, A: 128})

	out, err := NewMix().Execute(pair.Copy(), core.Parameters{"amount": 100})
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Right.NRGBAAt(1, 1); got != (color.NRGBA{R: 255, A: 255}) {
		t.Fatalf("amount 100 should take left, got %v", got)
	}

	out, _ = NewMix().Execute(pair.Copy(), core.Parameters{"amount": 0})
	if got := out.Right.NRGBAAt(1, 1); got != (color.NRGBA{B: 255, A: 128}) {
		t.Fatalf("amount 0 should keep right, got %v", got)
	}
}

func TestMixHalfway(t *testing.T) {
	pair := core.NewImagePair(1)
	pair.Left = core.NewCanvas(1, core.Gray(255))
	pair.Right = core.NewCanvas(1, color.NRGBA{A: 0})
	out, err := NewMix().Execute(pair, core.Parameters{})
	if err != nil {
		t.Fatal(err)
	}
	got := out.Right.NRGBAAt(0, 0)
	if absDiff(got.R, got.G) > 1 || absDiff(got.G, got.B) > 1 {
		t.Fatalf("gray blend should stay neutral, got %v", got)
	}
	if got.R < 100 || got.R > 140 {
		t.Fatalf("lab midpoint of black and white should be mid gray, got %v", got)
	}
	if got.A != 128 {
		t.Fatalf("alpha should mix linearly, got %d", got.A)
	}
	if out.Left.NRGBAAt(0, 0) != core.Gray(255) {
		t.Fatal("mix must not touch left")
	}
}

func TestMixRejectsMismatchedPair(t *testing.T) {
	pair := core.NewImagePair(4)
	pair.Right = core.NewCanvas(3, core.Gray(0))
	if _, err := NewMix().Execute(pair, nil); !errors.Is(err, core.ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
