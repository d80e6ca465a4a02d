package scatter

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"texgen/internal/core"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestEmptyCatalogueIsNoOp(t *testing.T) {
	pair := core.NewImagePair(16)
	pair.Left.SetNRGBA(3, 3, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	before := pair.Copy()

	out, err := New(NewSpriteRepository()).Execute(pair, core.Parameters{"seed": 1})
	if err != nil {
		t.Fatalf("empty catalogue must not fail: %v", err)
	}
	if !bytes.Equal(out.Left.Pix, before.Left.Pix) || !bytes.Equal(out.Right.Pix, before.Right.Pix) {
		t.Fatal("empty catalogue must leave the canvas unchanged")
	}

	if _, err := New(nil).Execute(pair, core.Parameters{}); err != nil {
		t.Fatalf("nil catalogue must behave as empty: %v", err)
	}
}

func TestWeightedRandomIndexEmpty(t *testing.T) {
	_, err := NewSpriteRepository().WeightedRandomIndex(rand.New(rand.NewPCG(1, 0)))
	if !errors.Is(err, core.ErrEmptyCatalogue) {
		t.Fatalf("expected ErrEmptyCatalogue, got %v", err)
	}
}

func TestAddRejectsInvalidSprites(t *testing.T) {
	repo := NewSpriteRepository()
	if err := repo.Add(nil, 1); !errors.Is(err, core.ErrInvalidSprite) {
		t.Fatalf("nil image: got %v", err)
	}
	if err := repo.Add(solid(2, 2, color.NRGBA{A: 255}), 0); !errors.Is(err, core.ErrInvalidSprite) {
		t.Fatalf("zero weight: got %v", err)
	}
	if repo.Count() != 0 {
		t.Fatal("rejected sprites must not be stored")
	}
}

func TestWeightedRandomIndexDistribution(t *testing.T) {
	repo := NewSpriteRepository()
	weights := []int{1, 3, 6}
	for _, w := range weights {
		if err := repo.Add(solid(1, 1, color.NRGBA{A: 255}), w); err != nil {
			t.Fatal(err)
		}
	}
	if repo.TotalWeight() != 10 {
		t.Fatalf("total weight = %d", repo.TotalWeight())
	}
	if repo.Weight(2) != 6 {
		t.Fatalf("weight(2) = %d", repo.Weight(2))
	}

	rnd := rand.New(rand.NewPCG(99, 0))
	const draws = 100000
	counts := make([]int, len(weights))
	for i := 0; i < draws; i++ {
		idx, err := repo.WeightedRandomIndex(rnd)
		if err != nil {
			t.Fatal(err)
		}
		if idx < 0 || idx >= repo.Count() {
			t.Fatalf("index %d out of range", idx)
		}
		counts[idx]++
	}
	for i, w := range weights {
		got := float64(counts[i]) / draws
		want := float64(w) / 10
		if math.Abs(got-want) > 0.01 {
			t.Fatalf("sprite %d frequency %.4f, want %.4f", i, got, want)
		}
	}
}

func TestClearEmptiesCatalogue(t *testing.T) {
	repo := NewSpriteRepository()
	repo.Add(solid(1, 1, color.NRGBA{A: 255}), 2)
	repo.Clear()
	if repo.Count() != 0 || repo.TotalWeight() != 0 {
		t.Fatal("clear must remove every sprite")
	}
}

func TestCompositeWrapsAndSkipsTransparent(t *testing.T) {
	canvas := solid(8, 8, color.NRGBA{A: 255})
	stamp := solid(3, 3, color.NRGBA{R: 255, A: 255})
	stamp.SetNRGBA(1, 1, color.NRGBA{})
	Composite(canvas, stamp, 7, 7)

	red := color.NRGBA{R: 255, A: 255}
	for _, pt := range [][2]int{{7, 7}, {0, 7}, {1, 7}, {7, 0}, {7, 1}, {1, 1}, {0, 1}, {1, 0}} {
		if got := canvas.NRGBAAt(pt[0], pt[1]); got != red {
			t.Fatalf("pixel %v = %v, want red", pt, got)
		}
	}
	if got := canvas.NRGBAAt(0, 0); got != (color.NRGBA{A: 255}) {
		t.Fatalf("transparent stamp pixel must be skipped, got %v", got)
	}
}

func TestCompositeOverwritesPartialAlpha(t *testing.T) {
	canvas := solid(2, 2, color.NRGBA{B: 255, A: 255})
	stamp := solid(1, 1, color.NRGBA{R: 200, A: 100})
	Composite(canvas, stamp, 0, 0)
	if got := canvas.NRGBAAt(0, 0); got != (color.NRGBA{R: 200, A: 100}) {
		t.Fatalf("expected overwrite, got %v", got)
	}
}

func TestTransformCoversCenter(t *testing.T) {
	sprite := solid(10, 20, color.NRGBA{G: 255, A: 255})
	stamp := Transform(sprite, 16, 0.7)
	if stamp.Rect.Dx() != 16 || stamp.Rect.Dy() != 16 {
		t.Fatalf("unexpected stamp size %v", stamp.Rect)
	}
	if c := stamp.NRGBAAt(8, 8); c.A == 0 || c.G == 0 {
		t.Fatalf("stamp center should be covered, got %v", c)
	}
}

func TestAffineMapsCenterToCenter(t *testing.T) {
	m := Affine(image.Rect(0, 0, 10, 20), 16, 1.3)
	cx, cy := 5.0, 10.0
	x := m[0]*cx + m[1]*cy + m[2]
	y := m[3]*cx + m[4]*cy + m[5]
	if math.Abs(x-8) > 1e-9 || math.Abs(y-8) > 1e-9 {
		t.Fatalf("center mapped to (%v,%v)", x, y)
	}
}

func TestScatterDeterministic(t *testing.T) {
	repo := NewSpriteRepository()
	repo.Add(solid(4, 4, color.NRGBA{R: 255, A: 255}), 1)
	repo.Add(solid(6, 3, color.NRGBA{B: 255, A: 255}), 2)
	p := core.Parameters{"quantity": 12, "size": 8, "stddev": 2, "seed": 77}

	a, err := New(repo).Execute(core.NewImagePair(32), p)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := New(repo).Execute(core.NewImagePair(32), p)
	if !bytes.Equal(a.Left.Pix, b.Left.Pix) {
		t.Fatal("scatter not deterministic")
	}
	painted := 0
	for i := 3; i < len(a.Left.Pix); i += 4 {
		if a.Left.Pix[i] != 0 {
			painted++
		}
	}
	if painted == 0 {
		t.Fatal("expected sprites on the canvas")
	}
}

func TestScatterKeepsBackgroundWhenNotClearing(t *testing.T) {
	repo := NewSpriteRepository()
	repo.Add(solid(2, 2, color.NRGBA{R: 255, A: 255}), 1)
	pair := core.NewImagePair(64)
	out, _ := New(repo).Execute(pair, core.Parameters{"quantity": 1, "size": 2, "stddev": 0, "clear": 0, "seed": 3})

	opaqueBlack := 0
	for i := 0; i < len(out.Left.Pix); i += 4 {
		if out.Left.Pix[i] == 0 && out.Left.Pix[i+3] == 255 {
			opaqueBlack++
		}
	}
	if opaqueBlack < 64*64-16 {
		t.Fatalf("background should survive, only %d black pixels left", opaqueBlack)
	}
}

func TestScatterRequiresSeed(t *testing.T) {
	repo := NewSpriteRepository()
	repo.Add(solid(2, 2, color.NRGBA{A: 255}), 1)
	if _, err := New(repo).Execute(core.NewImagePair(8), core.Parameters{}); !errors.Is(err, core.ErrMissingSeed) {
		t.Fatalf("expected ErrMissingSeed, got %v", err)
	}
}

func TestRepositoryConcurrentAccess(t *testing.T) {
	repo := NewSpriteRepository()
	repo.Add(solid(1, 1, color.NRGBA{A: 255}), 1)
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				repo.Add(solid(1, 1, color.NRGBA{A: 255}), 1+i%3)
			}
		}()
		go func(seed uint64) {
			defer wg.Done()
			rnd := rand.New(rand.NewPCG(seed, 0))
			for i := 0; i < 200; i++ {
				idx, err := repo.WeightedRandomIndex(rnd)
				if err != nil {
					t.Error(err)
					return
				}
				_ = repo.SpriteAt(idx)
			}
		}(uint64(g))
	}
	wg.Wait()
	if repo.Count() != 801 {
		t.Fatalf("expected 801 sprites, got %d", repo.Count())
	}
}

// fixedCatalogue always yields its single sprite.
type fixedCatalogue struct {
	sprite image.Image
	draws  int
}

func (c *fixedCatalogue) Count() int       { return 1 }
func (c *fixedCatalogue) TotalWeight() int { return 1 }
func (c *fixedCatalogue) WeightedRandomIndex(*rand.Rand) (int, error) {
	c.draws++
	return 0, nil
}
func (c *fixedCatalogue) SpriteAt(int) image.Image { return c.sprite }

func TestScatterWithSubstituteCatalogue(t *testing.T) {
	cat := &fixedCatalogue{sprite: solid(3, 3, color.NRGBA{G: 255, A: 255})}
	out, err := New(cat).Execute(core.NewImagePair(16), core.Parameters{"quantity": 4, "size": 3, "stddev": 0, "seed": 1})
	if err != nil {
		t.Fatal(err)
	}
	if cat.draws != 4 {
		t.Fatalf("expected 4 draws, got %d", cat.draws)
	}
	green := 0
	for i := 0; i < len(out.Left.Pix); i += 4 {
		if out.Left.Pix[i+1] > 0 && out.Left.Pix[i+3] > 0 {
			green++
		}
	}
	if green == 0 {
		t.Fatal("no sprite pixels placed")
	}
}

// brokenCatalogue reports entries but fails or misbehaves on every draw.
type brokenCatalogue struct {
	err error
	idx int
}

func (c brokenCatalogue) Count() int       { return 1 }
func (c brokenCatalogue) TotalWeight() int { return 1 }
func (c brokenCatalogue) WeightedRandomIndex(*rand.Rand) (int, error) {
	return c.idx, c.err
}
func (c brokenCatalogue) SpriteAt(int) image.Image {
	panic("SpriteAt must not be reached")
}

func TestScatterSurfacesCatalogueErrors(t *testing.T) {
	boom := errors.New("storage offline")
	p := core.Parameters{"quantity": 2, "seed": 1}
	if _, err := New(brokenCatalogue{err: boom}).Execute(core.NewImagePair(8), p); !errors.Is(err, boom) {
		t.Fatalf("expected draw error, got %v", err)
	}
	if _, err := New(brokenCatalogue{idx: 5}).Execute(core.NewImagePair(8), p); err == nil {
		t.Fatal("expected error for out-of-range index")
	}
}
