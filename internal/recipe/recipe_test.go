package recipe

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"texgen/internal/core"
)

const sample = `
resolution: 32
layers:
  - op: perlin
    params: {frequency: 2, iterations: 3, seed: 42}
  - op: copy
  - op: mix
    params:
      amount: 25
`

func TestParseSample(t *testing.T) {
	r, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	if r.Resolution != 32 || len(r.Layers) != 3 {
		t.Fatalf("unexpected recipe: %+v", r)
	}
	if r.Layers[0].Params["seed"] != "42" || r.Layers[2].Params["amount"] != "25" {
		t.Fatalf("params not decoded as text: %+v", r.Layers)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"resolution": "resolution: 0\nlayers: [{op: copy}]",
		"no layers":  "resolution: 8\n",
		"unknown op": "resolution: 8\nlayers: [{op: teleport}]",
		"sprite":     "resolution: 8\nsprites: [{path: a.png, weight: 0}]\nlayers: [{op: copy}]",
		"yaml":       "resolution: [",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); !errors.Is(err, core.ErrInvalidRecipe) {
			t.Fatalf("%s: expected ErrInvalidRecipe, got %v", name, err)
		}
	}
	_, err := Parse([]byte(cases["unknown op"]))
	if !errors.Is(err, core.ErrUnknownOperation) {
		t.Fatalf("unknown op should also wrap ErrUnknownOperation: %v", err)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	r, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	a, err := r.Run(core.Env{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Run(core.Env{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Left.Pix, b.Left.Pix) || !bytes.Equal(a.Right.Pix, b.Right.Pix) {
		t.Fatal("same recipe produced different images")
	}
	if a.Res() != 32 {
		t.Fatalf("res = %d", a.Res())
	}
}

func TestBuildCommitsEveryLayer(t *testing.T) {
	r, _ := Parse([]byte(sample))
	s, err := r.Build(core.Env{})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Clean() || s.Stack().Len() != 3 || s.Stack().Cursor() != 2 {
		t.Fatalf("session not committed: clean=%v len=%d cursor=%d", s.Clean(), s.Stack().Len(), s.Stack().Cursor())
	}
	for i, l := range s.Stack().Layers() {
		if l.Output() == nil {
			t.Fatalf("layer %d has no output", i)
		}
	}
}

func TestBuildDefaultsInvalidParams(t *testing.T) {
	r, _ := Parse([]byte("resolution: 8\nlayers:\n  - op: perlin\n    params: {frequency: lots, seed: 1}\n"))
	s, err := r.Build(core.Env{})
	if err != nil {
		t.Fatal(err)
	}
	cur, _ := s.Stack().Current()
	if got := cur.Params().Int("frequency", 0); got != 4 {
		t.Fatalf("frequency = %d, want default 4", got)
	}
}

func TestBuildRequiresSeed(t *testing.T) {
	r, err := Parse([]byte("resolution: 8\nlayers:\n  - op: perlin\n    params: {frequency: 2}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Run(core.Env{}); !errors.Is(err, core.ErrMissingSeed) {
		t.Fatalf("expected ErrMissingSeed, got %v", err)
	}

	r, _ = Parse([]byte("resolution: 8\nlayers:\n  - op: perlin\n    params: {seed: soon}\n"))
	if _, err := r.Run(core.Env{}); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for a bad seed, got %v", err)
	}

	r, _ = Parse([]byte("resolution: 8\nlayers:\n  - op: perlin\n    params: {seed: 3}\n  - op: copy\n"))
	if _, err := r.Run(core.Env{}); err != nil {
		t.Fatalf("unseeded operations need no seed: %v", err)
	}
}

func TestWithSeedOffset(t *testing.T) {
	r, _ := Parse([]byte(sample))
	v := r.WithSeedOffset(3)
	if v.Layers[0].Params["seed"] != "45" {
		t.Fatalf("seed = %q", v.Layers[0].Params["seed"])
	}
	if r.Layers[0].Params["seed"] != "42" {
		t.Fatal("offset modified the original")
	}
	if _, ok := v.Layers[1].Params["seed"]; ok {
		t.Fatal("offset added a seed to a layer without one")
	}

	a, _ := r.Run(core.Env{})
	b, _ := v.Run(core.Env{})
	if bytes.Equal(a.Left.Pix, b.Left.Pix) {
		t.Fatal("variant should differ from the base recipe")
	}
}

func TestSetOverrides(t *testing.T) {
	r, _ := Parse([]byte(sample))
	if err := r.Set(-1, "amount", "90"); err != nil {
		t.Fatal(err)
	}
	if err := r.Set(1, "unused", "1"); err != nil {
		t.Fatal(err)
	}
	if r.Layers[2].Params["amount"] != "90" || r.Layers[1].Params["unused"] != "1" {
		t.Fatalf("overrides not applied: %+v", r.Layers)
	}
	if err := r.Set(7, "x", "1"); !errors.Is(err, core.ErrLayerIndex) {
		t.Fatalf("expected ErrLayerIndex, got %v", err)
	}
}

func TestMarshalRoundTripKeepsLayers(t *testing.T) {
	r, _ := Parse([]byte(sample))
	data, err := r.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Layers) != len(r.Layers) || back.Layers[0].Params["frequency"] != "2" {
		t.Fatalf("round trip lost data: %+v", back)
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadWithSprites(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "leaf.png"), 4, 6)
	doc := `
resolution: 24
sprites:
  - path: leaf.png
    weight: 3
layers:
  - op: scatter
    params: {quantity: 5, size: 6, stddev: 1, seed: 9}
`
	path := filepath.Join(dir, "r.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	env, repo, err := r.Env()
	if err != nil {
		t.Fatal(err)
	}
	if repo.Count() != 1 || repo.TotalWeight() != 3 {
		t.Fatalf("catalogue = %d sprites, weight %d", repo.Count(), repo.TotalWeight())
	}
	pair, err := r.Run(env)
	if err != nil {
		t.Fatal(err)
	}
	white := 0
	for y := 0; y < pair.Res(); y++ {
		for x := 0; x < pair.Res(); x++ {
			if pair.Left.NRGBAAt(x, y) == (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
				white++
			}
		}
	}
	if white == 0 {
		t.Fatal("no sprite pixels were composited")
	}
	if files := r.Files(); len(files) != 1 || files[0] != filepath.Join(dir, "leaf.png") {
		t.Fatalf("files = %v", files)
	}
}

func TestLoadSpritesMissingFile(t *testing.T) {
	r := &Recipe{Dir: t.TempDir(), Sprites: []SpriteEntry{{Path: "nope.png", Weight: 1}}}
	if _, _, err := r.Env(); err == nil {
		t.Fatal("expected error for missing sprite")
	}
}

func TestWatcherReportsTrackedFilesOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r.yaml")
	sprite := filepath.Join(dir, "leaf.png")
	writePNG(t, sprite, 2, 2)
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path, sprite)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// Rendered output next to the recipe must not trigger a re-render.
	for i := 0; i < 3; i++ {
		writePNG(t, filepath.Join(dir, "texture_left.png"), 2, 2)
		if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(150 * time.Millisecond)
	}
	select {
	case got := <-w.Events:
		t.Fatalf("unexpected event for %q", got)
	case <-time.After(300 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case got := <-w.Events:
		if got != path {
			t.Fatalf("event for %q, want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event for the recipe")
	}

	time.Sleep(2 * debounce)
	writePNG(t, sprite, 3, 3)
	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-w.Events:
			if got == sprite {
				return
			}
			if got != path {
				t.Fatalf("unexpected event for %q", got)
			}
		case <-deadline:
			t.Fatal("no event for the sprite")
		}
	}
}

func TestWatcherTrackAddsFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r.yaml")
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	late := filepath.Join(t.TempDir(), "late.png")
	if err := w.Track(late); err != nil {
		t.Fatal(err)
	}
	writePNG(t, late, 2, 2)
	select {
	case got := <-w.Events:
		if got != late {
			t.Fatalf("event for %q, want %q", got, late)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event for a file tracked after start")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "r.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	w.Close()
	if _, ok := <-w.Events; ok {
		t.Fatal("events channel should be closed")
	}
}
