//go:build ebiten

package app

import (
	"errors"
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"texgen/internal/core"
	"texgen/internal/logger"
	"texgen/internal/pipeline"
	"texgen/internal/render"
	"texgen/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Game adapts a pipeline session to the ebiten.Game interface.
type Game struct {
	session *pipeline.Session
	env     core.Env
	painter *render.PairPainter
	hud     *ui.HUD

	scale      int
	panelWidth int
	uploaded   *core.ImagePair
}

// New constructs a Game for the provided session.
func New(session *pipeline.Session, env core.Env, scale, panelWidth int) *Game {
	if scale <= 0 {
		scale = 1
	}
	return &Game{
		session:    session,
		env:        env,
		painter:    render.NewPairPainter(session.Resolution()),
		hud:        ui.NewHUD(session, panelWidth),
		scale:      scale,
		panelWidth: panelWidth,
	}
}

// Update handles per-frame input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.preview()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.save()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.selectLayer(g.session.Stack().Cursor() - 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.selectLayer(g.session.Stack().Cursor() + 1)
	}
	names := core.OperationNames()
	for i, key := range digitKeys {
		if i < len(names) && inpututil.IsKeyJustPressed(key) {
			g.add(names[i])
		}
	}

	g.hud.Update(g.imageWidth())
	return nil
}

func (g *Game) preview() {
	params := g.hud.Pending()
	cur, err := g.session.Stack().Current()
	if err != nil {
		g.report("preview", err)
		return
	}
	if _, ok := cur.Operation().Schema().Lookup(core.SeedKey); ok {
		params.Set(core.SeedKey, float64(core.RandomSeed()))
	}
	if _, err := g.session.ApplyCurrent(params); err != nil {
		g.report("preview", err)
		return
	}
	g.hud.SetPending(params)
	g.hud.SetStatus("preview (unsaved)")
}

func (g *Game) save() {
	if _, err := g.session.SaveCurrent(g.hud.Pending()); err != nil {
		g.report("save", err)
		return
	}
	g.hud.SetStatus("saved")
}

func (g *Game) selectLayer(i int) {
	if _, err := g.session.SelectLayer(i); err != nil {
		return
	}
	g.hud.Reload()
	g.hud.SetStatus("")
}

func (g *Game) add(name string) {
	op, err := core.NewOperation(name, g.env)
	if err != nil {
		g.report("add", err)
		return
	}
	if _, err := g.session.AddOperation(op); err != nil {
		if errors.Is(err, core.ErrUnsaved) {
			g.hud.SetStatus("save the current layer first (S)")
			return
		}
		g.report("add", err)
		return
	}
	g.hud.Reload()
	g.hud.SetStatus(fmt.Sprintf("added %s, press G to preview", op.Title()))
}

func (g *Game) report(action string, err error) {
	logger.L().Warn("viewer action failed", zap.String("action", action), zap.Error(err))
	g.hud.SetStatus(fmt.Sprintf("%s: %v", action, err))
}

// Draw renders the current image pair and the panel.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	if img := g.session.CurrentImage(); img != g.uploaded {
		g.painter.Upload(img)
		g.uploaded = img
	}
	g.painter.Draw(screen, g.scale)
	g.hud.Draw(screen, g.imageWidth(), g.height())
}

func (g *Game) imageWidth() int { return 2 * g.session.Resolution() * g.scale }

func (g *Game) height() int {
	h := g.session.Resolution() * g.scale
	if h < minPanelHeight {
		h = minPanelHeight
	}
	return h
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.imageWidth() + g.panelWidth, g.height()
}

const minPanelHeight = 640
