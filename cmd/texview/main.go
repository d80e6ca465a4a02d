//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"go.uber.org/zap"

	"texgen/internal/app"
	"texgen/internal/core"
	"texgen/internal/logger"
	_ "texgen/internal/ops"
	"texgen/internal/pipeline"
	"texgen/internal/recipe"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	var err error
	var l *zap.Logger
	if cfg.Verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	logger.Set(l)
	defer l.Sync() //nolint:errcheck

	session := pipeline.NewSession(cfg.Resolution)
	env := core.Env{}
	if cfg.Recipe != "" {
		r, err := recipe.Load(cfg.Recipe)
		if err != nil {
			l.Fatal("load recipe", zap.Error(err))
		}
		env, _, err = r.Env()
		if err != nil {
			l.Fatal("load sprites", zap.Error(err))
		}
		session, err = r.Build(env)
		if err != nil {
			l.Fatal("build recipe", zap.Error(err))
		}
	}

	game := app.New(session, env, cfg.Scale, cfg.PanelWidth)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("texview")
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		l.Fatal("run", zap.Error(err))
	}
}
