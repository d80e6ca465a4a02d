package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"texgen/internal/core"
	"texgen/internal/logger"
	"texgen/internal/recipe"
)

func main() {
	cfg := NewConfig()
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

	if cfg.Recipe == "" {
		fmt.Fprintln(os.Stderr, "usage: texgen -recipe file.yaml [-out prefix] [-set key=value] [-variants N] [-watch]")
		fmt.Fprintf(os.Stderr, "operations: %v\n", core.OperationNames())
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.NewContext(ctx, l.With(zap.String("recipe", cfg.Recipe)))

	if err := render(ctx, cfg); err != nil {
		l.Error("render failed", zap.Error(err))
		if !cfg.Watch {
			l.Sync() //nolint:errcheck
			os.Exit(1)
		}
	}
	if cfg.Watch {
		if err := watch(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
			l.Fatal("watch", zap.Error(err))
		}
	}
}

// load reads the recipe and applies the -set overrides.
func load(cfg *Config) (*recipe.Recipe, error) {
	r, err := recipe.Load(cfg.Recipe)
	if err != nil {
		return nil, err
	}
	for _, kv := range cfg.Sets {
		o, err := parseOverride(kv)
		if err != nil {
			return nil, err
		}
		if err := r.Set(o.layer, o.key, o.value); err != nil {
			return nil, fmt.Errorf("override %q: %w", kv, err)
		}
	}
	return r, nil
}

func render(ctx context.Context, cfg *Config) error {
	l := logger.FromContext(ctx)
	r, err := load(cfg)
	if err != nil {
		return err
	}
	env, repo, err := r.Env()
	if err != nil {
		return err
	}
	l.Info("recipe loaded",
		zap.Int("resolution", r.Resolution),
		zap.Int("layers", len(r.Layers)),
		zap.Int("sprites", repo.Count()))

	if cfg.Variants <= 1 {
		pair, err := r.Run(env)
		if err != nil {
			return err
		}
		return writePair(cfg.Out, pair)
	}
	return sweep(ctx, r, env, cfg)
}

func writePair(prefix string, pair *core.ImagePair) error {
	if err := writePNG(prefix+"_left.png", pair.Left); err != nil {
		return err
	}
	if err := writePNG(prefix+"_right.png", pair.Right); err != nil {
		return err
	}
	logger.L().Info("wrote images", zap.String("prefix", prefix), zap.Int("res", pair.Res()))
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
