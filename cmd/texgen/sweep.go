package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"texgen/internal/core"
	"texgen/internal/logger"
	"texgen/internal/recipe"
)

type variantResult struct {
	index int
	path  string
	err   error
	took  time.Duration
}

// sweep renders cfg.Variants copies of r with seeds shifted by the variant
// index. Each worker builds its own session; only the catalogue is shared.
func sweep(ctx context.Context, r *recipe.Recipe, env core.Env, cfg *Config) error {
	l := logger.FromContext(ctx)
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > cfg.Variants {
		workers = cfg.Variants
	}
	l.Info("rendering variants", zap.Int("variants", cfg.Variants), zap.Int("workers", workers))

	jobs := make(chan int)
	results := make(chan variantResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results <- renderVariant(r, env, cfg.Out, idx)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for i := 0; i < cfg.Variants; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	start := time.Now()
	failed := 0
	for res := range results {
		if res.err != nil {
			failed++
			l.Error("variant failed", zap.Int("variant", res.index), zap.Error(res.err))
			continue
		}
		l.Info("variant done", zap.Int("variant", res.index), zap.String("prefix", res.path), zap.Duration("took", res.took))
	}
	l.Info("sweep finished", zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)), zap.Int("failed", failed))

	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d variants failed", failed, cfg.Variants)
	}
	return nil
}

func renderVariant(r *recipe.Recipe, env core.Env, out string, idx int) variantResult {
	start := time.Now()
	prefix := fmt.Sprintf("%s_%03d", out, idx)
	pair, err := r.WithSeedOffset(int64(idx)).Run(env)
	if err == nil {
		err = writePair(prefix, pair)
	}
	return variantResult{index: idx, path: prefix, err: err, took: time.Since(start)}
}
