package main

import (
	"context"

	"go.uber.org/zap"

	"texgen/internal/logger"
	"texgen/internal/recipe"
)

// watchedFiles lists the recipe and the sprites it currently references.
func watchedFiles(path string) []string {
	files := []string{path}
	if r, err := recipe.Load(path); err == nil {
		files = append(files, r.Files()...)
	}
	return files
}

// watch re-renders whenever the recipe or one of its sprites changes, until
// ctx is cancelled. Other files in the same directories, including the
// rendered output, are ignored.
func watch(ctx context.Context, cfg *Config) error {
	l := logger.FromContext(ctx)
	files := watchedFiles(cfg.Recipe)
	w, err := recipe.NewWatcher(files...)
	if err != nil {
		return err
	}
	defer w.Close()
	l.Info("watching for changes", zap.Strings("files", files))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			l.Info("change detected", zap.String("path", path))
			if err := render(ctx, cfg); err != nil {
				l.Error("render failed", zap.Error(err))
			}
			if err := w.Track(watchedFiles(cfg.Recipe)...); err != nil {
				l.Warn("cannot watch sprite", zap.Error(err))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.Warn("watcher error", zap.Error(err))
		}
	}
}
