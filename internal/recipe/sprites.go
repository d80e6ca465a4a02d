package recipe

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"texgen/internal/core"
	"texgen/internal/logger"
	"texgen/internal/ops/scatter"
)

// LoadSprites decodes each entry relative to dir and adds it to repo.
func LoadSprites(dir string, entries []SpriteEntry, repo *scatter.SpriteRepository) error {
	for _, e := range entries {
		path := e.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		img, err := decodeFile(path)
		if err != nil {
			return fmt.Errorf("recipe: sprite %s: %w", path, err)
		}
		if err := repo.Add(img, e.Weight); err != nil {
			return fmt.Errorf("recipe: sprite %s: %w", path, err)
		}
		logger.L().Debug("sprite loaded", zap.String("path", path), zap.Int("weight", e.Weight),
			zap.Stringer("bounds", img.Bounds()))
	}
	return nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// Env loads the recipe's sprites into a fresh catalogue.
func (r *Recipe) Env() (core.Env, *scatter.SpriteRepository, error) {
	repo := scatter.NewSpriteRepository()
	if err := LoadSprites(r.Dir, r.Sprites, repo); err != nil {
		return core.Env{}, nil, err
	}
	return core.Env{Catalogue: repo}, repo, nil
}

// Files lists the recipe's sprite paths resolved against Dir.
func (r *Recipe) Files() []string {
	out := make([]string, 0, len(r.Sprites))
	for _, s := range r.Sprites {
		if filepath.IsAbs(s.Path) {
			out = append(out, s.Path)
			continue
		}
		out = append(out, filepath.Join(r.Dir, s.Path))
	}
	return out
}
