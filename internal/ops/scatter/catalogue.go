// Package scatter places weighted, randomly transformed sprites onto the
// canvas with toroidal wraparound.
package scatter

import (
	"fmt"
	"image"
	"math/rand/v2"
	"sync"

	"texgen/internal/core"
)

// SpriteRepository is a weighted sprite catalogue safe for concurrent use.
// Mutations and reads are serialized by a single mutex.
type SpriteRepository struct {
	mu      sync.Mutex
	sprites []image.Image
	weights []int
}

var _ core.Catalogue = (*SpriteRepository)(nil)

// NewSpriteRepository returns an empty catalogue.
func NewSpriteRepository() *SpriteRepository {
	return &SpriteRepository{}
}

// Add appends a sprite with its weight. The weight must be at least 1.
func (r *SpriteRepository) Add(img image.Image, weight int) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", core.ErrInvalidSprite)
	}
	if weight < 1 {
		return fmt.Errorf("%w: weight %d < 1", core.ErrInvalidSprite, weight)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sprites = append(r.sprites, img)
	r.weights = append(r.weights, weight)
	return nil
}

// Clear removes every sprite.
func (r *SpriteRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sprites = nil
	r.weights = nil
}

// Weight returns the weight of sprite i.
func (r *SpriteRepository) Weight(i int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.weights[i]
}

// Count returns the number of sprites.
func (r *SpriteRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sprites)
}

// TotalWeight returns the sum of all weights, 0 when empty.
func (r *SpriteRepository) TotalWeight() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totalLocked()
}

func (r *SpriteRepository) totalLocked() int {
	sum := 0
	for _, w := range r.weights {
		sum += w
	}
	return sum
}

// WeightedRandomIndex draws a sprite index with probability weight/total.
func (r *SpriteRepository) WeightedRandomIndex(rnd *rand.Rand) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := r.totalLocked()
	if total == 0 || len(r.sprites) == 0 {
		return 0, core.ErrEmptyCatalogue
	}
	n := rnd.IntN(total)
	cumulative := 0
	for i, w := range r.weights {
		cumulative += w
		if n < cumulative {
			return i, nil
		}
	}
	return len(r.weights) - 1, nil
}

// SpriteAt returns sprite i.
func (r *SpriteRepository) SpriteAt(i int) image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sprites[i]
}
