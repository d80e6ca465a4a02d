package recipe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"texgen/internal/core"
	"texgen/internal/logger"
	_ "texgen/internal/ops"
	"texgen/internal/pipeline"
)

// Recipe is a declarative pipeline: a resolution, an optional sprite
// catalogue and an ordered list of layers.
type Recipe struct {
	Resolution int           `yaml:"resolution"`
	Sprites    []SpriteEntry `yaml:"sprites,omitempty"`
	Layers     []LayerSpec   `yaml:"layers"`

	// Dir resolves relative sprite paths. Load sets it to the recipe's
	// directory.
	Dir string `yaml:"-"`
}

// SpriteEntry names a PNG file and its selection weight.
type SpriteEntry struct {
	Path   string `yaml:"path"`
	Weight int    `yaml:"weight"`
}

// LayerSpec is one pipeline step. Params hold raw text and are coerced
// against the operation schema at run time.
type LayerSpec struct {
	Op     string            `yaml:"op"`
	Params map[string]string `yaml:"params,omitempty"`
}

// Load reads and validates the recipe at path.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recipe: load %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("recipe: %s: %w", path, err)
	}
	r.Dir = filepath.Dir(path)
	return r, nil
}

// Parse decodes and validates a YAML recipe.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidRecipe, err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks the recipe structure. Parameter values are not checked
// here; bad values fall back to defaults when the recipe runs.
func (r *Recipe) Validate() error {
	if r.Resolution <= 0 {
		return fmt.Errorf("%w: resolution must be positive, got %d", core.ErrInvalidRecipe, r.Resolution)
	}
	if len(r.Layers) == 0 {
		return fmt.Errorf("%w: no layers", core.ErrInvalidRecipe)
	}
	known := core.Operations()
	for i, l := range r.Layers {
		if _, ok := known[l.Op]; !ok {
			return fmt.Errorf("%w: layer %d: %w: %q", core.ErrInvalidRecipe, i, core.ErrUnknownOperation, l.Op)
		}
	}
	for i, s := range r.Sprites {
		if s.Path == "" || s.Weight < 1 {
			return fmt.Errorf("%w: sprite %d: need a path and a weight of at least 1", core.ErrInvalidRecipe, i)
		}
	}
	return nil
}

// Marshal encodes the recipe back to YAML.
func (r *Recipe) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// Clone returns a deep copy.
func (r *Recipe) Clone() *Recipe {
	out := *r
	out.Sprites = append([]SpriteEntry(nil), r.Sprites...)
	out.Layers = make([]LayerSpec, len(r.Layers))
	for i, l := range r.Layers {
		params := make(map[string]string, len(l.Params))
		for k, v := range l.Params {
			params[k] = v
		}
		out.Layers[i] = LayerSpec{Op: l.Op, Params: params}
	}
	return &out
}

// Set overrides a raw parameter. A negative layer index counts from the end.
func (r *Recipe) Set(layer int, key, value string) error {
	if layer < 0 {
		layer += len(r.Layers)
	}
	if layer < 0 || layer >= len(r.Layers) {
		return fmt.Errorf("%w: %d of %d", core.ErrLayerIndex, layer, len(r.Layers))
	}
	if r.Layers[layer].Params == nil {
		r.Layers[layer].Params = map[string]string{}
	}
	r.Layers[layer].Params[key] = value
	return nil
}

// WithSeedOffset returns a copy in which every seed is shifted by k.
func (r *Recipe) WithSeedOffset(k int64) *Recipe {
	out := r.Clone()
	for i, l := range out.Layers {
		raw, ok := l.Params[core.SeedKey]
		if !ok {
			continue
		}
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logger.L().Warn("seed offset skipped", zap.Int("layer", i), zap.String("seed", raw), zap.Error(err))
			continue
		}
		out.Layers[i].Params[core.SeedKey] = strconv.FormatInt(seed+k, 10)
	}
	return out
}

// Build runs every layer through a new session and commits each one. Layers
// whose operation takes a seed must set it; a missing or unparsable seed fails
// the build rather than drawing a random one.
func (r *Recipe) Build(env core.Env) (*pipeline.Session, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	s := pipeline.NewSession(r.Resolution)
	for i, l := range r.Layers {
		op, err := core.NewOperation(l.Op, env)
		if err != nil {
			return nil, fmt.Errorf("recipe: layer %d: %w", i, err)
		}
		if _, seeded := op.Schema().Lookup(core.SeedKey); seeded {
			if _, ok := l.Params[core.SeedKey]; !ok {
				return nil, fmt.Errorf("recipe: layer %d (%s): %w", i, l.Op, core.ErrMissingSeed)
			}
		}
		params, warnings := core.ParseParameters(op.Schema(), l.Params)
		for _, w := range warnings {
			var pe *core.ParamError
			if errors.As(w, &pe) && pe.Key == core.SeedKey {
				return nil, fmt.Errorf("recipe: layer %d (%s): %w", i, l.Op, w)
			}
			logger.L().Warn("parameter defaulted", zap.Int("layer", i), zap.String("op", l.Op), zap.Error(w))
		}
		if _, err := s.AddOperation(op); err != nil {
			return nil, fmt.Errorf("recipe: layer %d: %w", i, err)
		}
		if _, err := s.SaveCurrent(params); err != nil {
			return nil, fmt.Errorf("recipe: layer %d (%s): %w", i, l.Op, err)
		}
		logger.L().Debug("layer rendered", zap.Int("layer", i), zap.String("op", l.Op), zap.Stringer("params", params))
	}
	return s, nil
}

// Run builds the pipeline and returns the final image pair.
func (r *Recipe) Run(env core.Env) (*core.ImagePair, error) {
	s, err := r.Build(env)
	if err != nil {
		return nil, err
	}
	return s.CurrentImage(), nil
}
