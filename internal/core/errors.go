package core

import "errors"

var (
	// ErrInvalidParameter marks a value that could not be coerced to its
	// declared kind. Callers recover by using the declared default.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrMissingSeed is returned when a seeded operation runs without a seed.
	ErrMissingSeed = errors.New("seed parameter missing")
	// ErrEmptyPipeline is returned by operations that need a current layer.
	ErrEmptyPipeline = errors.New("pipeline is empty")
	// ErrLayerIndex is returned when selecting a layer that does not exist.
	ErrLayerIndex = errors.New("layer index out of range")
	// ErrUnsaved is returned when adding a layer while the current one has
	// uncommitted changes.
	ErrUnsaved = errors.New("current layer has unsaved changes")
	// ErrEmptyCatalogue is returned by weighted draws on an empty catalogue.
	ErrEmptyCatalogue = errors.New("sprite catalogue is empty")
	// ErrInvalidSprite is returned when adding a nil sprite or a weight below 1.
	ErrInvalidSprite = errors.New("invalid sprite")
	// ErrColoringExhausted is returned when no valid 4-coloring was found.
	ErrColoringExhausted = errors.New("could not find valid 4-coloring")
	// ErrUnknownOperation is returned for unregistered operation names.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrSizeMismatch is returned when the two buffers of a pair differ.
	ErrSizeMismatch = errors.New("image pair buffers differ in size")
	// ErrInvalidRecipe marks a recipe document that cannot be run.
	ErrInvalidRecipe = errors.New("invalid recipe")
)
