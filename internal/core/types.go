package core

import (
	"fmt"
	"image"
	"math/rand/v2"
	"sort"
)

// Operation is one image-generating or image-transforming step. Execute may
// mutate and return pair or return a different pair; callers must use the
// returned value.
type Operation interface {
	Title() string
	Description() string
	Schema() Schema
	Execute(pair *ImagePair, p Parameters) (*ImagePair, error)
}

// Catalogue is the weighted sprite collection consumed by the scatter
// compositor.
type Catalogue interface {
	Count() int
	TotalWeight() int
	WeightedRandomIndex(r *rand.Rand) (int, error)
	SpriteAt(i int) image.Image
}

// Env carries collaborators an operation may need at construction.
type Env struct {
	Catalogue Catalogue
}

// Factory constructs an Operation.
type Factory func(env Env) Operation

var ops = map[string]Factory{}

// Register adds an operation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	ops[name] = f
}

// Operations exposes the registry of available operation factories.
func Operations() map[string]Factory {
	return ops
}

// OperationNames lists registered names in lexical order.
func OperationNames() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewOperation constructs the operation registered under name.
func NewOperation(name string, env Env) (Operation, error) {
	f, ok := ops[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	return f(env), nil
}
