package pipeline

import (
	"fmt"

	"texgen/internal/core"
)

// Stack is an ordered list of layers with a cursor. The cursor is -1 when the
// stack is empty and a valid index otherwise.
type Stack struct {
	layers []*Layer
	cursor int
}

// NewStack returns an empty stack.
func NewStack() *Stack { return &Stack{cursor: -1} }

// Add inserts l directly after the cursor and moves the cursor onto it.
func (s *Stack) Add(l *Layer) {
	at := s.cursor + 1
	s.layers = append(s.layers, nil)
	copy(s.layers[at+1:], s.layers[at:])
	s.layers[at] = l
	s.cursor = at
}

// Current returns the layer under the cursor.
func (s *Stack) Current() (*Layer, error) {
	if s.cursor < 0 {
		return nil, core.ErrEmptyPipeline
	}
	return s.layers[s.cursor], nil
}

// Select moves the cursor to i.
func (s *Stack) Select(i int) error {
	if i < 0 || i >= len(s.layers) {
		return fmt.Errorf("%w: %d of %d", core.ErrLayerIndex, i, len(s.layers))
	}
	s.cursor = i
	return nil
}

func (s *Stack) Len() int    { return len(s.layers) }
func (s *Stack) Cursor() int { return s.cursor }

// Layers returns a snapshot of the stack order.
func (s *Stack) Layers() []*Layer {
	out := make([]*Layer, len(s.layers))
	copy(out, s.layers)
	return out
}
