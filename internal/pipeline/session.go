package pipeline

import (
	"go.uber.org/zap"

	"texgen/internal/core"
	"texgen/internal/logger"
)

// Session drives a stack of layers at a fixed resolution. It tracks the image
// on display and whether the current layer holds uncommitted changes.
type Session struct {
	res     int
	stack   *Stack
	current *core.ImagePair
	dirty   bool
}

// NewSession returns an empty session producing res×res images.
func NewSession(res int) *Session {
	if res <= 0 {
		res = 1
	}
	return &Session{res: res, stack: NewStack()}
}

// AddOperation appends op after the current layer. Its input is the current
// layer's output, or a fresh black pair when there is none. The returned pair
// is the new layer's input.
func (s *Session) AddOperation(op core.Operation) (*core.ImagePair, error) {
	if s.dirty {
		return nil, core.ErrUnsaved
	}
	var input *core.ImagePair
	if cur, err := s.stack.Current(); err == nil && cur.Output() != nil {
		input = cur.Output().Copy()
	} else {
		input = core.NewImagePair(s.res)
	}
	l := NewLayer(op, input)
	s.stack.Add(l)
	s.current = input
	s.dirty = true
	logger.L().Debug("layer added", zap.String("op", op.Title()), zap.Uint64("seq", l.Seq()), zap.Int("index", s.stack.Cursor()))
	return input, nil
}

// ApplyCurrent previews p on the current layer. The session stays dirty.
func (s *Session) ApplyCurrent(p core.Parameters) (*core.ImagePair, error) {
	out, err := s.regenerate(p)
	if err != nil {
		return nil, err
	}
	s.dirty = true
	return out, nil
}

// SaveCurrent regenerates the current layer with p and commits it.
func (s *Session) SaveCurrent(p core.Parameters) (*core.ImagePair, error) {
	out, err := s.regenerate(p)
	if err != nil {
		return nil, err
	}
	s.dirty = false
	return out, nil
}

func (s *Session) regenerate(p core.Parameters) (*core.ImagePair, error) {
	cur, err := s.stack.Current()
	if err != nil {
		return nil, err
	}
	input := cur.Input()
	if input == nil {
		input = core.NewImagePair(s.res)
	}
	prev := cur.Params()
	cur.SetParams(p)
	out, err := cur.Apply(input)
	if err != nil {
		cur.SetParams(prev)
		return nil, err
	}
	s.current = out
	return out, nil
}

// SelectLayer moves the cursor and returns that layer's output, nil if it was
// never applied.
func (s *Session) SelectLayer(i int) (*core.ImagePair, error) {
	if err := s.stack.Select(i); err != nil {
		return nil, err
	}
	cur, _ := s.stack.Current()
	s.current = cur.Output()
	return s.current, nil
}

// CurrentImage is the pair last produced or displayed.
func (s *Session) CurrentImage() *core.ImagePair { return s.current }

// Clean reports whether the current layer has no uncommitted changes.
func (s *Session) Clean() bool { return !s.dirty }

func (s *Session) Resolution() int { return s.res }

func (s *Session) Stack() *Stack { return s.stack }
