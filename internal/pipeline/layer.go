package pipeline

import (
	"sync/atomic"

	"texgen/internal/core"
)

var layerSeq atomic.Uint64

// Layer binds an operation to its parameters and caches the last input and
// output it saw.
type Layer struct {
	op     core.Operation
	params core.Parameters
	input  *core.ImagePair
	output *core.ImagePair
	seq    uint64
}

// NewLayer creates a layer over op with the operation's default parameters.
// input is deep-copied; a nil input leaves the layer without one.
func NewLayer(op core.Operation, input *core.ImagePair) *Layer {
	return &Layer{
		op:     op,
		params: op.Schema().Defaults(),
		input:  input.Copy(),
		seq:    layerSeq.Add(1),
	}
}

// Apply runs the operation on a copy of input and caches both sides. On error
// the cached input and output are left as they were.
func (l *Layer) Apply(input *core.ImagePair) (*core.ImagePair, error) {
	in := input.Copy()
	out, err := l.op.Execute(input.Copy(), l.params.Clone())
	if err != nil {
		return nil, err
	}
	l.input = in
	l.output = out.Copy()
	return out, nil
}

func (l *Layer) Operation() core.Operation { return l.op }

// Input returns the cached input, nil before the first Apply of a layer
// created without one.
func (l *Layer) Input() *core.ImagePair { return l.input }

// Output returns the cached output or nil if the layer was never applied.
func (l *Layer) Output() *core.ImagePair { return l.output }

// Params returns a copy of the layer parameters.
func (l *Layer) Params() core.Parameters { return l.params.Clone() }

// SetParams replaces the layer parameters with a copy of p.
func (l *Layer) SetParams(p core.Parameters) { l.params = p.Clone() }

// Seq is the layer's creation order, unique within the process.
func (l *Layer) Seq() uint64 { return l.seq }

func (l *Layer) Title() string { return l.op.Title() }
