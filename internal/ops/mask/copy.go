package mask

import "texgen/internal/core"

// Copy duplicates the left buffer into the right one.
type Copy struct{}

func (Copy) Title() string { return "Copy" }

func (Copy) Description() string {
	return "Copies the left image into the right buffer"
}

func (Copy) Schema() core.Schema { return nil }

func (Copy) Execute(pair *core.ImagePair, _ core.Parameters) (*core.ImagePair, error) {
	pair.Right = core.CopyImage(pair.Left)
	return pair, nil
}

func init() {
	core.Register("copy", func(core.Env) core.Operation { return Copy{} })
}
