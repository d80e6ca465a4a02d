// Package ops links every built-in operation into the registry.
package ops

import (
	_ "texgen/internal/ops/mask"
	_ "texgen/internal/ops/noise"
	_ "texgen/internal/ops/scatter"
)
