package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"texgen/internal/core"
	"texgen/internal/pipeline"
)

// step returns the increment used by the +/- buttons for a kind.
func step(kind core.ParamKind) float64 {
	switch kind {
	case core.ParamSlider:
		return 5
	case core.ParamFloat:
		return 0.05
	default:
		return 1
	}
}

// adjust moves v one step in direction and keeps it inside the kind's range.
func adjust(spec core.ParamSpec, v float64, direction int) float64 {
	target := v + float64(direction)*step(spec.Kind)
	switch spec.Kind {
	case core.ParamSlider:
		target = math.Max(0, math.Min(100, target))
	case core.ParamInt, core.ParamSeed:
		target = math.Trunc(target)
		if target < 0 {
			target = 0
		}
	case core.ParamFloat:
		target = math.Round(target*1000) / 1000
	}
	return target
}

func formatValue(kind core.ParamKind, v float64) string {
	switch kind {
	case core.ParamInt, core.ParamSeed, core.ParamSlider:
		return strconv.FormatInt(int64(v), 10)
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}

// layerLines renders one line per layer; the cursor row is marked with '>'.
func layerLines(s *pipeline.Session) []string {
	layers := s.Stack().Layers()
	out := make([]string, 0, len(layers))
	for i, l := range layers {
		mark := " "
		if i == s.Stack().Cursor() {
			mark = ">"
		}
		state := ""
		if l.Output() == nil {
			state = " (pending)"
		}
		out = append(out, fmt.Sprintf("%s %d %s%s", mark, i, l.Title(), state))
	}
	return out
}

// operationMenu lists the registered operations with their hotkeys.
func operationMenu(names []string) []string {
	out := make([]string, 0, len(names))
	for i, name := range names {
		if i >= 9 {
			break
		}
		out = append(out, fmt.Sprintf("%d %s", i+1, strings.ToLower(name)))
	}
	return out
}
