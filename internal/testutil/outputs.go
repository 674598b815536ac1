package testutil

import "github.com/hupe1980/tetrix/core"

// Kinds projects outputs onto their kinds preserving order.
func Kinds(outputs []core.Output) []core.OutputKind {
	kinds := make([]core.OutputKind, len(outputs))
	for i, out := range outputs {
		kinds[i] = out.Kind
	}
	return kinds
}

// Filter returns the outputs of the given kind preserving order.
func Filter(outputs []core.Output, kind core.OutputKind) []core.Output {
	var res []core.Output
	for _, out := range outputs {
		if out.Kind == kind {
			res = append(res, out)
		}
	}
	return res
}

// Last returns the last output of the given kind.
func Last(outputs []core.Output, kind core.OutputKind) (core.Output, bool) {
	for i := len(outputs) - 1; i >= 0; i-- {
		if outputs[i].Kind == kind {
			return outputs[i], true
		}
	}
	return core.Output{}, false
}

// Contains reports whether an output of the given kind is present.
func Contains(outputs []core.Output, kind core.OutputKind) bool {
	_, ok := Last(outputs, kind)
	return ok
}
