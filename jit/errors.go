package jit

import (
	"strings"
)

// CycleError is reported when directive expansion revisits a host
// selector/utility pair which is still being expanded.
type CycleError struct {
	Chain []string // "host -> utility" steps, the first step repeats at the end
}

func (e *CycleError) Error() string {
	return "directive cycle detected: " + strings.Join(e.Chain, " => ")
}
