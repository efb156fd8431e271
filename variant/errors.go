package variant

import (
	"errors"
)

var (
	// ErrUnknownVariant is returned for variant names which are not registered
	// and do not match any parameterized form.
	ErrUnknownVariant = errors.New("unknown variant")
	// ErrPseudoElementConflict is returned when more than one pseudo-element
	// would be applied to the same selector.
	ErrPseudoElementConflict = errors.New("more than one pseudo-element")
)
