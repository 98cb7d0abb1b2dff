package datagen

import (
	"errors"
	"fmt"
)

var (
	ErrUnboundPlaceholder = errors.New("placeholder has no binding")
	ErrUnusedBinding      = errors.New("binding does not match any placeholder")
	ErrCapacityExhausted  = errors.New("attempt budget exhausted before reaching target count")
	ErrUnknownEntityKind  = errors.New("unknown entity kind")
)

// ShortfallError is returned alongside a partial result when a bounded-unique
// run could not collect the requested number of distinct items.
type ShortfallError struct {
	Requested int
	Produced  int
	Attempts  int
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("produced %d of %d unique items after %d attempts", e.Produced, e.Requested, e.Attempts)
}

func (e *ShortfallError) Unwrap() error {
	return ErrCapacityExhausted
}
