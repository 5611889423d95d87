package planner

import (
	"errors"
	"fmt"
)

// ErrNoCandidate signals that a blueprint slot cannot be filled under the
// given constraints. The generator recovers locally: the slot is skipped and
// a warning recorded, generation of the remaining slots continues.
var ErrNoCandidate = errors.New("no candidate exercise for slot")

// ValidationError reports a malformed generation config. The API layer maps
// it to a 400 response carrying the field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
