package listing

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks request data that failed validation.
var ErrInvalidInput = errors.New("validation error")

// ErrInvalidStatus is returned for an unknown moderation state.
var ErrInvalidStatus = fmt.Errorf("%w: invalid status provided. Must be pending, approved, or rejected", ErrInvalidInput)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
