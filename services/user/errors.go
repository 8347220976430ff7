package user

import (
	"errors"
	"fmt"

	"staybook/database/repository"
)

var (
	ErrInvalidInput       = errors.New("validation error")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordUpdate     = errors.New("this route is not for password updates")
	ErrNothingToUpdate    = fmt.Errorf("%w: no updatable fields provided", ErrInvalidInput)
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func wrapDuplicate(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrEmailTaken
	}
	return err
}
