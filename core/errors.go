package core

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("blog: not found")

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ConstructionError is returned while the server is being assembled. The
// process should exit rather than serve with a broken component.
type ConstructionError struct {
	Component string
	Err       error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("blog: construct %s: %v", e.Component, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

func IsConstructionError(err error) bool {
	var ce *ConstructionError
	return errors.As(err, &ce)
}
