package service

import (
	"errors"
	"fmt"

	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/store"
)

// mapStoreError translates store errors into the domain taxonomy. Domain
// errors pass through; anything unrecognised is returned unchanged and is
// treated as unexpected by the API layer.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case domain.IsKnown(err):
		return err
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	case errors.Is(err, store.ErrDuplicate), errors.Is(err, store.ErrInUse):
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	case errors.Is(err, store.ErrInvalidEntity):
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	default:
		return err
	}
}
