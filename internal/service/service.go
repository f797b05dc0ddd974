package service

import (
	"errors"
	"time"

	"github.com/emrgen/cms/internal/store"
)

// Clock returns the current time. Services take one so tests can pin timestamps.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

// storeError maps store level errors onto the service error kinds.
func storeError(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return notFound
	case errors.Is(err, store.ErrDuplicate):
		return ErrDuplicateName
	default:
		return err
	}
}
