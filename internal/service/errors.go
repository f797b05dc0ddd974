package service

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateName is returned when a collection or field name is already taken.
	ErrDuplicateName = errors.New("name already exists")
	// ErrUnknownCollection is returned when a referenced collection does not exist.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrUnknownField is returned when a referenced field does not exist.
	ErrUnknownField = errors.New("unknown field")
	// ErrVersionConflict is matched by every *VersionConflictError.
	ErrVersionConflict = errors.New("version conflict")
	// ErrNotFound is returned when an item, revision or tree node does not exist.
	ErrNotFound = errors.New("not found")
	// ErrCycle is returned when a node would become its own ancestor.
	ErrCycle = errors.New("tree cycle")
	// ErrHasChildren is returned when deleting a node that still has children.
	ErrHasChildren = errors.New("node has children")
	// ErrSingletonExists is returned when a singleton collection already holds its item.
	ErrSingletonExists = errors.New("singleton collection already has an item")
	// ErrVocabularyMismatch is returned when a term's parent lives in another vocabulary.
	ErrVocabularyMismatch = errors.New("parent term belongs to another vocabulary")
	// ErrInvalidValue is returned when a payload does not match its field type.
	ErrInvalidValue = errors.New("invalid value")
)

// VersionConflictError reports a stale expected version. Callers re-read the
// item and retry with its current version.
type VersionConflictError struct {
	ItemID   string
	Expected int64
	Current  int64
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("version conflict on %s: expected %d, current %d", e.ItemID, e.Expected, e.Current)
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}
