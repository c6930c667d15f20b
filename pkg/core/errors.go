package core

import "errors"

// Common errors.
var (
	ErrReadOnly         = errors.New("repository is in read-only mode")
	ErrNotFound         = errors.New("note not found")
	ErrEmptyTitle       = errors.New("note title cannot be empty")
	ErrCorrupt          = errors.New("backing store contents could not be decoded")
	ErrPersist          = errors.New("failed to persist notes")
	ErrWatchUnsupported = errors.New("repository does not support watching")
)
