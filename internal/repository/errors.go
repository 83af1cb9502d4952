package repository

import "errors"

// ErrNotFound is returned when a targeted record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrVersionConflict is returned when a settings save loses a compare-and-swap
// race against a concurrent writer.
var ErrVersionConflict = errors.New("settings version conflict")
