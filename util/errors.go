package util

import "errors"

var (
	// ErrNotFound is returned for unknown stops, lines and missing road distances.
	ErrNotFound = errors.New("not found")

	ErrInvalidSettings = errors.New("invalid settings")
)
