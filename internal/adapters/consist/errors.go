package consist

import "errors"

// Package errors for consist file operations.
var (
	// ErrNoConsists is returned when the consist directory holds no .con files.
	ErrNoConsists = errors.New("no consist files found")

	// ErrResultMismatch is returned when the number of resolution results
	// does not cover the parsed entries.
	ErrResultMismatch = errors.New("resolution results do not cover all entries")
)
