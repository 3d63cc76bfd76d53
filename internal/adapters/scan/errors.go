package scan

import "errors"

// Package errors for trainset scanning operations.
var (
	// ErrTrainsetMissing is returned when the trainset directory does not exist.
	ErrTrainsetMissing = errors.New("trainset directory does not exist")

	// ErrNoAssets is returned when a scan completes without finding a single asset.
	ErrNoAssets = errors.New("no assets found in trainset directory")
)
