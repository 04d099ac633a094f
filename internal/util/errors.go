package util

import "errors"

var (
	// ErrInputNotFound covers a missing, unreadable, cancelled or empty input directory.
	ErrInputNotFound = errors.New("input not found")
	// ErrUndetectable is returned by language detectors for short or ambiguous text.
	ErrUndetectable = errors.New("language not detectable")
	ErrOutput       = errors.New("output write failed")
)
