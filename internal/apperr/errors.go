// Package apperr holds sentinel errors shared across layers.
package apperr

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrCorruptData marks stored data that no longer decodes.
	ErrCorruptData = errors.New("corrupt stored data")
)
