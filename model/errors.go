package model

import "github.com/pkg/errors"

// Errors returned by Engine.Init.
var (
	ErrResourceLimitExceeded = errors.New("resource limit exceeded")
	ErrAllocationFailure     = errors.New("allocation failure")
	ErrInvalidDimensions     = errors.New("invalid dimensions")
)

// Contract violations. These are never returned; they are the values the
// engine panics with (wrapped) when a caller breaks a precondition.
var (
	ErrNotReady    = errors.New("engine not initialized")
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	ErrStaleView   = errors.New("view invalidated by init or cleanup")
)

var ErrUnknownSeeder = errors.New("unknown seeder")
