package core

import (
	"errors"
)

var (
	// Handle table faults. Resolve panics with ErrInvalidHandle, all callers are internal.
	ErrInvalidHandle = errors.New("invalid handle")
	ErrStaleHandle   = errors.New("stale handle")

	// Precondition violations. These halt initialization and are never retried.
	ErrAlreadyInitialized = errors.New("already initialized")
	ErrNotInitialized     = errors.New("not initialized")
	ErrAlreadyCompiled    = errors.New("material has been compiled before")
	ErrNotCompiled        = errors.New("material is not compiled")

	// Device rejection.
	ErrLinkFailed = errors.New("program link failed")

	// Missing external resources.
	ErrInvalidCanvas = errors.New("invalid canvas id")
	ErrImageNotFound = errors.New("image not found")
)
