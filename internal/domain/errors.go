package domain

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned by stores when the requested entity
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoActiveConnection is returned when an owner has no active
	// API connection to resolve a price source from.
	ErrNoActiveConnection = errors.New("No active API connection")
)
