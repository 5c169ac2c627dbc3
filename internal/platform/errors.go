package platform

import (
	"errors"
)

var (
	// ErrAlreadyRunning is an error returned when feed generation can't be started because previous run
	// for the same store is not finished yet.
	ErrAlreadyRunning = errors.New("feed generation already running for this store")
	// ErrConfiguration is an error returned when store or feed configuration doesn't allow to generate a valid feed.
	// It always aborts the whole run.
	ErrConfiguration = errors.New("invalid feed configuration")
	// ErrValidation is an error returned when invalid argument is passed to metadata operations.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is an error returned when required entity doesn't exist.
	ErrNotFound = errors.New("not found")
)
