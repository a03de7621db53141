package model

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")

	// ErrAlreadyVoted is a normal, expected outcome of a repeat vote on the
	// same calendar day, not an internal failure.
	ErrAlreadyVoted = errors.New("already voted today")

	// ErrNotReady signals that the daily set for the requested date has not
	// been populated yet.
	ErrNotReady = errors.New("daily games not ready")
)
