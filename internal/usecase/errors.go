package usecase

import "errors"

var (
	// ErrNotFound means no record matched the lookup key.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized covers bad credentials and missing/invalid/expired tokens.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument means the caller supplied malformed filter or
	// pagination input.
	ErrInvalidArgument = errors.New("invalid argument")
)
