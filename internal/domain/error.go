package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNoUser          = errors.New("no user in session")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUploadTooLarge  = errors.New("resume upload exceeds size limit")
	ErrUploadWrongType = errors.New("resume upload is not plain text")
	ErrJobSource       = errors.New("job source unavailable")
	ErrStaleResult     = errors.New("result superseded by a newer request")
)
