package domain

import "errors"

var (
	ErrInvalidLocation     = errors.New("invalid location")
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrNotFound            = errors.New("not found")
)
