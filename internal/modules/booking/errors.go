package booking

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("booking not found")
	ErrTourNotFound = errors.New("tour not found")
	ErrForbidden    = errors.New("forbidden")
)
