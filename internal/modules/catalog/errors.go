package catalog

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("tour not found")
	ErrForbidden  = errors.New("forbidden")
)
