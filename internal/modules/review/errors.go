package review

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrTourNotFound = errors.New("tour not found")
)
