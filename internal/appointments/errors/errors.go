package errors

import "errors"

var (
	ErrNotFound = errors.New("appointment option not found")
)
