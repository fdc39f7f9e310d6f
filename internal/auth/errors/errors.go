package errors

import "errors"

var (
	// ErrInvalidToken covers every verification failure: bad signature,
	// malformed token, wrong algorithm, expiry. Verification fails closed.
	ErrInvalidToken = errors.New("invalid or expired token")
)
