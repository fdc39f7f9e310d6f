package errors

import "errors"

var (
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	ErrGatewayRejected = errors.New("payment gateway rejected the request")
)
