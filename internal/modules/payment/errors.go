package payment

import "errors"

var (
	ErrProviderTimeout     = errors.New("payment provider timed out")
	ErrProviderUnavailable = errors.New("payment provider temporarily unavailable")
	ErrUnsupportedProvider = errors.New("unsupported payment provider")
)
