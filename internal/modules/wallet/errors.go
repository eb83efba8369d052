package wallet

import "errors"

var (
	ErrInvalidAmount       = errors.New("top-up amount must be greater than zero")
	ErrInsufficientFunds   = errors.New("insufficient wallet balance")
	ErrUserNotFound        = errors.New("wallet user not found")
	ErrTopUpNotAllowed     = errors.New("hotel admins cannot credit virtual wallets")
	ErrInvalidWalletAmount = errors.New("wallet amount must be positive")
)
