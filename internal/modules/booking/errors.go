package booking

import "errors"

var (
	ErrValidation             = errors.New("missing required booking information")
	ErrUserNotFound           = errors.New("account session is no longer valid")
	ErrHotelNotFound          = errors.New("selected hotel/room no longer exists")
	ErrFraudBlocked           = errors.New("booking blocked by fraud protection")
	ErrPaymentInit            = errors.New("unable to initialize payment")
	ErrPaymentSessionNotFound = errors.New("payment session not found for callback reference")
	ErrPaymentVerification    = errors.New("payment verification failed")
	ErrNotFound               = errors.New("booking not found")
	ErrAlreadyCancelled       = errors.New("booking has already been cancelled")
	ErrNotCancellable         = errors.New("only confirmed bookings can be cancelled online")
)
