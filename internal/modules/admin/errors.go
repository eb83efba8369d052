package admin

import "errors"

var (
	ErrForbidden           = errors.New("forbidden")
	ErrHotelNotFound       = errors.New("hotel not found")
	ErrMissingHotelDetails = errors.New("hotel name and bank details are required")
	ErrIncompleteAdmin     = errors.New("provide full hotel admin account details or leave all blank")
	ErrAdminPasswordShort  = errors.New("admin password is too short")
	ErrAdminEmailExists    = errors.New("hotel admin email already exists")
	ErrInvalidRoom         = errors.New("room category, price and units are required")
	ErrValidation          = errors.New("validation error")
)
