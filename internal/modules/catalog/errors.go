package catalog

import "errors"

var (
	ErrHotelNotFound = errors.New("hotel not found")
	ErrInvalidSort   = errors.New("invalid sort order")
)
