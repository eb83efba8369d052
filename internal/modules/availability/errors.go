package availability

import "errors"

var (
	ErrSoldOut      = errors.New("selected room category is no longer available for these dates")
	ErrRoomNotFound = errors.New("room not found")
)
