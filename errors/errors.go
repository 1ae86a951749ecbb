package errors

import "fmt"

var (
	ErrUnauthenticated = fmt.Errorf("unauthenticated")
	ErrForbidden       = fmt.Errorf("forbidden")
	ErrRoomNotFound    = fmt.Errorf("room not found")
	ErrMessageNotFound = fmt.Errorf("message not found")
	ErrRoomConflict    = fmt.Errorf("room already exists")
	ErrMessageConflict = fmt.Errorf("message already exists")
	ErrValidation      = fmt.Errorf("invalid input")
	ErrInvalidCursor   = fmt.Errorf("invalid cursor")
	ErrUnavailable     = fmt.Errorf("storage unavailable")
)
