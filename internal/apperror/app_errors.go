package apperror

import "errors"

// validation
var (
	ErrRoomRequired    = errors.New("room required")
	ErrInvalidRoomCode = errors.New("invalid room code")
	ErrNameRequired    = errors.New("player name required")
	ErrNameTooLong     = errors.New("player name too long")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrMessageTooLong  = errors.New("message too long")
)

// move rejections, the messages are sent to clients as is
var (
	ErrGameFinished       = errors.New("game finished")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrCellTaken          = errors.New("cell taken")
	ErrNotYourSide        = errors.New("not your assigned side")
	ErrNotYourTurn        = errors.New("not your turn")
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrNotInRoom    = errors.New("connection is not in the room")
)

// IsMoveRejection reports whether err is one of the move rejection reasons.
func IsMoveRejection(err error) bool {
	return errors.Is(err, ErrGameFinished) ||
		errors.Is(err, ErrInvalidCoordinates) ||
		errors.Is(err, ErrCellTaken) ||
		errors.Is(err, ErrNotYourSide) ||
		errors.Is(err, ErrNotYourTurn)
}

// IsValidation reports whether err was caused by malformed input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrRoomRequired) ||
		errors.Is(err, ErrInvalidRoomCode) ||
		errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrNameTooLong) ||
		errors.Is(err, ErrEmptyMessage) ||
		errors.Is(err, ErrMessageTooLong)
}
