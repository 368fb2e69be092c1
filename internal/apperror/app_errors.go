package apperror

import "errors"

var (
	ErrOutOfBounds   = errors.New("invalid index, max range of column and row is 2")
	ErrCellOccupied  = errors.New("you can't change your or a previous player's answer")
	ErrGameFinished  = errors.New("game is already finished")
	ErrArgumentCount = errors.New("incorrect number of arguments")
	ErrInvalidNumber = errors.New("invalid number")
	ErrGameAborted   = errors.New("game was aborted")
)
