package engine

import "errors"

var (
	ErrOutOfBounds       = errors.New("square out of bounds")
	ErrInvalidSelection  = errors.New("invalid square selection")
	ErrIllegalPattern    = errors.New("move option has no matching move")
	ErrQueueIndexInvalid = errors.New("queue position out of range")
	ErrGameOver          = errors.New("game is over")
	ErrInvalidConfig     = errors.New("invalid game configuration")
)
