package chess

import "errors"

var (
	ErrUnknownPieceType = errors.New("unknown piece type")
	ErrOffBoard         = errors.New("square off board")
	ErrOccupied         = errors.New("square already occupied")
	ErrInvalidLayout    = errors.New("invalid layout")
	ErrInvalidFEN       = errors.New("invalid FEN")
)
