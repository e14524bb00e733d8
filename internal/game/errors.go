package game

import (
	"errors"

	"chessgame/internal/chess"
)

var (
	ErrIllegalMove    = errors.New("illegal move requested")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrGameFinished   = errors.New("game already finished")
	ErrGameNotStarted = errors.New("game not started")
	ErrAlreadyStarted = errors.New("game already started")
	ErrNoSelection    = errors.New("no piece selected")
	ErrEmptySquare    = errors.New("no piece on square")
	ErrNothingToUndo  = errors.New("nothing to undo")

	// 摆子阶段的致命错误，直接用规则层的定义
	ErrUnknownPieceType = chess.ErrUnknownPieceType
)
