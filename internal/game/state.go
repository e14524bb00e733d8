package game

import "chessgame/internal/chess"

type State int8

const (
	StateInit State = iota
	StatePlay
	StateFinished
)

func (s State) String() string {
	switch s {
	case StatePlay:
		return "play"
	case StateFinished:
		return "finished"
	}
	return "init"
}

// Listener 接收对局事件，给展示层/网络层用，不属于规则状态。
type Listener interface {
	OnTurnEnded(active chess.Team)
	OnGameFinished(v chess.Verdict)
	OnPieceCaptured(pc chess.Piece)
}

// ListenerFuncs 把三个回调拆成可选的函数字段。
type ListenerFuncs struct {
	TurnEnded     func(active chess.Team)
	GameFinished  func(v chess.Verdict)
	PieceCaptured func(pc chess.Piece)
}

func (l ListenerFuncs) OnTurnEnded(active chess.Team) {
	if l.TurnEnded != nil {
		l.TurnEnded(active)
	}
}

func (l ListenerFuncs) OnGameFinished(v chess.Verdict) {
	if l.GameFinished != nil {
		l.GameFinished(v)
	}
}

func (l ListenerFuncs) OnPieceCaptured(pc chess.Piece) {
	if l.PieceCaptured != nil {
		l.PieceCaptured(pc)
	}
}

type CommandKind int8

const (
	CmdSelect CommandKind = iota + 1
	CmdMove
	CmdUndo
)

func (k CommandKind) String() string {
	switch k {
	case CmdSelect:
		return "select"
	case CmdMove:
		return "move"
	case CmdUndo:
		return "undo"
	}
	return "unknown"
}

// Command 是一次成功的输入。各端按相同顺序重放即可得到相同局面。
type Command struct {
	Kind   CommandKind  `json:"kind"`
	Square chess.Square `json:"square"`
}

// ply 记录一手，用于悔棋
type ply struct {
	undo  chess.Undo
	mover chess.Team
}
