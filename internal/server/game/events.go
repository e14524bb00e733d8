package game

import (
	"time"

	"chessgame/internal/chess"
)

type EventKind string

const (
	EventStarted   EventKind = "started"
	EventMove      EventKind = "move"
	EventCapture   EventKind = "capture"
	EventTurn      EventKind = "turn"
	EventFinished  EventKind = "finished"
	EventUndo      EventKind = "undo"
	EventRestarted EventKind = "restarted"
	EventBotMove   EventKind = "bot_move"
)

// Event 是对局里发生的一件事，给前端轮询用。Seq 从 1 开始单调递增。
type Event struct {
	Seq    int          `json:"seq"`
	Kind   EventKind    `json:"kind"`
	Team   string       `json:"team,omitempty"`
	Move   string       `json:"move,omitempty"`
	Piece  string       `json:"piece,omitempty"`
	Result string       `json:"result,omitempty"`
	Square chess.Square `json:"square"`
	Score  int          `json:"score,omitempty"`
	At     time.Time    `json:"at"`
}

// eventLog 同时充当规则层的 Listener，只在会话 goroutine 里被调用。
type eventLog struct {
	events []Event
}

func (l *eventLog) add(e Event) {
	e.Seq = len(l.events) + 1
	e.At = time.Now()
	l.events = append(l.events, e)
}

func (l *eventLog) since(seq int) []Event {
	if seq < 0 {
		seq = 0
	}
	if seq >= len(l.events) {
		return nil
	}
	return append([]Event(nil), l.events[seq:]...)
}

func (l *eventLog) OnTurnEnded(active chess.Team) {
	l.add(Event{Kind: EventTurn, Team: active.String()})
}

func (l *eventLog) OnGameFinished(v chess.Verdict) {
	e := Event{Kind: EventFinished, Result: v.Result.String()}
	if v.HasWinner {
		e.Team = v.Winner.String()
	}
	l.add(e)
}

func (l *eventLog) OnPieceCaptured(pc chess.Piece) {
	l.add(Event{Kind: EventCapture, Team: pc.Team.String(), Piece: pc.Kind.String(), Square: pc.Square})
}
