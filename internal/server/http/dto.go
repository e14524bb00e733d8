package httpserver

import (
	"encoding/json"
	"fmt"

	"chessgame/internal/chess"
	sgame "chessgame/internal/server/game"
)

// NewGameRequest 新建对局；所有字段都可省略，取服务器默认值。
type NewGameRequest struct {
	Bots    []string        `json:"bots"`             // "white" / "black"；null 取默认，[] 表示人人对弈
	Policy  string          `json:"policy,omitempty"` // "greedy" / "topk"
	K       int             `json:"k,omitempty"`
	Seed    *int64          `json:"seed,omitempty"`
	DelayMs *int64          `json:"delay_ms,omitempty"`
	Preset  string          `json:"preset,omitempty"`  // 评分参数预设名
	Weights json.RawMessage `json:"weights,omitempty"` // 叠加在 Preset 之上，没写的字段不变
	FEN     string          `json:"fen,omitempty"`     // 自定义开局
}

type NewGameResponse struct {
	GameID string        `json:"game_id"`
	State  StateResponse `json:"state"`
}

// 前端用的招法结构，格子用代数记法（"e2"）
type MoveDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (m MoveDTO) toMove() (chess.Move, error) {
	from, err := chess.ParseSquare(m.From)
	if err != nil {
		return chess.Move{}, err
	}
	to, err := chess.ParseSquare(m.To)
	if err != nil {
		return chess.Move{}, err
	}
	return chess.Move{From: from, To: to}, nil
}

func moveToDTO(m chess.Move) MoveDTO {
	return MoveDTO{From: m.From.String(), To: m.To.String()}
}

func movesToDTO(ms []chess.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

type GameRequest struct {
	GameID string `json:"game_id"`
}

// SelectRequest 选中一枚棋子
type SelectRequest struct {
	GameID string `json:"game_id"`
	Square string `json:"square"`
}

type SelectResponse struct {
	Square  string   `json:"square"`
	Targets []string `json:"targets"` // 该棋子的合法落点
}

// PlayRequest 二选一：给 Move 一次走完，或只给 To 走之前选中的棋子
type PlayRequest struct {
	GameID string   `json:"game_id"`
	Move   *MoveDTO `json:"move,omitempty"`
	To     string   `json:"to,omitempty"`
}

type StateRequest struct {
	GameID string `json:"game_id"`
	Since  int    `json:"since"` // 只返回序号大于它的事件
}

type StateResponse struct {
	Position   string        `json:"position"` // FEN 摆子段 + 走子方
	ToMove     string        `json:"to_move"`
	Status     string        `json:"status"` // "ongoing" 或终局原因
	Winner     string        `json:"winner,omitempty"`
	Selected   string        `json:"selected,omitempty"`
	LegalMoves []MoveDTO     `json:"legal_moves"`
	History    []MoveDTO     `json:"history"`
	Captured   CapturedDTO   `json:"captured"`
	Hash       string        `json:"hash"`
	Events     []sgame.Event `json:"events"`
}

type CapturedDTO struct {
	White []string `json:"white"`
	Black []string `json:"black"`
}

type BotMoveResponse struct {
	Move  MoveDTO       `json:"move"`
	Score int           `json:"score"`
	State StateResponse `json:"state"`
}

type GamesResponse struct {
	Games []string `json:"games"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func viewToDTO(v sgame.View) StateResponse {
	resp := StateResponse{
		Position:   v.FEN,
		ToMove:     v.Active.String(),
		Status:     v.Verdict.Result.String(),
		LegalMoves: movesToDTO(v.LegalMoves),
		History:    movesToDTO(v.History),
		Hash:       fmt.Sprintf("%016x", v.Hash),
		Events:     v.Events,
	}
	if v.Verdict.HasWinner {
		resp.Winner = v.Verdict.Winner.String()
	}
	if v.Selected != nil {
		resp.Selected = v.Selected.String()
	}
	resp.Captured.White = kindNames(v.Captured[chess.White])
	resp.Captured.Black = kindNames(v.Captured[chess.Black])
	if resp.Events == nil {
		resp.Events = []sgame.Event{}
	}
	return resp
}

func kindNames(ks []chess.PieceKind) []string {
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = k.String()
	}
	return out
}
