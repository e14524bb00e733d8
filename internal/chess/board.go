package chess

import "fmt"

const (
	Size       = 8
	NumSquares = Size * Size

	maxPieces = NumSquares
)

// Board 是格子→棋子的唯一真相来源。
// 棋子记录放在 arena 里，用稳定的 PieceID 引用；被吃只标记 Captured，不销毁记录。
// Board 是值类型：b2 := *b 就是一份独立的草稿棋盘。
type Board struct {
	squares [NumSquares]PieceID
	pieces  [maxPieces]Piece
	n       int
}

func NewBoard() *Board { return &Board{} }

// NewBoardFromLayout 按顺序摆放 layout 里的每个棋子。
func NewBoardFromLayout(layout []Placement) (*Board, error) {
	b := NewBoard()
	for i, pl := range layout {
		if _, err := b.Place(pl.Kind, pl.Team, pl.Square); err != nil {
			return nil, fmt.Errorf("layout entry %d: %w", i, err)
		}
	}
	return b, nil
}

func (b *Board) Place(kind PieceKind, team Team, sq Square) (PieceID, error) {
	if !kind.Valid() {
		return NoPiece, fmt.Errorf("%w: %d", ErrUnknownPieceType, int8(kind))
	}
	if team != White && team != Black {
		return NoPiece, fmt.Errorf("%w: team %d", ErrInvalidLayout, int8(team))
	}
	if !sq.Valid() {
		return NoPiece, fmt.Errorf("%w: %v", ErrOffBoard, sq)
	}
	if b.squares[sq.Index()] != NoPiece {
		return NoPiece, fmt.Errorf("%w: %v", ErrOccupied, sq)
	}
	if b.n >= maxPieces {
		return NoPiece, fmt.Errorf("%w: board full", ErrInvalidLayout)
	}
	id := PieceID(b.n + 1)
	b.pieces[b.n] = Piece{ID: id, Kind: kind, Team: team, Square: sq}
	b.n++
	b.squares[sq.Index()] = id
	return id, nil
}

// At 返回 sq 上的棋子；越界或空格返回 false。
func (b *Board) At(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	id := b.squares[sq.Index()]
	if id == NoPiece {
		return Piece{}, false
	}
	return b.pieces[id-1], true
}

func (b *Board) Occupied(sq Square) bool {
	return sq.Valid() && b.squares[sq.Index()] != NoPiece
}

// Piece 按 ID 取记录（包括已被吃掉的）。
func (b *Board) Piece(id PieceID) (Piece, bool) {
	if id <= NoPiece || int(id) > b.n {
		return Piece{}, false
	}
	return b.pieces[id-1], true
}

func (b *Board) mustPiece(id PieceID) *Piece {
	if id <= NoPiece || int(id) > b.n {
		panic(fmt.Sprintf("chess: piece id %d out of range (arena holds %d)", id, b.n))
	}
	return &b.pieces[id-1]
}

// Remove 把棋子从棋盘上拿掉并标记为已吃。
func (b *Board) Remove(id PieceID) {
	pc := b.mustPiece(id)
	if pc.Captured {
		panic(fmt.Sprintf("chess: piece %d removed twice", id))
	}
	if b.squares[pc.Square.Index()] != id {
		panic(fmt.Sprintf("chess: piece %d not found on %v", id, pc.Square))
	}
	b.squares[pc.Square.Index()] = NoPiece
	pc.Captured = true
}

func (b *Board) restore(id PieceID) {
	pc := b.mustPiece(id)
	if b.squares[pc.Square.Index()] != NoPiece {
		panic(fmt.Sprintf("chess: cannot restore piece %d, %v is occupied", id, pc.Square))
	}
	pc.Captured = false
	b.squares[pc.Square.Index()] = id
}

func (b *Board) relocate(id PieceID, to Square) {
	pc := b.mustPiece(id)
	if b.squares[to.Index()] != NoPiece {
		panic(fmt.Sprintf("chess: relocating piece %d onto occupied %v", id, to))
	}
	b.squares[pc.Square.Index()] = NoPiece
	pc.Square = to
	b.squares[to.Index()] = id
}

// Pieces 返回场上所有棋子，按 ID 升序。
func (b *Board) Pieces() []Piece {
	out := make([]Piece, 0, b.n)
	for i := 0; i < b.n; i++ {
		if !b.pieces[i].Captured {
			out = append(out, b.pieces[i])
		}
	}
	return out
}

func (b *Board) PiecesOf(team Team) []Piece {
	out := make([]Piece, 0, b.n/2)
	for i := 0; i < b.n; i++ {
		if pc := b.pieces[i]; !pc.Captured && pc.Team == team {
			out = append(out, pc)
		}
	}
	return out
}

// Count 返回场上棋子总数。
func (b *Board) Count() int {
	c := 0
	for i := 0; i < b.n; i++ {
		if !b.pieces[i].Captured {
			c++
		}
	}
	return c
}

func (b *Board) King(team Team) (Piece, bool) {
	for i := 0; i < b.n; i++ {
		if pc := b.pieces[i]; !pc.Captured && pc.Team == team && pc.Kind == King {
			return pc, true
		}
	}
	return Piece{}, false
}

// Undo 记录一次走子，用于 Revert。
type Undo struct {
	Move     Move
	Mover    PieceID
	Captured PieceID
	Promoted bool
}

// Apply 执行走子：移除终点上的敌子、移动棋子、兵到底线升变为后。
// 合法性由上层保证；起点无子属于程序错误。
func (b *Board) Apply(m Move) Undo {
	if !m.From.Valid() || !m.To.Valid() {
		panic(fmt.Sprintf("chess: move %v leaves the board", m))
	}
	id := b.squares[m.From.Index()]
	if id == NoPiece {
		panic(fmt.Sprintf("chess: no piece found at %v for move %v", m.From, m))
	}
	u := Undo{Move: m, Mover: id}
	if target := b.squares[m.To.Index()]; target != NoPiece {
		if b.pieces[target-1].Team == b.pieces[id-1].Team {
			panic(fmt.Sprintf("chess: move %v captures own piece", m))
		}
		b.Remove(target)
		u.Captured = target
	}
	b.relocate(id, m.To)
	pc := &b.pieces[id-1]
	if pc.Kind == Pawn && m.To.Y == promotionRank(pc.Team) {
		pc.Kind = Queen
		u.Promoted = true
	}
	return u
}

// Revert 撤销 Apply，棋盘恢复到走子前的逐字节状态。
func (b *Board) Revert(u Undo) {
	pc := b.mustPiece(u.Mover)
	if pc.Square != u.Move.To || b.squares[u.Move.To.Index()] != u.Mover {
		panic(fmt.Sprintf("chess: revert %v but piece %d is on %v", u.Move, u.Mover, pc.Square))
	}
	if u.Promoted {
		pc.Kind = Pawn
	}
	b.relocate(u.Mover, u.Move.From)
	if u.Captured != NoPiece {
		b.restore(u.Captured)
	}
}

func promotionRank(team Team) int {
	if team == White {
		return Size - 1
	}
	return 0
}

func pawnStartRank(team Team) int {
	if team == White {
		return 1
	}
	return Size - 2
}

// 兵的前进方向：白向上(+1)，黑向下(-1)
func pawnDir(team Team) int {
	if team == White {
		return 1
	}
	return -1
}
