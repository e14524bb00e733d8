package chess

import (
	"fmt"
	"unicode"
)

type Team int8

const (
	White Team = 0
	Black Team = 1
)

func (t Team) Opponent() Team {
	if t == White {
		return Black
	}
	return White
}

func (t Team) String() string {
	if t == White {
		return "white"
	}
	return "black"
}

type PieceKind int8

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King

	numKinds = 6
)

// 子力价值：按 PieceKind 下标取，不按类型查表
var kindValues = [numKinds]int{
	Pawn:   100,
	Knight: 320,
	Bishop: 330,
	Rook:   500,
	Queen:  900,
	King:   20000,
}

var kindNames = [numKinds]string{"pawn", "knight", "bishop", "rook", "queen", "king"}

func (k PieceKind) Value() int {
	if !k.Valid() {
		return 0
	}
	return kindValues[k]
}

func (k PieceKind) Valid() bool { return k >= Pawn && k <= King }

func (k PieceKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int8(k))
	}
	return kindNames[k]
}

// Sliding pieces cast rays; an attack from one of them can be blocked.
func (k PieceKind) Slides() bool { return k == Bishop || k == Rook || k == Queen }

// ParseKind maps a name ("knight") or a FEN letter ('n'/'N') to a PieceKind.
func ParseKind(s string) (PieceKind, error) {
	for i, name := range kindNames {
		if name == s {
			return PieceKind(i), nil
		}
	}
	if len(s) == 1 {
		if k, ok := letterToKind[unicode.ToLower(rune(s[0]))]; ok {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPieceType, s)
}

type Square struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func Sq(x, y int) Square { return Square{X: x, Y: y} }

func (s Square) Valid() bool { return s.X >= 0 && s.X < Size && s.Y >= 0 && s.Y < Size }

func (s Square) Index() int { return s.Y*Size + s.X }

func (s Square) Add(dx, dy int) Square { return Square{X: s.X + dx, Y: s.Y + dy} }

// Light reports the colour of the square; bishops on squares of equal parity share a colour.
func (s Square) Light() bool { return (s.X+s.Y)%2 == 1 }

func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.X, s.Y)
	}
	return string([]byte{byte('a' + s.X), byte('1' + s.Y)})
}

// ParseSquare reads algebraic notation such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrOffBoard, s)
	}
	sq := Square{X: int(s[0] - 'a'), Y: int(s[1] - '1')}
	if !sq.Valid() {
		return Square{}, fmt.Errorf("%w: %q", ErrOffBoard, s)
	}
	return sq, nil
}

func squareAt(idx int) Square { return Square{X: idx % Size, Y: idx / Size} }

type PieceID int8

const NoPiece PieceID = 0

type Piece struct {
	ID       PieceID   `json:"id"`
	Kind     PieceKind `json:"kind"`
	Team     Team      `json:"team"`
	Square   Square    `json:"square"`
	Captured bool      `json:"captured"`
}

// Move 只记录起点终点；兵到底线自动升变为后
type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func (m Move) String() string { return m.From.String() + m.To.String() }

// Placement is one entry of a starting layout.
type Placement struct {
	Square Square
	Team   Team
	Kind   PieceKind
}
