package game

import (
	"sort"

	"chessgame/internal/chess"
)

// Player 持有一方在场的棋子、被吃掉的棋子，以及每枚棋子的合法落点缓存。
// 缓存在每一手开始时整体重算，跨越棋盘修改后不能再读旧值。
type Player struct {
	Team chess.Team

	pieces  []chess.PieceID
	removed []chess.PieceID
	legal   chess.MoveSet
}

func newPlayer(team chess.Team) *Player {
	return &Player{Team: team, legal: make(chess.MoveSet)}
}

func (p *Player) Pieces() []chess.PieceID  { return append([]chess.PieceID(nil), p.pieces...) }
func (p *Player) Removed() []chess.PieceID { return append([]chess.PieceID(nil), p.removed...) }

// LegalMoves 返回缓存的合法落点。
func (p *Player) LegalMoves(id chess.PieceID) []chess.Square {
	return append([]chess.Square(nil), p.legal[id]...)
}

func (p *Player) MoveCount() int { return p.legal.Count() }

func (p *Player) addPiece(id chess.PieceID) {
	p.pieces = append(p.pieces, id)
}

func (p *Player) generate(b *chess.Board) {
	p.legal = make(chess.MoveSet, len(p.pieces))
	for _, id := range p.pieces {
		p.legal[id] = chess.LegalMoves(b, id)
	}
}

// capture 把棋子从在场列表移到被吃列表。
func (p *Player) capture(id chess.PieceID) {
	for i, pid := range p.pieces {
		if pid == id {
			p.pieces = append(p.pieces[:i], p.pieces[i+1:]...)
			p.removed = append(p.removed, id)
			delete(p.legal, id)
			return
		}
	}
	panic("game: captured piece is not owned by its team")
}

// uncapture 撤销最近一次 capture，按 ID 顺序放回在场列表。
func (p *Player) uncapture(id chess.PieceID) {
	n := len(p.removed)
	if n == 0 || p.removed[n-1] != id {
		panic("game: undo restores a piece that was not the last one removed")
	}
	p.removed = p.removed[:n-1]
	i := sort.Search(len(p.pieces), func(i int) bool { return p.pieces[i] > id })
	p.pieces = append(p.pieces, 0)
	copy(p.pieces[i+1:], p.pieces[i:])
	p.pieces[i] = id
}
