package chess

// PseudoMoves 生成一枚棋子的伪合法落点（不考虑己方王是否被将）。
// 已被吃掉或不存在的棋子返回 nil。
func PseudoMoves(b *Board, id PieceID) []Square {
	pc, ok := b.Piece(id)
	if !ok || pc.Captured {
		return nil
	}
	var moves []Square
	genPieceMoves(b, pc, &moves)
	return moves
}

func genPieceMoves(b *Board, pc Piece, moves *[]Square) {
	switch pc.Kind {
	case Pawn:
		genPawnMoves(b, pc, moves)
	case Knight:
		genKnightMoves(b, pc, moves)
	case Bishop:
		genBishopMoves(b, pc, moves)
	case Rook:
		genRookMoves(b, pc, moves)
	case Queen:
		genQueenMoves(b, pc, moves)
	case King:
		genKingMoves(b, pc, moves)
	}
}

// LegalMoves 生成合法落点：伪合法走法里去掉会让己方王被攻击的。
func LegalMoves(b *Board, id PieceID) []Square {
	return RemoveMovesExposing(b, id, PseudoMoves(b, id), King)
}

// RemoveMovesExposing 在草稿棋盘上模拟每一步，去掉走完后己方 guarded 类棋子被攻击的落点。
// 目前只用 King 调用；其它类型留作扩展点，语义是“该类棋子任意一枚被攻击即非法”。
func RemoveMovesExposing(b *Board, id PieceID, moves []Square, guarded PieceKind) []Square {
	pc, ok := b.Piece(id)
	if !ok || pc.Captured || len(moves) == 0 {
		return nil
	}
	out := make([]Square, 0, len(moves))
	for _, to := range moves {
		scratch := *b
		scratch.Apply(Move{From: pc.Square, To: to})
		if !guardedUnderAttack(&scratch, pc.Team, guarded) {
			out = append(out, to)
		}
	}
	return out
}

func guardedUnderAttack(b *Board, team Team, guarded PieceKind) bool {
	for _, pc := range b.PiecesOf(team) {
		if pc.Kind == guarded && IsSquareUnderAttack(b, pc.Square, team) {
			return true
		}
	}
	return false
}

// MoveSet 是一方每枚棋子的合法落点缓存。
type MoveSet map[PieceID][]Square

// Count 返回总走法数。
func (ms MoveSet) Count() int {
	n := 0
	for _, dests := range ms {
		n += len(dests)
	}
	return n
}

func (ms MoveSet) Contains(id PieceID, to Square) bool {
	for _, sq := range ms[id] {
		if sq == to {
			return true
		}
	}
	return false
}

// LegalMoveSet 计算 team 所有在场棋子的合法落点。
func LegalMoveSet(b *Board, team Team) MoveSet {
	ms := make(MoveSet)
	for _, pc := range b.PiecesOf(team) {
		ms[pc.ID] = LegalMoves(b, pc.ID)
	}
	return ms
}

// Moves 按棋子 ID 升序展开成 Move 列表，顺序确定。
func (ms MoveSet) Moves(b *Board) []Move {
	var out []Move
	for id := PieceID(1); int(id) <= b.n; id++ {
		dests, ok := ms[id]
		if !ok {
			continue
		}
		pc := b.pieces[id-1]
		for _, to := range dests {
			out = append(out, Move{From: pc.Square, To: to})
		}
	}
	return out
}
