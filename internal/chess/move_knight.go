package chess

var (
	knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = queenDirs
)

func genKnightMoves(b *Board, pc Piece, moves *[]Square) { genOffsets(b, pc, knightOffsets[:], moves) }

// 王：周围一格（不生成王车易位）
func genKingMoves(b *Board, pc Piece, moves *[]Square) { genOffsets(b, pc, kingOffsets[:], moves) }
