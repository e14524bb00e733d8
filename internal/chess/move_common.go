package chess

var (
	rookDirs   = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// 射线：直到棋盘边缘或第一个有子的格；敌子可吃，己子不可落
func genRays(b *Board, pc Piece, dirs [][2]int, moves *[]Square) {
	for _, d := range dirs {
		to := pc.Square.Add(d[0], d[1])
		for to.Valid() {
			other, ok := b.At(to)
			if !ok {
				*moves = append(*moves, to)
				to = to.Add(d[0], d[1])
				continue
			}
			if other.Team != pc.Team {
				*moves = append(*moves, to)
			}
			break
		}
	}
}

func genRookMoves(b *Board, pc Piece, moves *[]Square)   { genRays(b, pc, rookDirs[:], moves) }
func genBishopMoves(b *Board, pc Piece, moves *[]Square) { genRays(b, pc, bishopDirs[:], moves) }
func genQueenMoves(b *Board, pc Piece, moves *[]Square)  { genRays(b, pc, queenDirs[:], moves) }

// 固定偏移：过滤掉棋盘外和己方占据的格
func genOffsets(b *Board, pc Piece, offsets [][2]int, moves *[]Square) {
	for _, d := range offsets {
		to := pc.Square.Add(d[0], d[1])
		if !to.Valid() {
			continue
		}
		if other, ok := b.At(to); ok && other.Team == pc.Team {
			continue
		}
		*moves = append(*moves, to)
	}
}

// rayBetween 返回 from 与 to 之间（不含两端）的格子；两点不在同一直线/斜线上返回 nil。
func rayBetween(from, to Square) []Square {
	dx, dy := sign(to.X-from.X), sign(to.Y-from.Y)
	if dx == 0 && dy == 0 {
		return nil
	}
	adx, ady := abs(to.X-from.X), abs(to.Y-from.Y)
	if dx != 0 && dy != 0 && adx != ady {
		return nil
	}
	var out []Square
	for sq := from.Add(dx, dy); sq != to; sq = sq.Add(dx, dy) {
		out = append(out, sq)
	}
	return out
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
