package chess

// 兵：前进一格/起始两格（需为空），斜前方吃子；不生成吃过路兵
func genPawnMoves(b *Board, pc Piece, moves *[]Square) {
	dir := pawnDir(pc.Team)
	one := pc.Square.Add(0, dir)
	if one.Valid() && !b.Occupied(one) {
		*moves = append(*moves, one)
		two := one.Add(0, dir)
		if pc.Square.Y == pawnStartRank(pc.Team) && two.Valid() && !b.Occupied(two) {
			*moves = append(*moves, two)
		}
	}
	genPawnCaptures(b, pc, moves)
}

func genPawnCaptures(b *Board, pc Piece, moves *[]Square) {
	dir := pawnDir(pc.Team)
	for _, dx := range [2]int{-1, 1} {
		to := pc.Square.Add(dx, dir)
		if other, ok := b.At(to); ok && other.Team != pc.Team {
			*moves = append(*moves, to)
		}
	}
}

// 兵的攻击格：斜前方两格，不管上面有没有子
func pawnAttacks(pc Piece, sq Square) bool {
	dir := pawnDir(pc.Team)
	return sq.Y == pc.Square.Y+dir && abs(sq.X-pc.Square.X) == 1
}
