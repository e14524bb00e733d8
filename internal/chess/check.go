package chess

// IsSquareUnderAttack 判断 sq 是否被 team 的对手攻击。
// 采用走法模拟：对方任何一枚棋子的伪合法落点包含 sq 即算被攻击。
// 兵例外：只有斜前方算攻击，前进的格子不算，空格也一样。
func IsSquareUnderAttack(b *Board, sq Square, team Team) bool {
	return len(attackers(b, sq, team, true)) > 0
}

// Attackers 返回所有攻击 sq 的对方棋子，按 ID 升序。
func Attackers(b *Board, sq Square, team Team) []PieceID {
	return attackers(b, sq, team, false)
}

func attackers(b *Board, sq Square, team Team, first bool) []PieceID {
	var out []PieceID
	var moves []Square
	for i := 0; i < b.n; i++ {
		pc := b.pieces[i]
		if pc.Captured || pc.Team == team {
			continue
		}
		hit := false
		if pc.Kind == Pawn {
			other, occupied := b.At(sq)
			hit = pawnAttacks(pc, sq) && !(occupied && other.Team == pc.Team)
		} else {
			moves = moves[:0]
			genPieceMoves(b, pc, &moves)
			for _, to := range moves {
				if to == sq {
					hit = true
					break
				}
			}
		}
		if hit {
			out = append(out, pc.ID)
			if first {
				return out
			}
		}
	}
	return out
}

// InCheck 判断 team 的王是否被攻击；没有王时返回 false。
func InCheck(b *Board, team Team) bool {
	king, ok := b.King(team)
	if !ok {
		return false
	}
	return IsSquareUnderAttack(b, king.Square, team)
}
