package chess

type Result int8

const (
	Ongoing Result = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	KingCaptured
)

func (r Result) String() string {
	switch r {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient_material"
	case KingCaptured:
		return "king_captured"
	}
	return "ongoing"
}

// Verdict 是一次终局判定的结果。四个条件各自独立计算，全部记录下来；
// Result 只是按固定顺序挑出来用于汇报的那一个。
type Verdict struct {
	Result    Result
	Winner    Team
	HasWinner bool

	Checkmate    bool
	Stalemate    bool
	Insufficient bool
	KingCaptured bool
}

func (v Verdict) Over() bool { return v.Result != Ongoing }

// Judge 判断 mover 刚走完之后的局面是否终局。
// moves 必须是两方针对当前局面重新生成的合法走法。
func Judge(b *Board, mover Team, moves map[Team]MoveSet) Verdict {
	defender := mover.Opponent()
	v := Verdict{
		Checkmate:    IsCheckmate(b, mover, moves[defender]),
		Stalemate:    IsStalemate(b, defender, moves[defender]),
		Insufficient: IsInsufficientMaterial(b),
	}
	loser, kingMissing := MissingKing(b)
	v.KingCaptured = kingMissing

	switch {
	case v.KingCaptured:
		v.Result = KingCaptured
		if _, ok := b.King(loser.Opponent()); ok {
			v.Winner, v.HasWinner = loser.Opponent(), true
		}
	case v.Checkmate:
		v.Result = Checkmate
		v.Winner, v.HasWinner = mover, true
	case v.Stalemate:
		v.Result = Stalemate
	case v.Insufficient:
		v.Result = InsufficientMaterial
	}
	return v
}

// IsCheckmate：attacker 方有子在攻击对方王，对方王无路可走，且没有友军能吃掉攻击者或挡住射线。
func IsCheckmate(b *Board, attacker Team, defenderMoves MoveSet) bool {
	defender := attacker.Opponent()
	king, ok := b.King(defender)
	if !ok {
		return false
	}
	checkers := Attackers(b, king.Square, defender)
	if len(checkers) == 0 {
		return false
	}
	if len(defenderMoves[king.ID]) > 0 {
		return false
	}
	return !CanHideKing(b, king, checkers, defenderMoves)
}

// CanHideKing 对每一个攻击者检查：是否存在友军走法吃掉它，或者（仅限滑子）落在它和王之间。
// 所有攻击者都能被化解才算能掩护。
func CanHideKing(b *Board, king Piece, checkers []PieceID, defenderMoves MoveSet) bool {
	for _, cid := range checkers {
		checker, _ := b.Piece(cid)
		var blocks []Square
		if checker.Kind.Slides() {
			blocks = rayBetween(checker.Square, king.Square)
		}
		if !anyAllyReaches(b, king, defenderMoves, checker.Square, blocks) {
			return false
		}
	}
	return true
}

func anyAllyReaches(b *Board, king Piece, defenderMoves MoveSet, capture Square, blocks []Square) bool {
	for id, dests := range defenderMoves {
		if id == king.ID {
			continue
		}
		if pc, ok := b.Piece(id); !ok || pc.Captured {
			continue
		}
		for _, to := range dests {
			if to == capture {
				return true
			}
			for _, sq := range blocks {
				if to == sq {
					return true
				}
			}
		}
	}
	return false
}

// IsStalemate：team 没有任何合法走法，且王没有被攻击。
func IsStalemate(b *Board, team Team, moves MoveSet) bool {
	if moves.Count() > 0 {
		return false
	}
	return !InCheck(b, team)
}

// IsInsufficientMaterial 只认三种和棋子力：王对王、王+单个轻子对王、
// 双方各王+象且两象同色格。异色象不算。
func IsInsufficientMaterial(b *Board) bool {
	if _, ok := b.King(White); !ok {
		return false
	}
	if _, ok := b.King(Black); !ok {
		return false
	}
	var minors [2][]Piece
	for _, pc := range b.Pieces() {
		switch pc.Kind {
		case King:
		case Bishop, Knight:
			minors[pc.Team] = append(minors[pc.Team], pc)
		default:
			return false
		}
	}
	w, k := len(minors[White]), len(minors[Black])
	switch {
	case w == 0 && k == 0:
		return true
	case w+k == 1:
		return true
	case w == 1 && k == 1:
		wb, bb := minors[White][0], minors[Black][0]
		return wb.Kind == Bishop && bb.Kind == Bishop && wb.Square.Light() == bb.Square.Light()
	}
	return false
}

// MissingKing 返回没有王的一方。
func MissingKing(b *Board) (Team, bool) {
	if _, ok := b.King(White); !ok {
		return White, true
	}
	if _, ok := b.King(Black); !ok {
		return Black, true
	}
	return White, false
}
