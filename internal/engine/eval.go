package engine

import "chessgame/internal/chess"

// ======= 位置分表 =======
// 以走子方视角书写：第 0 行是对方底线，第 7 行是己方底线；列是 a..h。

var pawnTable = [8][8]int{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{50, 50, 50, 50, 50, 50, 50, 50},
	{10, 10, 20, 30, 30, 20, 10, 10},
	{5, 5, 10, 25, 25, 10, 5, 5},
	{0, 0, 0, 20, 20, 0, 0, 0},
	{5, -5, -10, 0, 0, -10, -5, 5},
	{5, 10, 10, -20, -20, 10, 10, 5},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

var knightTable = [8][8]int{
	{-50, -40, -30, -30, -30, -30, -40, -50},
	{-40, -20, 0, 0, 0, 0, -20, -40},
	{-30, 0, 10, 15, 15, 10, 0, -30},
	{-30, 5, 15, 20, 20, 15, 5, -30},
	{-30, 0, 15, 20, 20, 15, 0, -30},
	{-30, 5, 10, 15, 15, 10, 5, -30},
	{-40, -20, 0, 5, 5, 0, -20, -40},
	{-50, -40, -30, -30, -30, -30, -40, -50},
}

var bishopTable = [8][8]int{
	{-20, -10, -10, -10, -10, -10, -10, -20},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-10, 0, 5, 10, 10, 5, 0, -10},
	{-10, 5, 5, 10, 10, 5, 5, -10},
	{-10, 0, 10, 10, 10, 10, 0, -10},
	{-10, 10, 10, 10, 10, 10, 10, -10},
	{-10, 5, 0, 0, 0, 0, 5, -10},
	{-20, -10, -10, -10, -10, -10, -10, -20},
}

var rookTable = [8][8]int{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{5, 10, 10, 10, 10, 10, 10, 5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{-5, 0, 0, 0, 0, 0, 0, -5},
	{0, 0, 0, 5, 5, 0, 0, 0},
}

var queenTable = [8][8]int{
	{-20, -10, -10, -5, -5, -10, -10, -20},
	{-10, 0, 0, 0, 0, 0, 0, -10},
	{-10, 0, 5, 5, 5, 5, 0, -10},
	{-5, 0, 5, 5, 5, 5, 0, -5},
	{0, 0, 5, 5, 5, 5, 0, -5},
	{-10, 5, 5, 5, 5, 5, 0, -10},
	{-10, 0, 5, 0, 0, 0, 0, -10},
	{-20, -10, -10, -5, -5, -10, -10, -20},
}

var kingEarlyTable = [8][8]int{
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-30, -40, -40, -50, -50, -40, -40, -30},
	{-20, -30, -30, -40, -40, -30, -30, -20},
	{-10, -20, -20, -20, -20, -20, -20, -10},
	{20, 20, 0, 0, 0, 0, 20, 20},
	{20, 30, 10, 0, 0, 10, 30, 20},
}

var kingEndgameTable = [8][8]int{
	{-50, -40, -30, -20, -20, -30, -40, -50},
	{-30, -20, -10, 0, 0, -10, -20, -30},
	{-30, -10, 20, 30, 30, 20, -10, -30},
	{-30, -10, 30, 40, 40, 30, -10, -30},
	{-30, -10, 30, 40, 40, 30, -10, -30},
	{-30, -10, 20, 30, 30, 20, -10, -30},
	{-30, -30, 0, 0, 0, 0, -30, -30},
	{-50, -30, -30, -30, -30, -30, -30, -50},
}

// 按 PieceKind 下标；王另有残局表
var positionTables = [...]*[8][8]int{
	chess.Pawn:   &pawnTable,
	chess.Knight: &knightTable,
	chess.Bishop: &bishopTable,
	chess.Rook:   &rookTable,
	chess.Queen:  &queenTable,
	chess.King:   &kingEarlyTable,
}

// PositionalBonus 返回 kind 落在 sq 上的位置分（team 视角）。
func PositionalBonus(kind chess.PieceKind, team chess.Team, sq chess.Square, phase chess.Phase) int {
	if !kind.Valid() || !sq.Valid() {
		return 0
	}
	table := positionTables[kind]
	if kind == chess.King && phase == chess.Endgame {
		table = &kingEndgameTable
	}
	rank := sq.Y
	if team == chess.Black {
		rank = chess.Size - 1 - sq.Y
	}
	return table[chess.Size-1-rank][sq.X]
}

// Evaluate 给“id 这枚棋子走到 dest”打分。纯函数：不修改 b，同样输入同样输出。
// 顺序：自身价值 → 吃子 → 位置分 → 中心 → 被攻击扣分 → 友军保护 → 靠近己方王。
func Evaluate(b *chess.Board, id chess.PieceID, dest chess.Square, phase chess.Phase, w Weights) int {
	pc, ok := b.Piece(id)
	if !ok || pc.Captured || !dest.Valid() {
		return 0
	}
	own := pc.Kind.Value()
	score := own

	if target, ok := b.At(dest); ok && target.Team != pc.Team {
		victim := target.Kind.Value()
		score += victim * w.CaptureMultiplier
		if victim > own {
			score += w.TradeUpBonus
		}
	}

	score += PositionalBonus(pc.Kind, pc.Team, dest, phase)

	if inBox(dest, 2, 5) {
		score += w.CenterBonus
		if inBox(dest, 3, 4) {
			score += w.InnerCenterBonus
		}
	}

	scratch := *b
	scratch.Apply(chess.Move{From: pc.Square, To: dest})

	if w.AttackedPenaltyDiv > 0 && chess.IsSquareUnderAttack(&scratch, dest, pc.Team) {
		score -= own / w.AttackedPenaltyDiv
	}

	if hasNeighbour(&scratch, dest, func(n chess.Piece) bool { return n.Team == pc.Team }) {
		score += w.ProtectionBonus
	}

	if w.KingProximityBonus != 0 && pc.Kind != chess.King {
		if hasNeighbour(&scratch, dest, func(n chess.Piece) bool { return n.Team == pc.Team && n.Kind == chess.King }) {
			score += w.KingProximityBonus
		}
	}

	return score
}

func inBox(sq chess.Square, lo, hi int) bool {
	return sq.X >= lo && sq.X <= hi && sq.Y >= lo && sq.Y <= hi
}

func hasNeighbour(b *chess.Board, sq chess.Square, match func(chess.Piece) bool) bool {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if n, ok := b.At(sq.Add(dx, dy)); ok && match(n) {
				return true
			}
		}
	}
	return false
}
