package chess

type Phase int8

const (
	Early Phase = iota
	Endgame
)

// 场上棋子数不超过这个数就算残局
const EndgamePieceCount = 10

func (p Phase) String() string {
	if p == Endgame {
		return "endgame"
	}
	return "early"
}

// PhaseOf 每次按当前棋盘实时计算，不缓存。
func PhaseOf(b *Board) Phase {
	if IsEndgame(b) {
		return Endgame
	}
	return Early
}

func IsEndgame(b *Board) bool { return b.Count() <= EndgamePieceCount }
