package chess

import "sync"

var (
	zobristOnce sync.Once

	zobristPieces [2][numKinds][NumSquares]uint64
	zobristSide   uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for team := 0; team < 2; team++ {
			for k := 0; k < numKinds; k++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[team][k][sq] = next()
				}
			}
		}
		zobristSide = next()
	})
}

// Hash 全量计算局面的 Zobrist 哈希。联机各端比较这个值确认局面一致。
func Hash(b *Board, toMove Team) uint64 {
	initZobrist()

	var h uint64
	for _, pc := range b.Pieces() {
		h ^= zobristPieces[pc.Team][pc.Kind][pc.Square.Index()]
	}
	if toMove == Black {
		h ^= zobristSide
	}
	return h
}
