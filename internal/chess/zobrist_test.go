package chess

import "testing"

func TestHashSameFromLayoutAndFEN(t *testing.T) {
	std, err := NewBoardFromLayout(StandardLayout())
	if err != nil {
		t.Fatalf("standard: %v", err)
	}
	decoded, toMove := mustBoard(t, Encode(std, White))
	if Hash(std, White) != Hash(decoded, toMove) {
		t.Fatalf("hash mismatch between layout and decoded fen")
	}
	if Hash(std, White) == Hash(std, Black) {
		t.Fatalf("side to move must change the hash")
	}
}

func TestHashTranspositions(t *testing.T) {
	b, _ := mustBoard(t, StandardPlacement)
	start := Hash(b, White)
	toMove := White
	for _, s := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
		from, _ := ParseSquare(s[:2])
		to, _ := ParseSquare(s[2:])
		b.Apply(Move{From: from, To: to})
		toMove = toMove.Opponent()
		if s == "g1f3" && Hash(b, toMove) == start {
			t.Fatalf("hash unchanged after a move")
		}
	}
	if got := Hash(b, toMove); got != start {
		t.Fatalf("knights back home: hash %x, want %x", got, start)
	}
}
