package chess

import "testing"

func judge(t *testing.T, fen string, mover Team) Verdict {
	t.Helper()
	b, _ := mustBoard(t, fen)
	moves := map[Team]MoveSet{
		mover:            LegalMoveSet(b, mover),
		mover.Opponent(): LegalMoveSet(b, mover.Opponent()),
	}
	return Judge(b, mover, moves)
}

func TestBackRankMate(t *testing.T) {
	v := judge(t, "3Q2k1/5ppp/8/8/8/8/8/6K1 b", White)
	if !v.Checkmate || v.Stalemate {
		t.Fatalf("expected checkmate only, got %+v", v)
	}
	if v.Result != Checkmate || !v.HasWinner || v.Winner != White {
		t.Fatalf("white should win by checkmate, got %+v", v)
	}
}

func TestCheckButBlockable(t *testing.T) {
	// b8 黑车可以吃掉 d8 将军的后
	v := judge(t, "1r1Q2k1/5ppp/8/8/8/8/8/6K1 b", White)
	if v.Checkmate {
		t.Fatalf("rook can capture the checking queen, got %+v", v)
	}
	// a8 后沿底线将军，e7 黑车走到 e8 挡住射线
	v = judge(t, "Q5k1/4rppp/8/8/8/8/8/6K1 b", White)
	if v.Checkmate {
		t.Fatalf("rook on e7 can interpose on e8, got %+v", v)
	}
}

func TestKnightCheckCannotBeBlocked(t *testing.T) {
	// 闷杀：h8 王被 g8 车、g7 h7 兵围住，f7 马将军
	v := judge(t, "6rk/5Npp/8/8/8/8/8/6K1 b", White)
	if !v.Checkmate {
		t.Fatalf("smothered mate expected, got %+v", v)
	}
}

func TestStalemate(t *testing.T) {
	v := judge(t, "7k/5Q2/6K1/8/8/8/8/8 b", White)
	if !v.Stalemate || v.Checkmate {
		t.Fatalf("expected stalemate only, got %+v", v)
	}
	if v.Result != Stalemate || v.HasWinner {
		t.Fatalf("stalemate has no winner, got %+v", v)
	}
}

func TestInsufficientMaterial(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		draw bool
	}{
		{"king vs king", "4k3/8/8/8/8/8/8/4K3 w", true},
		{"king bishop vs king", "4k3/8/8/8/8/8/8/2B1K3 w", true},
		{"king knight vs king", "4k3/8/8/8/8/8/8/1N2K3 w", true},
		{"bishops same colour", "4kb2/8/8/8/8/8/8/2B1K3 w", true},
		{"bishops opposite colour", "2b1k3/8/8/8/8/8/8/2B1K3 w", false},
		{"king knight vs king knight", "4kn2/8/8/8/8/8/8/1N2K3 w", false},
		{"king two knights vs king", "4k3/8/8/8/8/8/8/1N2K1N1 w", false},
		{"king pawn vs king", "4k3/8/8/8/8/8/4P3/4K3 w", false},
		{"king rook vs king", "4k3/8/8/8/8/8/8/R3K3 w", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, _ := mustBoard(t, tc.fen)
			if got := IsInsufficientMaterial(b); got != tc.draw {
				t.Fatalf("IsInsufficientMaterial = %v, want %v", got, tc.draw)
			}
		})
	}
}

func TestInsufficientMaterialVerdict(t *testing.T) {
	v := judge(t, "4k3/8/8/8/8/8/8/2B1K3 b", White)
	if v.Result != InsufficientMaterial || v.HasWinner {
		t.Fatalf("expected drawn verdict, got %+v", v)
	}
}

func TestKingCaptured(t *testing.T) {
	v := judge(t, "8/8/8/8/8/8/8/Q3K3 b", White)
	if !v.KingCaptured || v.Result != KingCaptured {
		t.Fatalf("missing black king should end the game, got %+v", v)
	}
	if !v.HasWinner || v.Winner != White {
		t.Fatalf("white should win, got %+v", v)
	}
}

func TestOngoing(t *testing.T) {
	v := judge(t, StandardPlacement, White)
	if v.Over() {
		t.Fatalf("start position is not terminal, got %+v", v)
	}
}

func TestAttackersAndInCheck(t *testing.T) {
	b, _ := mustBoard(t, "4k3/8/8/8/8/5n2/8/R3K3 w")
	if !InCheck(b, White) {
		t.Fatalf("knight f3 should check the king on e1")
	}
	got := Attackers(b, Sq(4, 0), White)
	knight, _ := b.At(Sq(5, 2))
	if len(got) != 1 || got[0] != knight.ID {
		t.Fatalf("attackers of e1 = %v, want [%d]", got, knight.ID)
	}
	if InCheck(b, Black) {
		t.Fatalf("black king is not attacked")
	}
}
