package engine

import (
	"context"
	"testing"

	"chessgame/internal/chess"
)

func TestBotCandidatesParallelMatchesSequential(t *testing.T) {
	b := mustBoard(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w")
	moves := chess.LegalMoveSet(b, chess.White)

	seq := NewBot(DefaultWeights(), Greedy{})
	par := NewBot(DefaultWeights(), Greedy{})
	par.Workers = 4

	a, err := seq.Candidates(context.Background(), b, moves)
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	p, err := par.Candidates(context.Background(), b, moves)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if len(a) != moves.Count() || len(a) != len(p) {
		t.Fatalf("candidate counts: seq=%d par=%d legal=%d", len(a), len(p), moves.Count())
	}
	for i := range a {
		if a[i] != p[i] {
			t.Fatalf("candidate %d differs: %+v vs %+v", i, a[i], p[i])
		}
	}
}

func TestBotChoosesOwnLegalTopMove(t *testing.T) {
	b := mustBoard(t, chess.StandardPlacement)
	moves := chess.LegalMoveSet(b, chess.Black)
	bot := NewBot(DefaultWeights(), NewTopK(3, 11))

	cands, err := bot.Candidates(context.Background(), b, moves)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	top := TopN(cands, 3)
	cutoff := top[len(top)-1].Score

	for i := 0; i < 50; i++ {
		c, ok, err := bot.Choose(context.Background(), b, moves)
		if err != nil || !ok {
			t.Fatalf("choose: ok=%v err=%v", ok, err)
		}
		pc, _ := b.Piece(c.Piece)
		if pc.Team != chess.Black || pc.Square != c.Move.From {
			t.Fatalf("bot picked a piece it does not own: %+v", c)
		}
		if !moves.Contains(c.Piece, c.Move.To) {
			t.Fatalf("bot picked an illegal move: %+v", c)
		}
		if c.Score < cutoff {
			t.Fatalf("bot picked %+v below the top-3 cutoff %d", c, cutoff)
		}
	}
}

func TestBotNoMoves(t *testing.T) {
	b := mustBoard(t, "7k/5Q2/6K1/8/8/8/8/8 b")
	bot := NewBot(DefaultWeights(), Greedy{})
	_, ok, err := bot.Choose(context.Background(), b, chess.LegalMoveSet(b, chess.Black))
	if err != nil || ok {
		t.Fatalf("stalemated side has nothing to choose: ok=%v err=%v", ok, err)
	}
}

func BenchmarkCandidates(b *testing.B) {
	layout, _, _ := chess.DecodePlacement(chess.StandardPlacement)
	board, _ := chess.NewBoardFromLayout(layout)
	moves := chess.LegalMoveSet(board, chess.White)
	bot := NewBot(DefaultWeights(), Greedy{})
	for i := 0; i < b.N; i++ {
		_, _ = bot.Candidates(context.Background(), board, moves)
	}
}

func TestScoreCacheReturnsSameScores(t *testing.T) {
	b := mustBoard(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w")
	moves := chess.LegalMoveSet(b, chess.White)

	plain := NewBot(DefaultWeights(), Greedy{})
	cached := NewBot(DefaultWeights(), Greedy{})
	cached.Cache = NewScoreCache()
	cached.Workers = 2

	want, err := plain.Candidates(context.Background(), b, moves)
	if err != nil {
		t.Fatalf("plain: %v", err)
	}
	for round := 0; round < 2; round++ {
		got, err := cached.Candidates(context.Background(), b, moves)
		if err != nil {
			t.Fatalf("cached: %v", err)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("round %d candidate %d: %+v vs %+v", round, i, got[i], want[i])
			}
		}
	}
	hits, misses := cached.Cache.Stats()
	if misses != int64(len(want)) || hits != int64(len(want)) {
		t.Fatalf("hits=%d misses=%d, want %d each", hits, misses, len(want))
	}
	if cached.Cache.Len() != len(want) {
		t.Fatalf("cache len = %d", cached.Cache.Len())
	}
}
