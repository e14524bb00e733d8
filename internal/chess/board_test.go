package chess

import (
	"errors"
	"math/rand"
	"testing"
)

func mustBoard(t *testing.T, fen string) (*Board, Team) {
	t.Helper()
	layout, toMove, err := DecodePlacement(fen)
	if err != nil {
		t.Fatalf("decode %q: %v", fen, err)
	}
	b, err := NewBoardFromLayout(layout)
	if err != nil {
		t.Fatalf("layout %q: %v", fen, err)
	}
	return b, toMove
}

func TestPlaceRejectsBadInput(t *testing.T) {
	b := NewBoard()
	if _, err := b.Place(King, White, Sq(4, 0)); err != nil {
		t.Fatalf("place king: %v", err)
	}
	if _, err := b.Place(Queen, Black, Sq(4, 0)); !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected ErrOccupied, got %v", err)
	}
	if _, err := b.Place(Queen, Black, Sq(8, 0)); !errors.Is(err, ErrOffBoard) {
		t.Fatalf("expected ErrOffBoard, got %v", err)
	}
	if _, err := b.Place(PieceKind(9), Black, Sq(0, 0)); !errors.Is(err, ErrUnknownPieceType) {
		t.Fatalf("expected ErrUnknownPieceType, got %v", err)
	}
	if b.Count() != 1 {
		t.Fatalf("rejected placements must not change the board, count=%d", b.Count())
	}
}

func TestEncodeDecodeStandard(t *testing.T) {
	b, toMove := mustBoard(t, StandardPlacement)
	if got := Encode(b, toMove); got != StandardPlacement {
		t.Fatalf("encode mismatch: got %q want %q", got, StandardPlacement)
	}
	if b.Count() != 32 {
		t.Fatalf("standard layout should have 32 pieces, got %d", b.Count())
	}
	k, ok := b.King(White)
	if !ok || k.Square != Sq(4, 0) {
		t.Fatalf("white king should be on e1, got %v ok=%v", k.Square, ok)
	}
}

func TestDecodeUnknownLetter(t *testing.T) {
	_, _, err := DecodePlacement("4k3/8/8/8/8/8/8/4KX2 w")
	if !errors.Is(err, ErrUnknownPieceType) {
		t.Fatalf("expected ErrUnknownPieceType, got %v", err)
	}
}

func TestApplyCaptureAndRevert(t *testing.T) {
	b, _ := mustBoard(t, "4k3/8/8/3p4/4P3/8/8/4K3 w")
	before := *b
	u := b.Apply(Move{From: Sq(4, 3), To: Sq(3, 4)})
	if u.Captured == NoPiece {
		t.Fatalf("expected a capture")
	}
	if pc, _ := b.Piece(u.Captured); !pc.Captured {
		t.Fatalf("captured piece should be marked removed")
	}
	if b.Count() != 3 {
		t.Fatalf("count after capture = %d", b.Count())
	}
	b.Revert(u)
	if *b != before {
		t.Fatalf("revert did not restore the board")
	}
}

func TestApplyPromotesAndRevertRestoresPawn(t *testing.T) {
	b, _ := mustBoard(t, "4k3/P7/8/8/8/8/8/4K3 w")
	before := *b
	u := b.Apply(Move{From: Sq(0, 6), To: Sq(0, 7)})
	pc, _ := b.At(Sq(0, 7))
	if !u.Promoted || pc.Kind != Queen {
		t.Fatalf("pawn on the last rank should become a queen, got %v", pc.Kind)
	}
	b.Revert(u)
	if *b != before {
		t.Fatalf("revert did not undo promotion")
	}
}

func TestApplyFromEmptySquarePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for a move from an empty square")
		}
	}()
	b, _ := mustBoard(t, "4k3/8/8/8/8/8/8/4K3 w")
	b.Apply(Move{From: Sq(0, 0), To: Sq(0, 1)})
}

func TestRandomApplyRevertRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b, side := mustBoard(t, StandardPlacement)
	var undos []Undo
	var snapshots []Board
	var hashes []uint64
	for ply := 0; ply < 60; ply++ {
		moves := LegalMoveSet(b, side).Moves(b)
		if len(moves) == 0 {
			break
		}
		snapshots = append(snapshots, *b)
		hashes = append(hashes, Hash(b, side))
		undos = append(undos, b.Apply(moves[rng.Intn(len(moves))]))
		side = side.Opponent()
	}
	for i := len(undos) - 1; i >= 0; i-- {
		b.Revert(undos[i])
		side = side.Opponent()
		if *b != snapshots[i] {
			t.Fatalf("board mismatch after reverting ply %d", i)
		}
		if h := Hash(b, side); h != hashes[i] {
			t.Fatalf("hash mismatch after reverting ply %d: got=%d want=%d", i, h, hashes[i])
		}
	}
}

func TestPhaseBoundary(t *testing.T) {
	eleven, _ := mustBoard(t, "4k3/ppppp3/8/8/8/8/PPPP4/4K3 w")
	if eleven.Count() != 11 || IsEndgame(eleven) {
		t.Fatalf("11 pieces should not be endgame (count=%d)", eleven.Count())
	}
	ten, _ := mustBoard(t, "4k3/pppp4/8/8/8/8/PPPP4/4K3 w")
	if ten.Count() != 10 || !IsEndgame(ten) || PhaseOf(ten) != Endgame {
		t.Fatalf("10 pieces should be endgame (count=%d)", ten.Count())
	}
}

func TestParseSquareAndKind(t *testing.T) {
	sq, err := ParseSquare("e4")
	if err != nil || sq != Sq(4, 3) {
		t.Fatalf("ParseSquare(e4) = %v, %v", sq, err)
	}
	if _, err := ParseSquare("i9"); !errors.Is(err, ErrOffBoard) {
		t.Fatalf("expected ErrOffBoard, got %v", err)
	}
	if k, err := ParseKind("knight"); err != nil || k != Knight {
		t.Fatalf("ParseKind(knight) = %v, %v", k, err)
	}
	if k, err := ParseKind("Q"); err != nil || k != Queen {
		t.Fatalf("ParseKind(Q) = %v, %v", k, err)
	}
	if _, err := ParseKind("dragon"); !errors.Is(err, ErrUnknownPieceType) {
		t.Fatalf("expected ErrUnknownPieceType, got %v", err)
	}
}
