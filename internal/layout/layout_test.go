package layout

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	nc "github.com/notnil/chess"

	"chessgame/internal/chess"
)

func TestFromFENStandard(t *testing.T) {
	l, err := FromFEN(chess.StandardPlacement)
	if err != nil {
		t.Fatalf("from fen: %v", err)
	}
	if l.ToMove != chess.White {
		t.Fatalf("to move = %v", l.ToMove)
	}
	want, err := chess.NewBoardFromLayout(chess.StandardLayout())
	if err != nil {
		t.Fatalf("standard: %v", err)
	}
	got, err := chess.NewBoardFromLayout(l.Placements)
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if chess.Encode(got, l.ToMove) != chess.Encode(want, chess.White) {
		t.Fatalf("placement mismatch:\n%s\n%s", chess.Encode(got, l.ToMove), chess.Encode(want, chess.White))
	}
}

func TestFromFENRejectsGarbage(t *testing.T) {
	for _, fen := range []string{"", "not a fen", "8/8/8 w"} {
		if _, err := FromFEN(fen); !errors.Is(err, chess.ErrInvalidFEN) {
			t.Fatalf("%q: expected ErrInvalidFEN, got %v", fen, err)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	src := `{"to_move":"black","pieces":[
		{"square":"e1","team":"white","kind":"king"},
		{"square":"e8","team":"black","kind":"k"},
		{"square":"a2","team":"white","kind":"pawn"}]}`
	l, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if l.ToMove != chess.Black || len(l.Placements) != 3 {
		t.Fatalf("unexpected layout %+v", l)
	}
	if p := l.Placements[2]; p.Kind != chess.Pawn || p.Square != chess.Sq(0, 1) {
		t.Fatalf("unexpected pawn %+v", p)
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	src := `{"pieces":[{"square":"e1","team":"white","kind":"archbishop"}]}`
	if _, err := Decode(strings.NewReader(src)); !errors.Is(err, chess.ErrUnknownPieceType) {
		t.Fatalf("expected ErrUnknownPieceType, got %v", err)
	}
	src = `{"pieces":[{"square":"e9","team":"white","kind":"king"}]}`
	if _, err := Decode(strings.NewReader(src)); !errors.Is(err, chess.ErrOffBoard) {
		t.Fatalf("expected ErrOffBoard, got %v", err)
	}
	src = `{"pieces":[{"square":"e1","team":"red","kind":"king"}]}`
	if _, err := Decode(strings.NewReader(src)); !errors.Is(err, chess.ErrInvalidLayout) {
		t.Fatalf("expected ErrInvalidLayout, got %v", err)
	}
}

func TestEncodeDecodeFile(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Standard()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "start.json")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	l, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !slices.Equal(l.Placements, Standard().Placements) {
		t.Fatalf("file layout differs from standard")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadArgs(t *testing.T) {
	l, err := Load("standard")
	if err != nil || len(l.Placements) != 32 {
		t.Fatalf("standard: %v %d", err, len(l.Placements))
	}
	l, err = Load("fen:4k3/8/8/8/8/8/8/4K3 b")
	if err != nil {
		t.Fatalf("fen: %v", err)
	}
	if l.ToMove != chess.Black || len(l.Placements) != 2 {
		t.Fatalf("unexpected layout %+v", l)
	}
}

// notnil/chess 作为独立的走法生成器做对照，局面不含易位权和过路兵格。
func TestLegalMovesMatchNotnil(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b - - 0 1",
		"4k3/8/8/8/8/8/4q3/4K3 w - - 0 1",
		"3r4/8/8/8/8/8/3B4/3K4 w - - 0 1",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			l, err := FromFEN(fen)
			if err != nil {
				t.Fatalf("from fen: %v", err)
			}
			b, err := chess.NewBoardFromLayout(l.Placements)
			if err != nil {
				t.Fatalf("board: %v", err)
			}
			var ours []string
			for _, m := range chess.LegalMoveSet(b, l.ToMove).Moves(b) {
				ours = append(ours, m.String())
			}

			opt, err := nc.FEN(fen)
			if err != nil {
				t.Fatalf("notnil fen: %v", err)
			}
			var theirs []string
			for _, m := range nc.NewGame(opt).ValidMoves() {
				theirs = append(theirs, m.S1().String()+m.S2().String())
			}

			slices.Sort(ours)
			slices.Sort(theirs)
			theirs = slices.Compact(theirs)
			if !slices.Equal(ours, theirs) {
				t.Fatalf("move mismatch\nours:   %v\ntheirs: %v", ours, theirs)
			}
		})
	}
}
