// Package layout 负责开局摆法：标准开局、FEN、JSON 文件。
package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	nc "github.com/notnil/chess"

	"chessgame/internal/chess"
)

var ErrEmptyLayout = errors.New("layout has no pieces")

// Layout 是一局棋的初始摆法和先手方。
type Layout struct {
	Placements []chess.Placement
	ToMove     chess.Team
}

func Standard() Layout {
	return Layout{Placements: chess.StandardLayout(), ToMove: chess.White}
}

var kindFromNotnil = map[nc.PieceType]chess.PieceKind{
	nc.Pawn:   chess.Pawn,
	nc.Knight: chess.Knight,
	nc.Bishop: chess.Bishop,
	nc.Rook:   chess.Rook,
	nc.Queen:  chess.Queen,
	nc.King:   chess.King,
}

// FromFEN 用 notnil/chess 解析完整或只含前两段的 FEN。
// 王车易位权和吃过路兵格会被解析校验，但不参与本规则集。
func FromFEN(fen string) (Layout, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return Layout{}, fmt.Errorf("%w: empty", chess.ErrInvalidFEN)
	}
	defaults := []string{"", "w", "-", "-", "0", "1"}
	for len(fields) < len(defaults) {
		fields = append(fields, defaults[len(fields)])
	}
	opt, err := nc.FEN(strings.Join(fields, " "))
	if err != nil {
		return Layout{}, fmt.Errorf("%w: %v", chess.ErrInvalidFEN, err)
	}
	pos := nc.NewGame(opt).Position()

	var out Layout
	if pos.Turn() == nc.Black {
		out.ToMove = chess.Black
	}
	// 和 chess.DecodePlacement 同样的顺序（第 8 排到第 1 排），棋子 ID 才一致
	sm := pos.Board().SquareMap()
	for y := chess.Size - 1; y >= 0; y-- {
		for x := 0; x < chess.Size; x++ {
			p, ok := sm[nc.NewSquare(nc.File(x), nc.Rank(y))]
			if !ok || p == nc.NoPiece {
				continue
			}
			kind, ok := kindFromNotnil[p.Type()]
			if !ok {
				return Layout{}, fmt.Errorf("%w: %v", chess.ErrUnknownPieceType, p)
			}
			team := chess.White
			if p.Color() == nc.Black {
				team = chess.Black
			}
			out.Placements = append(out.Placements, chess.Placement{Square: chess.Sq(x, y), Team: team, Kind: kind})
		}
	}
	if len(out.Placements) == 0 {
		return Layout{}, ErrEmptyLayout
	}
	return out, nil
}

type fileEntry struct {
	Square string `json:"square"`
	Team   string `json:"team"`
	Kind   string `json:"kind"`
}

type fileLayout struct {
	ToMove string      `json:"to_move"`
	Pieces []fileEntry `json:"pieces"`
}

// Decode 读取 JSON 摆法：
//
//	{"to_move":"white","pieces":[{"square":"e1","team":"white","kind":"king"}, ...]}
func Decode(r io.Reader) (Layout, error) {
	var fl fileLayout
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fl); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	if len(fl.Pieces) == 0 {
		return Layout{}, ErrEmptyLayout
	}
	var out Layout
	var err error
	if out.ToMove, err = parseTeam(fl.ToMove, chess.White); err != nil {
		return Layout{}, err
	}
	for i, e := range fl.Pieces {
		sq, err := chess.ParseSquare(e.Square)
		if err != nil {
			return Layout{}, fmt.Errorf("piece %d: %w", i, err)
		}
		team, err := parseTeam(e.Team, -1)
		if err != nil {
			return Layout{}, fmt.Errorf("piece %d: %w", i, err)
		}
		kind, err := chess.ParseKind(e.Kind)
		if err != nil {
			return Layout{}, fmt.Errorf("piece %d: %w", i, err)
		}
		out.Placements = append(out.Placements, chess.Placement{Square: sq, Team: team, Kind: kind})
	}
	return out, nil
}

func parseTeam(s string, def chess.Team) (chess.Team, error) {
	switch strings.ToLower(s) {
	case "white", "w":
		return chess.White, nil
	case "black", "b":
		return chess.Black, nil
	case "":
		if def >= 0 {
			return def, nil
		}
	}
	return 0, fmt.Errorf("%w: team %q", chess.ErrInvalidLayout, s)
}

// Encode 把摆法写成 Decode 能读回的 JSON。
func Encode(w io.Writer, l Layout) error {
	fl := fileLayout{ToMove: l.ToMove.String()}
	for _, p := range l.Placements {
		fl.Pieces = append(fl.Pieces, fileEntry{Square: p.Square.String(), Team: p.Team.String(), Kind: p.Kind.String()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fl)
}

// Load 解析命令行里的摆法参数："" 或 "standard"、"fen:<FEN>"、或 JSON 文件路径。
func Load(arg string) (Layout, error) {
	switch {
	case arg == "" || arg == "standard":
		return Standard(), nil
	case strings.HasPrefix(arg, "fen:"):
		return FromFEN(strings.TrimPrefix(arg, "fen:"))
	}
	f, err := os.Open(arg)
	if err != nil {
		return Layout{}, err
	}
	defer f.Close()
	l, err := Decode(f)
	if err != nil {
		return Layout{}, fmt.Errorf("%s: %w", arg, err)
	}
	return l, nil
}
