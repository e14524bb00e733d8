package chess

import (
	"strings"
	"unicode"
)

var letterToKind = map[rune]PieceKind{
	'p': Pawn,
	'n': Knight,
	'b': Bishop,
	'r': Rook,
	'q': Queen,
	'k': King,
}

var kindLetters = [numKinds]rune{'p', 'n', 'b', 'r', 'q', 'k'}

func pieceToChar(pc Piece) rune {
	ch := kindLetters[pc.Kind]
	if pc.Team == White {
		return unicode.ToUpper(ch)
	}
	return ch
}

// 标准开局，第 8 排在前，和 FEN 一致
const StandardPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w"

// Encode 输出 FEN 的摆子段 + 空格 + w/b。
func Encode(b *Board, toMove Team) string {
	var sb strings.Builder
	for y := Size - 1; y >= 0; y-- {
		if y < Size-1 {
			sb.WriteByte('/')
		}
		empty := 0
		for x := 0; x < Size; x++ {
			pc, ok := b.At(Sq(x, y))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if toMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	return sb.String()
}

// DecodePlacement 解析 Encode 的输出（也接受完整 FEN，多余字段忽略）。
// 返回的摆子顺序：从第 8 排到第 1 排，每排从 a 到 h。
func DecodePlacement(fen string) ([]Placement, Team, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, White, ErrInvalidFEN
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Size {
		return nil, White, ErrInvalidFEN
	}
	var out []Placement
	for r, row := range rows {
		y := Size - 1 - r
		x := 0
		for _, ch := range row {
			if x >= Size {
				return nil, White, ErrInvalidFEN
			}
			if ch >= '1' && ch <= '8' {
				x += int(ch - '0')
				continue
			}
			kind, ok := letterToKind[unicode.ToLower(ch)]
			if !ok {
				return nil, White, ErrUnknownPieceType
			}
			team := Black
			if unicode.IsUpper(ch) {
				team = White
			}
			out = append(out, Placement{Square: Sq(x, y), Team: team, Kind: kind})
			x++
		}
		if x != Size {
			return nil, White, ErrInvalidFEN
		}
	}
	toMove := White
	if len(parts) > 1 {
		switch parts[1] {
		case "w":
		case "b":
			toMove = Black
		default:
			return nil, White, ErrInvalidFEN
		}
	}
	return out, toMove, nil
}

// StandardLayout 返回标准开局摆法。
func StandardLayout() []Placement {
	layout, _, err := DecodePlacement(StandardPlacement)
	if err != nil {
		panic("chess: StandardPlacement is malformed: " + err.Error())
	}
	return layout
}
