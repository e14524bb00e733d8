package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"chessgame/internal/chess"
)

// Bot 对一方全部合法走法打分，再交给 Selector 挑一步。
type Bot struct {
	Weights  Weights
	Selector Selector
	// Workers > 1 时并行打分，每个 worker 各自持有一份草稿棋盘。
	Workers int
	// Cache 可选；为 nil 时每次都重新打分。
	Cache *ScoreCache
}

func NewBot(w Weights, sel Selector) *Bot {
	if sel == nil {
		sel = NewTopK(DefaultTopK, 1)
	}
	return &Bot{Weights: w, Selector: sel, Workers: 1}
}

// Candidates 按棋子 ID 升序、落点生成顺序枚举并打分。
func (bt *Bot) Candidates(ctx context.Context, b *chess.Board, moves chess.MoveSet) ([]Candidate, error) {
	cands := enumerate(b, moves)
	if len(cands) == 0 {
		return nil, nil
	}
	phase := chess.PhaseOf(b)
	pos := chess.Hash(b, chess.White)

	workers := bt.Workers
	if workers <= 1 || len(cands) < 2*workers {
		for i := range cands {
			cands[i].Score = bt.score(b, pos, cands[i], phase)
		}
		return cands, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(cands) + workers - 1) / workers
	for start := 0; start < len(cands); start += chunk {
		end := min(start+chunk, len(cands))
		part := cands[start:end]
		local := *b
		g.Go(func() error {
			for i := range part {
				if err := ctx.Err(); err != nil {
					return err
				}
				part[i].Score = bt.score(&local, pos, part[i], phase)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cands, nil
}

func (bt *Bot) score(b *chess.Board, pos uint64, c Candidate, phase chess.Phase) int {
	if bt.Cache == nil {
		return Evaluate(b, c.Piece, c.Move.To, phase, bt.Weights)
	}
	k := scoreKey{Pos: pos, Move: c.Move}
	if v, ok := bt.Cache.get(k); ok {
		bt.Cache.hits.Add(1)
		return v
	}
	v := Evaluate(b, c.Piece, c.Move.To, phase, bt.Weights)
	bt.Cache.store(k, v)
	bt.Cache.misses.Add(1)
	return v
}

// Choose 打分并选出一步；没有合法走法时 ok 为 false。
func (bt *Bot) Choose(ctx context.Context, b *chess.Board, moves chess.MoveSet) (Candidate, bool, error) {
	cands, err := bt.Candidates(ctx, b, moves)
	if err != nil {
		return Candidate{}, false, err
	}
	c, ok := bt.Selector.Select(cands)
	return c, ok, nil
}

func enumerate(b *chess.Board, moves chess.MoveSet) []Candidate {
	var out []Candidate
	for _, pc := range b.Pieces() {
		dests, ok := moves[pc.ID]
		if !ok {
			continue
		}
		for _, to := range dests {
			out = append(out, Candidate{Piece: pc.ID, Move: chess.Move{From: pc.Square, To: to}})
		}
	}
	return out
}
