package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"chessgame/internal/chess"
	"chessgame/internal/engine"
	"chessgame/internal/game"
	"chessgame/internal/layout"
)

type PlayerConfig struct {
	Name string
	Bot  *engine.Bot
}

func newPlayer(preset, policy string, k int, seed int64) PlayerConfig {
	w, err := engine.LoadWeights(preset)
	if err != nil {
		log.Fatalf("weights %q: %v", preset, err)
	}
	sel, err := engine.NewSelector(policy, k, seed)
	if err != nil {
		log.Fatalf("selector: %v", err)
	}
	return PlayerConfig{Name: fmt.Sprintf("%s/%s", preset, sel.Name()), Bot: engine.NewBot(w, sel)}
}

func main() {
	totalGames := flag.Int("games", 10, "number of games to play")
	aPreset := flag.String("a", "classic", "weights for player A (preset or .json)")
	bPreset := flag.String("b", "aggressive", "weights for player B (preset or .json)")
	policy := flag.String("selector", "topk", "selector for both players")
	k := flag.Int("k", engine.DefaultTopK, "top-k size")
	seed := flag.Int64("seed", 1, "base seed")
	maxPlies := flag.Int("maxplies", 400, "plies before a game is scored as a draw")
	layoutArg := flag.String("layout", "standard", "start layout: standard, fen:<FEN> or a .json file")
	bench := flag.Bool("bench", false, "time candidate scoring instead of playing a match")
	flag.Parse()

	l, err := layout.Load(*layoutArg)
	if err != nil {
		log.Fatalf("layout: %v", err)
	}
	if *bench {
		runBenchmark(l, *maxPlies)
		return
	}

	playerA := newPlayer(*aPreset, *policy, *k, *seed)
	playerB := newPlayer(*bPreset, *policy, *k, *seed+1)

	aWins, bWins, draws := 0, 0, 0
	for g := 0; g < *totalGames; g++ {
		white, black := playerA, playerB
		if g%2 == 1 {
			white, black = playerB, playerA
		}

		fmt.Printf("\n=== Game %d: White [%s] vs Black [%s] ===\n", g+1, white.Name, black.Name)
		v, plies := playGame(l, white, black, *maxPlies)

		switch {
		case !v.HasWinner:
			draws++
			fmt.Printf("Result: draw (%s) after %d plies\n", v.Result, plies)
		case (v.Winner == chess.White) == (g%2 == 0):
			aWins++
			fmt.Printf("Result: %s wins by %s after %d plies\n", playerA.Name, v.Result, plies)
		default:
			bWins++
			fmt.Printf("Result: %s wins by %s after %d plies\n", playerB.Name, v.Result, plies)
		}
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("A %s: %d\n", playerA.Name, aWins)
	fmt.Printf("B %s: %d\n", playerB.Name, bWins)
	fmt.Printf("Draws: %d\n", draws)
}

// playGame 两个机器人轮流走，白方用 white 的参数。到 maxPlies 仍未结束按和棋计。
func playGame(l layout.Layout, white, black PlayerConfig, maxPlies int) (chess.Verdict, int) {
	ctrl, err := game.New(game.Config{Weights: engine.DefaultWeights()}, nil)
	if err != nil {
		log.Fatalf("controller: %v", err)
	}
	if err := ctrl.InitializeWithTurn(l.Placements, l.ToMove); err != nil {
		log.Fatalf("initialize: %v", err)
	}
	ctx := context.Background()
	for i := 0; i < maxPlies && ctrl.State() == game.StatePlay; i++ {
		p := white
		if ctrl.Active() == chess.Black {
			p = black
		}
		b := ctrl.Board()
		cand, ok, err := p.Bot.Choose(ctx, &b, moveSet(ctrl))
		if err != nil || !ok {
			log.Fatalf("%s has no move: %v", p.Name, err)
		}
		if err := ctrl.SelectPiece(cand.Move.From); err != nil {
			log.Fatalf("select %v: %v", cand.Move, err)
		}
		if err := ctrl.MoveSelectedPiece(cand.Move.To); err != nil {
			log.Fatalf("move %v: %v", cand.Move, err)
		}
	}
	return ctrl.Verdict(), ctrl.Plies()
}

func moveSet(ctrl *game.Controller) chess.MoveSet {
	p := ctrl.Player(ctrl.Active())
	ms := make(chess.MoveSet)
	for _, id := range p.Pieces() {
		if dests := p.LegalMoves(id); len(dests) > 0 {
			ms[id] = dests
		}
	}
	return ms
}
