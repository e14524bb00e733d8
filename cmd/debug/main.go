package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"chessgame/internal/chess"
	"chessgame/internal/game"
	"chessgame/internal/layout"
)

func main() {
	layoutArg := flag.String("layout", "standard", "start layout: standard, fen:<FEN> or a .json file")
	depth := flag.Int("depth", 3, "perft depth")
	dump := flag.Bool("dump-layout", false, "print the layout as JSON and exit")
	replayFile := flag.String("replay", "", "JSON command log to replay on top of the layout")
	flag.Parse()

	l, err := layout.Load(*layoutArg)
	if err != nil {
		log.Fatalf("layout: %v", err)
	}
	if *dump {
		if err := layout.Encode(os.Stdout, l); err != nil {
			log.Fatalf("dump: %v", err)
		}
		return
	}
	if *replayFile != "" {
		replay(l, *replayFile)
		return
	}
	b, err := chess.NewBoardFromLayout(l.Placements)
	if err != nil {
		log.Fatalf("board: %v", err)
	}
	fmt.Println("FEN:", chess.Encode(b, l.ToMove))
	fmt.Printf("Hash: %016x\n", chess.Hash(b, l.ToMove))
	fmt.Println("Phase:", chess.PhaseOf(b))

	pseudo := 0
	for _, pc := range b.PiecesOf(l.ToMove) {
		pseudo += len(chess.PseudoMoves(b, pc.ID))
	}
	fmt.Println("Pseudo legal moves:", pseudo)
	fmt.Println("Legal moves:", chess.LegalMoveSet(b, l.ToMove).Count())
	fmt.Println("In check:", chess.InCheck(b, l.ToMove))

	for d := 1; d <= *depth; d++ {
		fmt.Printf("perft(%d) = %d\n", d, perft(b, l.ToMove, d))
	}
}

// perft 数叶子节点，吃王之后的局面不再展开。
func perft(b *chess.Board, toMove chess.Team, depth int) int {
	if depth == 0 {
		return 1
	}
	if _, missing := chess.MissingKing(b); missing {
		return 0
	}
	moves := chess.LegalMoveSet(b, toMove).Moves(b)
	if depth == 1 {
		return len(moves)
	}
	n := 0
	for _, m := range moves {
		u := b.Apply(m)
		n += perft(b, toMove.Opponent(), depth-1)
		b.Revert(u)
	}
	return n
}

// replay 重放命令日志（Controller.Commands 的 JSON），打印最终局面。
func replay(l layout.Layout, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("replay: %v", err)
	}
	var cmds []game.Command
	if err := json.Unmarshal(data, &cmds); err != nil {
		log.Fatalf("replay %s: %v", path, err)
	}
	cfg := game.DefaultConfig()
	cfg.BotTeams = nil
	c, err := game.Replay(cfg, l.Placements, l.ToMove, cmds, nil)
	if err != nil {
		log.Fatalf("replay %s: %v", path, err)
	}
	b := c.Board()
	fmt.Println("Commands:", len(cmds), "Plies:", c.Plies())
	fmt.Println("FEN:", chess.Encode(&b, c.Active()))
	fmt.Printf("Hash: %016x\n", c.Hash())
	fmt.Println("State:", c.State())
	if v := c.Verdict(); v.Over() {
		fmt.Println("Result:", v.Result)
		if v.HasWinner {
			fmt.Println("Winner:", v.Winner)
		}
	}
}
