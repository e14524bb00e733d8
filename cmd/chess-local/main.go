package main

import (
	"flag"
	"log"
	"net/http"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"chessgame/internal/chess"
	"chessgame/internal/engine"
	"chessgame/internal/layout"
	sgame "chessgame/internal/server/game"
	httpserver "chessgame/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 无图形界面的环境会失败，忽略
}

func parseBots(s string) []chess.Team {
	var teams []chess.Team
	for _, name := range strings.Split(s, ",") {
		switch strings.TrimSpace(name) {
		case "white":
			teams = append(teams, chess.White)
		case "black":
			teams = append(teams, chess.Black)
		case "", "none":
		default:
			log.Fatalf("unknown team %q in -bot", name)
		}
	}
	return teams
}

func main() {
	addr := flag.String("addr", ":2888", "listen address")
	webDir := flag.String("web", "", "optional directory with static front-end files")
	bots := flag.String("bot", "black", "comma separated bot teams: white,black or none")
	policy := flag.String("selector", "topk", "bot move selector: greedy or topk")
	k := flag.Int("k", engine.DefaultTopK, "top-k size for the topk selector")
	seed := flag.Int64("seed", 0, "selector seed, 0 picks one from the clock")
	delay := flag.Duration("delay", 800*time.Millisecond, "pause before the bot moves")
	weights := flag.String("weights", "classic", "weights preset ("+strings.Join(engine.PresetNames(), ", ")+") or a .json file")
	layoutArg := flag.String("layout", "standard", "start layout: standard, fen:<FEN> or a .json file")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel scoring workers per bot move")
	open := flag.Bool("open", false, "open the default browser")
	flag.Parse()

	opts := sgame.DefaultOptions()
	opts.Rules.BotTeams = parseBots(*bots)
	opts.Rules.Policy = *policy
	opts.Rules.TopK = *k
	opts.Rules.Seed = *seed
	if opts.Rules.Seed == 0 {
		opts.Rules.Seed = time.Now().UnixNano()
	}
	opts.Rules.Workers = *workers
	opts.BotDelay = *delay

	w, err := engine.LoadWeights(*weights)
	if err != nil {
		log.Fatalf("weights: %v", err)
	}
	opts.Rules.Weights = w
	l, err := layout.Load(*layoutArg)
	if err != nil {
		log.Fatalf("layout: %v", err)
	}
	opts.Layout = l
	if _, err := engine.NewSelector(opts.Rules.Policy, opts.Rules.TopK, opts.Rules.Seed); err != nil {
		log.Fatalf("selector: %v", err)
	}

	games := sgame.NewManager()
	defer games.CloseAll()
	mux := httpserver.NewMux(games, opts)
	if *webDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(*webDir)))
	}

	log.Printf("listening on %s, bots=%v selector=%s weights=%s", *addr, opts.Rules.BotTeams, *policy, *weights)

	if *open {
		// 延迟一下再打开浏览器，等服务器起来
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + *addr)
		}()
	}

	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}
