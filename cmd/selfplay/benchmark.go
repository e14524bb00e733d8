package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"runtime"
	"time"

	"chessgame/internal/engine"
	"chessgame/internal/game"
	"chessgame/internal/layout"
)

// runBenchmark 用一个机器人对自己走 plies 手，记录每手打分耗时，单线程和多线程各一遍。
func runBenchmark(l layout.Layout, plies int) {
	go func() {
		log.Println("pprof listening on :6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			log.Printf("pprof failed: %v", err)
		}
	}()

	for _, workers := range []int{1, runtime.NumCPU()} {
		cfg := game.DefaultConfig()
		cfg.Policy = "greedy"
		cfg.Workers = workers
		ctrl, err := game.New(cfg, nil)
		if err != nil {
			log.Fatalf("controller: %v", err)
		}
		if err := ctrl.InitializeWithTurn(l.Placements, l.ToMove); err != nil {
			log.Fatalf("initialize: %v", err)
		}
		bot := engine.NewBot(cfg.Weights, engine.Greedy{})
		bot.Workers = workers

		var scored int
		var spent time.Duration
		ctx := context.Background()
		for i := 0; i < plies && ctrl.State() == game.StatePlay; i++ {
			b := ctrl.Board()
			start := time.Now()
			cands, err := bot.Candidates(ctx, &b, moveSet(ctrl))
			if err != nil {
				log.Fatalf("candidates: %v", err)
			}
			spent += time.Since(start)
			scored += len(cands)
			if _, err := ctrl.PlayBotMove(ctx); err != nil {
				log.Fatalf("ply %d: %v", i, err)
			}
		}
		fmt.Printf("workers=%d plies=%d candidates=%d time=%v per-candidate=%v result=%s\n",
			workers, ctrl.Plies(), scored, spent, spent/time.Duration(max(scored, 1)), ctrl.Verdict().Result)
	}
}
