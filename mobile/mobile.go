package mobile

import (
	"log"
	"net/http"
	"time"

	sgame "chessgame/internal/server/game"
	httpserver "chessgame/internal/server/http"
)

// StartServer starts the local HTTP server.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
// botDelayMs: pause before the bot replies, in milliseconds
func StartServer(webDir string, port string, botDelayMs int) {
	opts := sgame.DefaultOptions()
	opts.Rules.Seed = time.Now().UnixNano()
	opts.BotDelay = time.Duration(botDelayMs) * time.Millisecond

	mux := httpserver.NewMux(sgame.NewManager(), opts)
	if webDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(webDir)))
	}

	// Run in background so it doesn't block the Android UI thread
	go func() {
		if err := http.ListenAndServe("127.0.0.1:"+port, mux); err != nil {
			log.Printf("Server Error: %v", err)
		}
	}()
}
