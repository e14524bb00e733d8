package httpserver

import (
	"net/http"

	sgame "chessgame/internal/server/game"
)

// NewMux 挂上 /api/ 路由，以及一个给探活用的 /healthz。
func NewMux(games *sgame.Manager, defaults sgame.Options) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/", NewHandler(games, defaults))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	return mux
}
