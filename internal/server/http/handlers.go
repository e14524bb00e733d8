package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"chessgame/internal/chess"
	"chessgame/internal/engine"
	rules "chessgame/internal/game"
	"chessgame/internal/layout"
	sgame "chessgame/internal/server/game"
)

// 单次请求最长等待会话处理的时间
const requestTimeout = 10 * time.Second

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games    *sgame.Manager
	defaults sgame.Options
}

func NewHandler(games *sgame.Manager, defaults sgame.Options) *Handler {
	return &Handler{games: games, defaults: defaults}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/games" {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, GamesResponse{Games: h.games.IDs()})
		return
	}

	var handle func(w http.ResponseWriter, r *http.Request)
	switch r.URL.Path {
	case "/api/new_game":
		handle = h.handleNewGame
	case "/api/select":
		handle = h.handleSelect
	case "/api/play":
		handle = h.handlePlay
	case "/api/bot_move":
		handle = h.handleBotMove
	case "/api/undo":
		handle = h.handleUndo
	case "/api/restart":
		handle = h.handleRestart
	case "/api/state":
		handle = h.handleState
	case "/api/close":
		handle = h.handleClose
	default:
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	handle(w, r)
}

func (h *Handler) options(req NewGameRequest) (sgame.Options, error) {
	opts := h.defaults
	opts.Rules.BotTeams = append([]chess.Team(nil), h.defaults.Rules.BotTeams...)
	if req.Bots != nil {
		opts.Rules.BotTeams = opts.Rules.BotTeams[:0]
		for _, name := range req.Bots {
			team, err := parseTeam(name)
			if err != nil {
				return opts, err
			}
			opts.Rules.BotTeams = append(opts.Rules.BotTeams, team)
		}
	}
	if req.Policy != "" {
		opts.Rules.Policy = req.Policy
	}
	if req.K > 0 {
		opts.Rules.TopK = req.K
	}
	if req.Seed != nil {
		opts.Rules.Seed = *req.Seed
	}
	if req.DelayMs != nil {
		opts.BotDelay = time.Duration(*req.DelayMs) * time.Millisecond
	}
	if req.Preset != "" {
		w, err := engine.LookupPreset(req.Preset)
		if err != nil {
			return opts, err
		}
		opts.Rules.Weights = w
	}
	if len(req.Weights) > 0 {
		w := opts.Rules.Weights
		if err := json.Unmarshal(req.Weights, &w); err != nil {
			return opts, fmt.Errorf("%w: weights: %v", errBadRequest, err)
		}
		if err := w.Validate(); err != nil {
			return opts, err
		}
		opts.Rules.Weights = w
	}
	if req.FEN != "" {
		l, err := layout.FromFEN(req.FEN)
		if err != nil {
			return opts, err
		}
		opts.Layout = l
	}
	return opts, nil
}

func parseTeam(s string) (chess.Team, error) {
	switch s {
	case "white", "w":
		return chess.White, nil
	case "black", "b":
		return chess.Black, nil
	}
	return 0, fmt.Errorf("%w: team %q", errBadRequest, s)
}

var errBadRequest = errors.New("bad request")

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	// 空 body 表示全部用默认值
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	opts, err := h.options(req)
	if err != nil {
		writeError(w, err)
		return
	}
	s, err := h.games.NewGame(opts)
	if err != nil {
		writeError(w, err)
		return
	}
	v, err := h.view(r.Context(), s, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, NewGameResponse{GameID: s.ID, State: v})
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}
	sq, err := chess.ParseSquare(req.Square)
	if err != nil {
		writeError(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	targets, err := s.Select(ctx, sq)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := SelectResponse{Square: sq.String(), Targets: make([]string, len(targets))}
	for i, t := range targets {
		resp.Targets[i] = t.String()
	}
	writeJSON(w, resp)
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	switch {
	case req.Move != nil:
		m, err := req.Move.toMove()
		if err != nil {
			writeError(w, err)
			return
		}
		err = s.Play(ctx, m)
		if err != nil {
			writeError(w, err)
			return
		}
	case req.To != "":
		to, err := chess.ParseSquare(req.To)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.MoveSelected(ctx, to); err != nil {
			writeError(w, err)
			return
		}
	default:
		writeError(w, fmt.Errorf("%w: missing move", errBadRequest))
		return
	}
	h.writeState(ctx, w, s, 0)
}

func (h *Handler) handleBotMove(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	cand, err := s.BotMove(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	v, err := h.view(ctx, s, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, BotMoveResponse{Move: moveToDTO(cand.Move), Score: cand.Score, State: v})
}

func (h *Handler) handleUndo(w http.ResponseWriter, r *http.Request) {
	h.simple(w, r, (*sgame.Session).Undo)
}

func (h *Handler) handleRestart(w http.ResponseWriter, r *http.Request) {
	h.simple(w, r, (*sgame.Session).Restart)
}

func (h *Handler) simple(w http.ResponseWriter, r *http.Request, op func(*sgame.Session, context.Context) error) {
	var req GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err := op(s, ctx); err != nil {
		writeError(w, err)
		return
	}
	h.writeState(ctx, w, s, 0)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	s, ok := h.session(w, req.GameID)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	h.writeState(ctx, w, s, req.Since)
}

// handleClose 结束并删除一局，释放它的会话 goroutine。
func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if err := h.games.Remove(req.GameID); err != nil {
		writeError(w, err)
		return
	}
	log.Printf("game %s: closed", req.GameID)
	writeJSON(w, GamesResponse{Games: h.games.IDs()})
}

func (h *Handler) session(w http.ResponseWriter, id string) (*sgame.Session, bool) {
	s, err := h.games.Get(id)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return s, true
}

func (h *Handler) view(ctx context.Context, s *sgame.Session, since int) (StateResponse, error) {
	v, err := s.View(ctx, since)
	if err != nil {
		return StateResponse{}, err
	}
	return viewToDTO(v), nil
}

func (h *Handler) writeState(ctx context.Context, w http.ResponseWriter, s *sgame.Session, since int) {
	v, err := h.view(ctx, s, since)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, v)
}

// statusFor 把规则层和会话层的错误映射成 HTTP 状态码。
func statusFor(err error) int {
	switch {
	case errors.Is(err, sgame.ErrGameNotFound), errors.Is(err, sgame.ErrSessionClosed):
		return http.StatusNotFound
	case errors.Is(err, rules.ErrNotYourTurn), errors.Is(err, rules.ErrGameFinished),
		errors.Is(err, rules.ErrNothingToUndo), errors.Is(err, rules.ErrGameNotStarted):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, rules.ErrIllegalMove), errors.Is(err, rules.ErrNoSelection),
		errors.Is(err, rules.ErrEmptySquare), errors.Is(err, errBadRequest),
		errors.Is(err, chess.ErrOffBoard), errors.Is(err, chess.ErrInvalidFEN),
		errors.Is(err, chess.ErrUnknownPieceType), errors.Is(err, chess.ErrInvalidLayout),
		errors.Is(err, chess.ErrOccupied), errors.Is(err, layout.ErrEmptyLayout),
		errors.Is(err, engine.ErrInvalidWeights), errors.Is(err, engine.ErrUnknownPreset),
		errors.Is(err, engine.ErrUnknownPolicy):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Println("request failed:", err)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()}); err != nil {
		log.Println("writeError error:", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}
