package game

import (
	"context"
	"fmt"

	"chessgame/internal/chess"
	"chessgame/internal/engine"
)

// Controller 是一局棋的回合状态机：Init → Play → Finished。
// 不是并发安全的，由持有它的单个 goroutine 驱动。
type Controller struct {
	cfg      Config
	listener Listener
	bot      *engine.Bot

	layout  []chess.Placement
	opening chess.Team

	board    chess.Board
	players  [2]*Player
	active   chess.Team
	state    State
	verdict  chess.Verdict
	selected chess.PieceID

	history  []ply
	commands []Command
}

func New(cfg Config, listener Listener) (*Controller, error) {
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	sel, err := engine.NewSelector(cfg.Policy, cfg.TopK, cfg.Seed)
	if err != nil {
		return nil, err
	}
	if listener == nil {
		listener = ListenerFuncs{}
	}
	bot := engine.NewBot(cfg.Weights, sel)
	bot.Cache = engine.NewScoreCache()
	if cfg.Workers > 1 {
		bot.Workers = cfg.Workers
	}
	return &Controller{
		cfg:      cfg,
		listener: listener,
		bot:      bot,
		players:  [2]*Player{newPlayer(chess.White), newPlayer(chess.Black)},
	}, nil
}

// Initialize 按 layout 摆子，白方先走。
func (c *Controller) Initialize(layout []chess.Placement) error {
	return c.InitializeWithTurn(layout, chess.White)
}

// InitializeWithTurn 摆子并生成走法，然后进入 Play。摆子失败时停在 Init。
func (c *Controller) InitializeWithTurn(layout []chess.Placement, toMove chess.Team) error {
	if c.state != StateInit {
		return ErrAlreadyStarted
	}
	b, err := chess.NewBoardFromLayout(layout)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	c.board = *b
	c.layout = append([]chess.Placement(nil), layout...)
	c.opening = toMove
	for _, pc := range c.board.Pieces() {
		c.players[pc.Team].addPiece(pc.ID)
	}
	c.active = toMove
	c.refresh()
	c.state = StatePlay
	// 摆出来就已经是终局的局面（比如困毙）直接结束
	if v := c.judge(toMove.Opponent()); v.Over() {
		c.verdict = v
		c.state = StateFinished
		c.listener.OnGameFinished(v)
	}
	return nil
}

// Restart 用同样的配置和摆法开一局新的。旧对局保持原状。
func (c *Controller) Restart() (*Controller, error) {
	nc, err := New(c.cfg, c.listener)
	if err != nil {
		return nil, err
	}
	if err := nc.InitializeWithTurn(c.layout, c.opening); err != nil {
		return nil, err
	}
	return nc, nil
}

func (c *Controller) State() State { return c.state }
func (c *Controller) Active() chess.Team { return c.active }
func (c *Controller) Verdict() chess.Verdict { return c.verdict }
func (c *Controller) Config() Config { return c.cfg }

// Board 返回棋盘副本。
func (c *Controller) Board() chess.Board { return c.board }

func (c *Controller) Player(team chess.Team) *Player { return c.players[team] }

func (c *Controller) Selected() (chess.Piece, bool) {
	if c.selected == chess.NoPiece {
		return chess.Piece{}, false
	}
	return c.board.Piece(c.selected)
}

// Seq 是已记录的命令数，每次成功的输入都会让它增加。
func (c *Controller) Seq() int { return len(c.commands) }

func (c *Controller) Commands() []Command { return append([]Command(nil), c.commands...) }

func (c *Controller) Hash() uint64 { return chess.Hash(&c.board, c.active) }

// LegalMoves 返回当前走子方的全部合法走法，按棋子 ID 顺序。
func (c *Controller) LegalMoves() []chess.Move {
	return c.players[c.active].legal.Moves(&c.board)
}

// LegalMovesFrom 返回 sq 上棋子的缓存落点（不论属于哪一方）。
func (c *Controller) LegalMovesFrom(sq chess.Square) []chess.Square {
	pc, ok := c.board.At(sq)
	if !ok {
		return nil
	}
	return c.players[pc.Team].LegalMoves(pc.ID)
}

func (c *Controller) IsBotTurn() bool {
	return c.state == StatePlay && c.cfg.IsBot(c.active)
}

func (c *Controller) checkPlayable() error {
	switch c.state {
	case StateInit:
		return ErrGameNotStarted
	case StateFinished:
		return ErrGameFinished
	}
	return nil
}

// SelectPiece 选中走子方的一枚棋子。机器人的回合里人类输入一律拒绝。
func (c *Controller) SelectPiece(sq chess.Square) error {
	if err := c.checkPlayable(); err != nil {
		return err
	}
	if c.cfg.IsBot(c.active) {
		return ErrNotYourTurn
	}
	return c.selectPiece(sq)
}

// MoveSelectedPiece 把选中的棋子走到 dest；dest 必须在缓存的合法落点里。
func (c *Controller) MoveSelectedPiece(dest chess.Square) error {
	if err := c.checkPlayable(); err != nil {
		return err
	}
	if c.cfg.IsBot(c.active) {
		return ErrNotYourTurn
	}
	return c.moveSelected(dest)
}

// PlayMove 一次完成选子和落子。任何一步被拒绝时选子和命令日志都不变。
func (c *Controller) PlayMove(m chess.Move) error {
	if err := c.checkPlayable(); err != nil {
		return err
	}
	if c.cfg.IsBot(c.active) {
		return ErrNotYourTurn
	}
	pc, ok := c.board.At(m.From)
	if !ok {
		return fmt.Errorf("%w: %v", ErrEmptySquare, m.From)
	}
	if pc.Team != c.active {
		return ErrNotYourTurn
	}
	if !c.players[c.active].legal.Contains(pc.ID, m.To) {
		return fmt.Errorf("%w: %v", ErrIllegalMove, m)
	}
	if err := c.selectPiece(m.From); err != nil {
		return err
	}
	return c.moveSelected(m.To)
}

// RequestBotMove 让机器人为当前走子方打分选一步，走的是和人类相同的落子路径。
func (c *Controller) RequestBotMove(ctx context.Context) (engine.Candidate, error) {
	if err := c.checkPlayable(); err != nil {
		return engine.Candidate{}, err
	}
	if !c.cfg.IsBot(c.active) {
		return engine.Candidate{}, ErrNotYourTurn
	}
	return c.botMove(ctx)
}

// PlayBotMove 不检查这一方是否配置为机器人，用于自对弈和提示。
func (c *Controller) PlayBotMove(ctx context.Context) (engine.Candidate, error) {
	if err := c.checkPlayable(); err != nil {
		return engine.Candidate{}, err
	}
	return c.botMove(ctx)
}

func (c *Controller) botMove(ctx context.Context) (engine.Candidate, error) {
	cand, ok, err := c.bot.Choose(ctx, &c.board, c.players[c.active].legal)
	if err != nil {
		return engine.Candidate{}, err
	}
	if !ok {
		// 没有合法走法的局面在上一手就应当判为终局
		panic(fmt.Sprintf("game: %v to move in play state without legal moves", c.active))
	}
	if err := c.selectPiece(cand.Move.From); err != nil {
		panic(fmt.Sprintf("game: bot selected %v: %v", cand.Move.From, err))
	}
	if err := c.moveSelected(cand.Move.To); err != nil {
		panic(fmt.Sprintf("game: bot move %v rejected: %v", cand.Move, err))
	}
	return cand, nil
}

func (c *Controller) selectPiece(sq chess.Square) error {
	pc, ok := c.board.At(sq)
	if !ok {
		return fmt.Errorf("%w: %v", ErrEmptySquare, sq)
	}
	if pc.Team != c.active {
		return ErrNotYourTurn
	}
	c.selected = pc.ID
	c.commands = append(c.commands, Command{Kind: CmdSelect, Square: sq})
	return nil
}

func (c *Controller) moveSelected(dest chess.Square) error {
	if c.selected == chess.NoPiece {
		return ErrNoSelection
	}
	if !c.players[c.active].legal.Contains(c.selected, dest) {
		return fmt.Errorf("%w: %v", ErrIllegalMove, dest)
	}
	c.commands = append(c.commands, Command{Kind: CmdMove, Square: dest})
	c.apply(dest)
	return nil
}

// apply 修改棋盘和双方记账，然后推进一手；回调在状态完整之后才发出。
func (c *Controller) apply(dest chess.Square) {
	pc, ok := c.board.Piece(c.selected)
	if !ok {
		panic(fmt.Sprintf("game: selected piece %d not found", c.selected))
	}
	u := c.board.Apply(chess.Move{From: pc.Square, To: dest})
	var captured chess.Piece
	if u.Captured != chess.NoPiece {
		captured, _ = c.board.Piece(u.Captured)
		c.players[captured.Team].capture(captured.ID)
	}
	c.history = append(c.history, ply{undo: u, mover: c.active})
	c.selected = chess.NoPiece

	finished := c.advancePly()

	if u.Captured != chess.NoPiece {
		c.listener.OnPieceCaptured(captured)
	}
	if finished {
		c.listener.OnGameFinished(c.verdict)
	} else {
		c.listener.OnTurnEnded(c.active)
	}
}

// advancePly：重算双方走法 → 终局判定 → 换边。返回是否终局。
func (c *Controller) advancePly() bool {
	mover := c.active
	c.refresh()
	if v := c.judge(mover); v.Over() {
		c.verdict = v
		c.state = StateFinished
		return true
	}
	c.active = mover.Opponent()
	return false
}

func (c *Controller) judge(mover chess.Team) chess.Verdict {
	return chess.Judge(&c.board, mover, map[chess.Team]chess.MoveSet{
		chess.White: c.players[chess.White].legal,
		chess.Black: c.players[chess.Black].legal,
	})
}

// refresh 先算走子方，再算对手。
func (c *Controller) refresh() {
	c.players[c.active].generate(&c.board)
	c.players[c.active.Opponent()].generate(&c.board)
}

// Undo 撤销上一手：棋盘、被吃记录、走子方都回到那一手之前。终局后不能悔棋。
func (c *Controller) Undo() error {
	if err := c.checkPlayable(); err != nil {
		return err
	}
	if len(c.history) == 0 {
		return ErrNothingToUndo
	}
	last := c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	c.board.Revert(last.undo)
	if last.undo.Captured != chess.NoPiece {
		pc, _ := c.board.Piece(last.undo.Captured)
		c.players[pc.Team].uncapture(pc.ID)
	}
	c.active = last.mover
	c.selected = chess.NoPiece
	c.refresh()
	c.commands = append(c.commands, Command{Kind: CmdUndo})
	return nil
}

// Plies 返回已走的手数。
func (c *Controller) Plies() int { return len(c.history) }

// History 返回已走的着法。
func (c *Controller) History() []chess.Move {
	out := make([]chess.Move, len(c.history))
	for i, p := range c.history {
		out[i] = p.undo.Move
	}
	return out
}
