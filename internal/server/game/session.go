package game

import (
	"context"
	"errors"
	"log"
	"time"

	"chessgame/internal/chess"
	"chessgame/internal/engine"
	rules "chessgame/internal/game"
	"chessgame/internal/layout"
)

var ErrSessionClosed = errors.New("session closed")

// Options 是新建对局的参数。
type Options struct {
	Rules    rules.Config
	Layout   layout.Layout
	BotDelay time.Duration // 机器人落子前的停顿，0 表示立即
}

func DefaultOptions() Options {
	return Options{Rules: rules.DefaultConfig(), Layout: layout.Standard(), BotDelay: 800 * time.Millisecond}
}

// Session 是一局在线对局。控制器只归会话 goroutine 所有，
// 外部请求通过 reqs 排队执行；机器人的停顿是同一个 select 里的计时器，
// 所以停顿期间不会有别的输入插进来。
type Session struct {
	ID        string
	CreatedAt time.Time

	opts Options
	reqs chan request
	quit chan struct{}
	done chan struct{}

	// 以下字段只在 loop 里读写
	ctrl      *rules.Controller
	events    *eventLog
	updatedAt time.Time
	ctx       context.Context
	cancel    context.CancelFunc
}

type request struct {
	fn    func() error
	reply chan error
}

func newSession(id string, opts Options) (*Session, error) {
	events := &eventLog{}
	events.add(Event{Kind: EventStarted, Team: opts.Layout.ToMove.String()})
	ctrl, err := rules.New(opts.Rules, events)
	if err != nil {
		return nil, err
	}
	if err := ctrl.InitializeWithTurn(opts.Layout.Placements, opts.Layout.ToMove); err != nil {
		return nil, err
	}

	now := time.Now()
	s := &Session{
		ID:        id,
		CreatedAt: now,
		opts:      opts,
		reqs:      make(chan request),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		ctrl:      ctrl,
		events:    events,
		updatedAt: now,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	go s.loop()
	return s, nil
}

// turnKey 标识一手：控制器实例加命令序号。重开、悔棋、任何一步落子都会换 key。
type turnKey struct {
	ctrl *rules.Controller
	seq  int
}

func (s *Session) loop() {
	defer close(s.done)
	var (
		timer  *time.Timer
		timerC <-chan time.Time
		armed  turnKey
	)
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
			timer, timerC = nil, nil
		}
	}
	defer stopTimer()

	for {
		// 每个机器人回合一个计时器；回合变了就作废重来
		key := turnKey{ctrl: s.ctrl, seq: s.ctrl.Seq()}
		switch {
		case !s.ctrl.IsBotTurn():
			stopTimer()
		case timer == nil || armed != key:
			stopTimer()
			timer = time.NewTimer(s.opts.BotDelay)
			timerC, armed = timer.C, key
		}

		select {
		case req := <-s.reqs:
			req.reply <- req.fn()
		case <-timerC:
			timer, timerC = nil, nil
			if _, err := s.botMove(); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("game %s: bot move failed: %v", s.ID, err)
			}
		case <-s.quit:
			return
		}
	}
}

// do 在会话 goroutine 里执行 fn。
func (s *Session) do(ctx context.Context, fn func() error) error {
	req := request{fn: fn, reply: make(chan error, 1)}
	select {
	case s.reqs <- req:
	case <-s.quit:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) Close() {
	select {
	case <-s.quit:
		return
	default:
	}
	s.cancel()
	close(s.quit)
	<-s.done
}

// Select 选中 sq 上的棋子，返回它的合法落点。
func (s *Session) Select(ctx context.Context, sq chess.Square) ([]chess.Square, error) {
	var targets []chess.Square
	err := s.do(ctx, func() error {
		if err := s.ctrl.SelectPiece(sq); err != nil {
			return err
		}
		targets = s.ctrl.LegalMovesFrom(sq)
		s.updatedAt = time.Now()
		return nil
	})
	return targets, err
}

// Play 选子并落子，一次请求完成一手。被拒绝时之前的选子保持不变。
func (s *Session) Play(ctx context.Context, m chess.Move) error {
	return s.do(ctx, func() error {
		b := s.ctrl.Board()
		pc, _ := b.At(m.From)
		mark := len(s.events.events)
		mover := s.ctrl.Active()
		s.events.add(Event{Kind: EventMove, Team: mover.String(), Move: m.String(), Piece: pc.Kind.String()})
		if err := s.ctrl.PlayMove(m); err != nil {
			s.events.events = s.events.events[:mark]
			return err
		}
		s.updatedAt = time.Now()
		log.Printf("game %s: %v %v", s.ID, mover, m)
		s.logFinish()
		return nil
	})
}

// MoveSelected 把之前选中的棋子走到 dest。
func (s *Session) MoveSelected(ctx context.Context, dest chess.Square) error {
	return s.do(ctx, func() error { return s.moveSelected(dest) })
}

func (s *Session) moveSelected(dest chess.Square) error {
	pc, ok := s.ctrl.Selected()
	if !ok {
		return rules.ErrNoSelection
	}
	mark := len(s.events.events)
	mover := s.ctrl.Active()
	s.events.add(Event{Kind: EventMove, Team: mover.String(), Move: chess.Move{From: pc.Square, To: dest}.String(), Piece: pc.Kind.String()})
	if err := s.ctrl.MoveSelectedPiece(dest); err != nil {
		s.events.events = s.events.events[:mark]
		return err
	}
	s.updatedAt = time.Now()
	log.Printf("game %s: %v %v%v", s.ID, mover, pc.Square, dest)
	s.logFinish()
	return nil
}

// BotMove 跳过停顿，立即让机器人走当前这一手。
func (s *Session) BotMove(ctx context.Context) (engine.Candidate, error) {
	var cand engine.Candidate
	err := s.do(ctx, func() error {
		var err error
		cand, err = s.botMove()
		return err
	})
	return cand, err
}

func (s *Session) botMove() (engine.Candidate, error) {
	mark := len(s.events.events)
	mover := s.ctrl.Active()
	s.events.add(Event{Kind: EventBotMove, Team: mover.String()})
	cand, err := s.ctrl.RequestBotMove(s.ctx)
	if err != nil {
		s.events.events = s.events.events[:mark]
		return engine.Candidate{}, err
	}
	e := &s.events.events[mark]
	e.Move, e.Score = cand.Move.String(), cand.Score
	b := s.ctrl.Board()
	if pc, ok := b.Piece(cand.Piece); ok {
		e.Piece = pc.Kind.String()
	}
	s.updatedAt = time.Now()
	log.Printf("game %s: bot %v plays %v (score %d)", s.ID, mover, cand.Move, cand.Score)
	s.logFinish()
	return cand, nil
}

func (s *Session) logFinish() {
	if s.ctrl.State() != rules.StateFinished {
		return
	}
	v := s.ctrl.Verdict()
	if v.HasWinner {
		log.Printf("game %s: finished, %v, %v wins", s.ID, v.Result, v.Winner)
	} else {
		log.Printf("game %s: finished, %v", s.ID, v.Result)
	}
}

func (s *Session) Undo(ctx context.Context) error {
	return s.do(ctx, func() error {
		if err := s.ctrl.Undo(); err != nil {
			return err
		}
		s.events.add(Event{Kind: EventUndo, Team: s.ctrl.Active().String()})
		s.updatedAt = time.Now()
		return nil
	})
}

// Restart 按原配置重开，会话 ID 和事件序号保持不变。
func (s *Session) Restart(ctx context.Context) error {
	return s.do(ctx, func() error {
		mark := len(s.events.events)
		s.events.add(Event{Kind: EventRestarted, Team: s.opts.Layout.ToMove.String()})
		nc, err := s.ctrl.Restart()
		if err != nil {
			s.events.events = s.events.events[:mark]
			return err
		}
		s.ctrl = nc
		s.updatedAt = time.Now()
		log.Printf("game %s: restarted", s.ID)
		return nil
	})
}

// View 是某一时刻对局的只读快照。
type View struct {
	ID         string
	FEN        string
	Active     chess.Team
	State      rules.State
	Verdict    chess.Verdict
	Selected   *chess.Square
	LegalMoves []chess.Move
	History    []chess.Move
	Captured   [2][]chess.PieceKind // 按被吃的一方
	Hash       uint64
	Commands   []rules.Command
	Events     []Event
	UpdatedAt  time.Time
}

// View 返回快照；events 只包含序号大于 since 的事件。
func (s *Session) View(ctx context.Context, since int) (View, error) {
	var v View
	err := s.do(ctx, func() error {
		b := s.ctrl.Board()
		v = View{
			ID:        s.ID,
			FEN:       chess.Encode(&b, s.ctrl.Active()),
			Active:    s.ctrl.Active(),
			State:     s.ctrl.State(),
			Verdict:   s.ctrl.Verdict(),
			History:   s.ctrl.History(),
			Hash:      s.ctrl.Hash(),
			Commands:  s.ctrl.Commands(),
			Events:    s.events.since(since),
			UpdatedAt: s.updatedAt,
		}
		if v.State == rules.StatePlay {
			v.LegalMoves = s.ctrl.LegalMoves()
		}
		if pc, ok := s.ctrl.Selected(); ok {
			sq := pc.Square
			v.Selected = &sq
		}
		for _, team := range []chess.Team{chess.White, chess.Black} {
			for _, id := range s.ctrl.Player(team).Removed() {
				if pc, ok := b.Piece(id); ok {
					v.Captured[team] = append(v.Captured[team], pc.Kind)
				}
			}
		}
		return nil
	})
	return v, err
}
