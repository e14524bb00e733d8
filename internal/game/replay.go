package game

import (
	"fmt"

	"chessgame/internal/chess"
)

// Replay 按命令日志重建一局棋。机器人回合的检查被跳过，因为日志里的机器人着法
// 已经由原端选定，这里只需原样走一遍。
func Replay(cfg Config, layout []chess.Placement, toMove chess.Team, cmds []Command, listener Listener) (*Controller, error) {
	c, err := New(cfg, listener)
	if err != nil {
		return nil, err
	}
	if err := c.InitializeWithTurn(layout, toMove); err != nil {
		return nil, err
	}
	for i, cmd := range cmds {
		if err := c.exec(cmd); err != nil {
			return nil, fmt.Errorf("replay command %d (%v %v): %w", i, cmd.Kind, cmd.Square, err)
		}
	}
	return c, nil
}

func (c *Controller) exec(cmd Command) error {
	if err := c.checkPlayable(); err != nil {
		return err
	}
	switch cmd.Kind {
	case CmdSelect:
		return c.selectPiece(cmd.Square)
	case CmdMove:
		return c.moveSelected(cmd.Square)
	case CmdUndo:
		return c.Undo()
	}
	return fmt.Errorf("unknown command kind %d", cmd.Kind)
}
