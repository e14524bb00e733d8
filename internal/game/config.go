package game

import (
	"chessgame/internal/chess"
	"chessgame/internal/engine"
)

// Config 是规则引擎一侧的配置：哪一方由机器人走、评分参数、选择策略。
type Config struct {
	BotTeams []chess.Team
	Weights  engine.Weights
	Policy   string // "greedy" 或 "topk"
	TopK     int
	Seed     int64
	Workers  int
}

func DefaultConfig() Config {
	return Config{
		BotTeams: []chess.Team{chess.Black},
		Weights:  engine.DefaultWeights(),
		Policy:   "topk",
		TopK:     engine.DefaultTopK,
		Seed:     1,
		Workers:  1,
	}
}

func (c Config) IsBot(team chess.Team) bool {
	for _, t := range c.BotTeams {
		if t == team {
			return true
		}
	}
	return false
}
