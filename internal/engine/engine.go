package engine

import (
	"sync"
	"sync/atomic"

	"chessgame/internal/chess"
)

const scoreCacheCap = 500_000

type scoreKey struct {
	Pos  uint64
	Move chess.Move
}

// ScoreCache 按局面哈希缓存单步评分。Evaluate 是纯函数，所以同一局面、
// 同一套 Weights 下命中的分数就是重新计算的分数。不同 Weights 不能共用一个缓存。
type ScoreCache struct {
	mu sync.RWMutex
	m  map[scoreKey]int

	hits, misses atomic.Int64
}

func NewScoreCache() *ScoreCache {
	return &ScoreCache{m: make(map[scoreKey]int, 1<<12)}
}

func (c *ScoreCache) get(k scoreKey) (int, bool) {
	c.mu.RLock()
	v, ok := c.m[k]
	c.mu.RUnlock()
	return v, ok
}

func (c *ScoreCache) store(k scoreKey, score int) {
	c.mu.Lock()
	if len(c.m) > scoreCacheCap {
		c.m = make(map[scoreKey]int, 1<<12)
	}
	c.m[k] = score
	c.mu.Unlock()
}

// Stats 返回命中和未命中次数。
func (c *ScoreCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *ScoreCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
