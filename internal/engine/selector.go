package engine

import (
	"fmt"
	"math/rand"
	"sort"

	"chessgame/internal/chess"
)

// Candidate 是一步候选走法及其评分。
type Candidate struct {
	Piece chess.PieceID `json:"piece"`
	Move  chess.Move    `json:"move"`
	Score int           `json:"score"`
}

// Selector 从打好分的候选里挑一步。候选按枚举顺序传入，选择器不能修改切片。
type Selector interface {
	Select(cands []Candidate) (Candidate, bool)
	Name() string
}

// Greedy 选最高分；同分时先出现的胜出。
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (Greedy) Select(cands []Candidate) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best, true
}

const DefaultTopK = 3

// TopK 按分数降序稳定排序，取前 min(K, n) 个，均匀随机选一个。
// 随机源由种子决定，联机各端种子相同即结果相同。
type TopK struct {
	K   int
	rng *rand.Rand
}

func NewTopK(k int, seed int64) *TopK {
	if k <= 0 {
		k = DefaultTopK
	}
	return &TopK{K: k, rng: rand.New(rand.NewSource(seed))}
}

func (t *TopK) Name() string { return fmt.Sprintf("top%d", t.K) }

func (t *TopK) Select(cands []Candidate) (Candidate, bool) {
	top := TopN(cands, t.K)
	if len(top) == 0 {
		return Candidate{}, false
	}
	return top[t.rng.Intn(len(top))], true
}

// TopN 返回分数最高的 min(n, len) 个候选（降序，同分保持原顺序）。
func TopN(cands []Candidate, n int) []Candidate {
	sorted := make([]Candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// NewSelector 按名字构造选择器："greedy" 或 "topk"。
func NewSelector(policy string, k int, seed int64) (Selector, error) {
	switch policy {
	case "greedy":
		return Greedy{}, nil
	case "", "topk":
		return NewTopK(k, seed), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
}
