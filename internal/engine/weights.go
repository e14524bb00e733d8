package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

var (
	ErrInvalidWeights = errors.New("invalid weights")
	ErrUnknownPreset  = errors.New("unknown weights preset")
	ErrUnknownPolicy  = errors.New("unknown selector policy")
)

// Weights 是走法评分里所有可调的常量。算法形状固定，只调这里。
type Weights struct {
	TradeUpBonus       int `json:"trade_up_bonus"`       // 吃到比自己值钱的子额外加分
	CaptureMultiplier  int `json:"capture_multiplier"`   // 被吃子价值的倍数
	CenterBonus        int `json:"center_bonus"`         // 中心 4x4
	InnerCenterBonus   int `json:"inner_center_bonus"`   // 再加：最中心 2x2
	AttackedPenaltyDiv int `json:"attacked_penalty_div"` // 落点被攻击时扣 自身价值/Div，取 2 或 3
	ProtectionBonus    int `json:"protection_bonus"`     // 落点周围 8 格有友军
	KingProximityBonus int `json:"king_proximity_bonus"` // 落点贴着己方王，0 表示关闭
}

func DefaultWeights() Weights {
	return Weights{
		TradeUpBonus:       50,
		CaptureMultiplier:  1,
		CenterBonus:        20,
		InnerCenterBonus:   10,
		AttackedPenaltyDiv: 3,
		ProtectionBonus:    30,
	}
}

// Presets 收拢了几版机器人的参数差异。
var Presets = map[string]Weights{
	"classic": DefaultWeights(),
	"guarded": {
		TradeUpBonus:       50,
		CaptureMultiplier:  1,
		CenterBonus:        20,
		InnerCenterBonus:   10,
		AttackedPenaltyDiv: 2,
		ProtectionBonus:    30,
		KingProximityBonus: 15,
	},
	"aggressive": {
		TradeUpBonus:       100,
		CaptureMultiplier:  2,
		CenterBonus:        25,
		InnerCenterBonus:   15,
		AttackedPenaltyDiv: 3,
		ProtectionBonus:    20,
	},
}

func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func LookupPreset(name string) (Weights, error) {
	if name == "" {
		return DefaultWeights(), nil
	}
	w, ok := Presets[name]
	if !ok {
		return Weights{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return w, nil
}

func (w Weights) Validate() error {
	if w.AttackedPenaltyDiv < 2 || w.AttackedPenaltyDiv > 3 {
		return fmt.Errorf("%w: attacked_penalty_div=%d, want 2 or 3", ErrInvalidWeights, w.AttackedPenaltyDiv)
	}
	if w.CaptureMultiplier < 1 {
		return fmt.Errorf("%w: capture_multiplier=%d", ErrInvalidWeights, w.CaptureMultiplier)
	}
	return nil
}

// LoadWeights 接受预设名或 JSON 文件路径。文件里没写的字段沿用默认值。
func LoadWeights(arg string) (Weights, error) {
	if !strings.HasSuffix(arg, ".json") {
		return LookupPreset(arg)
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return Weights{}, err
	}
	w := DefaultWeights()
	if err := json.Unmarshal(data, &w); err != nil {
		return Weights{}, fmt.Errorf("%s: %w", arg, err)
	}
	if err := w.Validate(); err != nil {
		return Weights{}, fmt.Errorf("%s: %w", arg, err)
	}
	return w, nil
}
