package game

import (
	"fmt"

	"github.com/palemoky/doudizhu/internal/game/bidding"
)

// Mode 开局方式
type Mode int

const (
	ModeStandard       Mode = iota // 从 0 号座位开始叫分
	ModeRandomLandlord             // 跳过叫分，随机指定地主
	ModeFastAutoBid                // 三家都由电脑规则自动叫分
	ModeNoBid                      // 无地主，三人各自为战，底牌不发
)

var modeNames = map[Mode]string{
	ModeStandard:       "standard",
	ModeRandomLandlord: "random-landlord",
	ModeFastAutoBid:    "fast-auto-bid",
	ModeNoBid:          "no-bid",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMode 解析配置中的模式名称
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeStandard, nil
	}
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeStandard, fmt.Errorf("unknown game mode %q", s)
}

// Phase 一局所处的阶段
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseBidding
	PhasePlaying
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseBidding:
		return "bidding"
	case PhasePlaying:
		return "playing"
	case PhaseOver:
		return "over"
	}
	return "unknown"
}

// Options 引擎参数
type Options struct {
	Mode       Mode
	Policy     bidding.NoBidPolicy
	HumanSeat  int
	Seed       uint64 // 0 表示按时间生成
	MaxRedeals int
}
