// Package bidding 叫分状态机：三名玩家依次叫 0~3 分，决出地主
package bidding

import (
	"fmt"
	"math/rand/v2"

	"github.com/palemoky/doudizhu/internal/apperrors"
	"github.com/palemoky/doudizhu/internal/game/card"
)

// MaxBid 最高叫分，叫到即成为地主
const MaxBid = 3

// State 叫分阶段
type State int

const (
	StateBidding  State = iota // 叫分中
	StateResolved              // 已确定地主
	StateRedeal                // 无人叫分，需要重新发牌
)

func (s State) String() string {
	switch s {
	case StateBidding:
		return "bidding"
	case StateResolved:
		return "resolved"
	case StateRedeal:
		return "redeal"
	}
	return "unknown"
}

// NoBidPolicy 三家都不叫时的处理方式
type NoBidPolicy int

const (
	PolicyRedeal         NoBidPolicy = iota // 重新发牌
	PolicyRandomLandlord                    // 随机指定地主
)

func (p NoBidPolicy) String() string {
	if p == PolicyRandomLandlord {
		return "random"
	}
	return "redeal"
}

// ParsePolicy 解析配置中的策略名称
func ParsePolicy(s string) (NoBidPolicy, error) {
	switch s {
	case "", "redeal":
		return PolicyRedeal, nil
	case "random":
		return PolicyRandomLandlord, nil
	}
	return PolicyRedeal, fmt.Errorf("unknown no-bid policy %q", s)
}

// Machine 叫分状态机。每次叫分要么被拒绝且状态不变，要么被接受并推进。
type Machine struct {
	policy NoBidPolicy
	rng    *rand.Rand

	state      State
	current    int
	highest    int
	bids       [card.NumPlayers]int
	passes     int
	lastBidder int
	landlord   int
}

// New 从 first 号座位开始叫分
func New(first int, policy NoBidPolicy, rng *rand.Rand) *Machine {
	return &Machine{
		policy:     policy,
		rng:        rng,
		state:      StateBidding,
		current:    first,
		lastBidder: -1,
		landlord:   -1,
	}
}

// Bid 当前叫分者叫 amount 分，0 表示不叫
func (m *Machine) Bid(player, amount int) error {
	if player < 0 || player >= card.NumPlayers {
		return apperrors.Invariant("bid", "seat %d out of range", player)
	}
	if m.state != StateBidding {
		return apperrors.ErrNotBidding
	}
	if player != m.current {
		return apperrors.ErrNotYourTurn
	}
	if amount < 0 || amount > MaxBid {
		return apperrors.ErrBidOutOfRange
	}
	if amount > 0 && amount <= m.highest {
		return apperrors.ErrBidTooLow
	}

	m.bids[player] = amount
	if amount == 0 {
		m.passes++
	} else {
		m.highest = amount
		m.lastBidder = player
		m.passes = 0
	}

	switch {
	case amount == MaxBid:
		m.resolve(player)
	case m.lastBidder >= 0 && m.passes >= 2:
		m.resolve(m.lastBidder)
	case m.lastBidder < 0 && m.passes >= card.NumPlayers:
		m.noBid()
	default:
		m.current = (m.current + 1) % card.NumPlayers
	}
	return nil
}

// Pass 不叫
func (m *Machine) Pass(player int) error {
	return m.Bid(player, 0)
}

func (m *Machine) resolve(landlord int) {
	m.landlord = landlord
	m.current = landlord
	m.state = StateResolved
}

func (m *Machine) noBid() {
	if m.policy == PolicyRandomLandlord {
		m.resolve(m.rng.IntN(card.NumPlayers))
		return
	}
	m.state = StateRedeal
}

// ForceRandom 放弃重新发牌，随机指定地主
func (m *Machine) ForceRandom() {
	if m.state == StateResolved {
		return
	}
	m.resolve(m.rng.IntN(card.NumPlayers))
}

func (m *Machine) State() State { return m.state }
func (m *Machine) Current() int { return m.current }
func (m *Machine) Highest() int { return m.highest }
func (m *Machine) Passes() int { return m.passes }
func (m *Machine) LastBidder() int { return m.lastBidder }

// Landlord 地主座位，未确定时为 -1
func (m *Machine) Landlord() int { return m.landlord }

// Bids 每个座位最近一次叫分
func (m *Machine) Bids() [card.NumPlayers]int { return m.bids }
