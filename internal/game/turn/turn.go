// Package turn 出牌轮转状态机
package turn

import (
	"github.com/palemoky/doudizhu/internal/apperrors"
	"github.com/palemoky/doudizhu/internal/game/card"
	"github.com/palemoky/doudizhu/internal/game/rule"
)

// Phase 出牌阶段
type Phase int

const (
	PhaseLeading        Phase = iota // 自由出牌
	PhaseAwaitingFollow              // 等待接牌
	PhaseRoundEnd                    // 有人出完，本局结束
)

func (p Phase) String() string {
	switch p {
	case PhaseLeading:
		return "leading"
	case PhaseAwaitingFollow:
		return "awaiting_follow"
	case PhaseRoundEnd:
		return "round_end"
	}
	return "unknown"
}

// Machine 记录当前出牌者、上一手牌和连续不出次数。
// 手牌由调用方持有，Play 只需要知道出牌后剩余张数。
type Machine struct {
	active     int
	lastPlay   rule.ParsedHand
	lastPlayer int
	passes     int
	winner     int
}

// New 由 leader 首先出牌
func New(leader int) *Machine {
	return &Machine{
		active:     leader,
		lastPlayer: -1,
		winner:     -1,
	}
}

// Phase 当前阶段
func (m *Machine) Phase() Phase {
	switch {
	case m.winner >= 0:
		return PhaseRoundEnd
	case m.Leading():
		return PhaseLeading
	}
	return PhaseAwaitingFollow
}

// Leading 当前出牌者可以自由出牌
func (m *Machine) Leading() bool {
	return m.lastPlay.IsEmpty() || m.lastPlayer == m.active
}

// Check 校验 player 能否打出 play，不改变状态
func (m *Machine) Check(player int, play rule.ParsedHand) error {
	if err := m.checkActor("play", player); err != nil {
		return err
	}
	if !play.Valid() {
		return apperrors.ErrInvalidCards
	}
	if !m.Leading() && !rule.CanBeat(play, m.lastPlay) {
		return apperrors.ErrCannotBeat
	}
	return nil
}

// Play 接受 player 的出牌，remaining 为出牌后手中剩余张数
func (m *Machine) Play(player int, play rule.ParsedHand, remaining int) error {
	if err := m.Check(player, play); err != nil {
		return err
	}

	m.lastPlay = play
	m.lastPlayer = player
	m.passes = 0

	if remaining == 0 {
		m.winner = player
		return nil
	}
	m.active = next(player)
	return nil
}

// Pass 不出。自由出牌时不能不出；连续两家不出后，出牌权回到最后出牌的玩家。
func (m *Machine) Pass(player int) error {
	if err := m.checkActor("pass", player); err != nil {
		return err
	}
	if m.Leading() {
		return apperrors.ErrMustPlay
	}

	m.passes++
	if m.passes >= 2 {
		m.lastPlay = rule.ParsedHand{}
		m.active = m.lastPlayer
		m.passes = 0
		return nil
	}
	m.active = next(player)
	return nil
}

func (m *Machine) checkActor(op string, player int) error {
	if player < 0 || player >= card.NumPlayers {
		return apperrors.Invariant(op, "seat %d out of range", player)
	}
	if m.winner >= 0 {
		return apperrors.ErrRoundOver
	}
	if player != m.active {
		return apperrors.ErrNotYourTurn
	}
	return nil
}

func next(player int) int {
	return (player + 1) % card.NumPlayers
}

func (m *Machine) Active() int { return m.active }
func (m *Machine) Passes() int { return m.passes }

// LastPlay 桌面上需要压过的牌，自由出牌时为空
func (m *Machine) LastPlay() rule.ParsedHand { return m.lastPlay }

// LastPlayer 最后出牌的座位，尚无人出牌时为 -1
func (m *Machine) LastPlayer() int { return m.lastPlayer }

// Winner 先出完牌的座位，未结束时为 -1
func (m *Machine) Winner() int { return m.winner }
