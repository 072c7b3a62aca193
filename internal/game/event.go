package game

import (
	"github.com/palemoky/doudizhu/internal/game/card"
)

// EventKind 游戏日志事件类型
type EventKind string

const (
	EventDeal       EventKind = "deal"
	EventBid        EventKind = "bid"
	EventRedeal     EventKind = "redeal"
	EventLandlord   EventKind = "landlord"
	EventPlay       EventKind = "play"
	EventPass       EventKind = "pass"
	EventTrickReset EventKind = "trick_reset"
	EventRoundEnd   EventKind = "round_end"
)

// Event 一条游戏日志，每次状态变化后追加
type Event struct {
	RoundID string      `json:"round_id"`
	Seq     int         `json:"seq"`
	Kind    EventKind   `json:"kind"`
	Player  int         `json:"player"` // 无关座位时为 -1
	Cards   []card.Card `json:"cards,omitempty"`
	Amount  int         `json:"amount,omitempty"`
	Message string      `json:"message"`
}

// Subscriber 在状态变化之后同步收到事件，可以在回调中再调用引擎
type Subscriber func(Event)

// Subscribe 注册事件回调
func (e *Engine) Subscribe(fn Subscriber) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subscribers = append(e.subscribers, fn)
}

// Events 返回本局全部日志
func (e *Engine) Events() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Event, len(e.events))
	copy(out, e.events)
	return out
}

// emit 追加日志，等解锁后再通知订阅者。调用方必须持有锁。
func (e *Engine) emit(kind EventKind, player int, cards []card.Card, amount int, message string) {
	ev := Event{
		RoundID: e.roundID,
		Seq:     len(e.events) + 1,
		Kind:    kind,
		Player:  player,
		Cards:   cloneCards(cards),
		Amount:  amount,
		Message: message,
	}
	e.events = append(e.events, ev)
	e.pending = append(e.pending, ev)
}

// do 在锁内执行 fn，然后在锁外分发产生的事件
func (e *Engine) do(fn func() error) error {
	e.mu.Lock()
	err := fn()
	pending := e.pending
	e.pending = nil
	subscribers := e.subscribers
	e.mu.Unlock()

	for _, ev := range pending {
		for _, fn := range subscribers {
			fn(ev)
		}
	}
	return err
}

func cloneCards(cards []card.Card) []card.Card {
	if len(cards) == 0 {
		return nil
	}
	out := make([]card.Card, len(cards))
	copy(out, cards)
	return out
}
