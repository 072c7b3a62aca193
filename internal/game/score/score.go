// Package score 结算：炸弹翻倍、春天与反春天
package score

import (
	"github.com/palemoky/doudizhu/internal/game/card"
	"github.com/palemoky/doudizhu/internal/game/rule"
)

// Tracker 记录一局中影响结算的数据
type Tracker struct {
	Landlord      int                   `json:"landlord"`
	Bombs         int                   `json:"bombs"` // 炸弹与王炸总数
	Played        [card.NumPlayers]bool `json:"played"`
	LandlordPlays int                   `json:"landlord_plays"`
}

// NewTracker landlord 为 -1 表示无地主模式
func NewTracker(landlord int) Tracker {
	return Tracker{Landlord: landlord}
}

// Record 记录一次被接受的出牌
func (t *Tracker) Record(player int, h rule.ParsedHand) {
	t.Played[player] = true
	if h.Type.IsBomb() {
		t.Bombs++
	}
	if player == t.Landlord {
		t.LandlordPlays++
	}
}

// Result 一局的结算结果
type Result struct {
	Winner      int  `json:"winner"`
	Landlord    int  `json:"landlord"`
	LandlordWin bool `json:"landlord_win"`
	Base        int  `json:"base"`
	Bombs       int  `json:"bombs"`
	Locked      int  `json:"locked"` // 一张牌都没出的输家数
	Spring      bool `json:"spring"`
	AntiSpring  bool `json:"anti_spring"`
	Multiplier  int  `json:"multiplier"`
	Score       int  `json:"score"`
}

// Settle 按赢家和最高叫分结算
func Settle(t Tracker, winner, highestBid int) Result {
	r := Result{
		Winner:     winner,
		Landlord:   t.Landlord,
		Base:       max(1, highestBid),
		Bombs:      t.Bombs,
		Multiplier: 1 << t.Bombs,
	}

	for p := range card.NumPlayers {
		if p != winner && !t.Played[p] {
			r.Locked++
		}
	}

	if t.Landlord >= 0 {
		r.LandlordWin = winner == t.Landlord
		r.Spring = r.LandlordWin && r.Locked == card.NumPlayers-1
		r.AntiSpring = !r.LandlordWin && t.LandlordPlays == 1
		if r.Spring || r.AntiSpring {
			r.Multiplier *= 2
		}
	}

	r.Score = r.Base * r.Multiplier
	return r
}

// Won 判断 seat 所在一方是否获胜
func (r Result) Won(seat int) bool {
	if r.Landlord < 0 {
		return seat == r.Winner
	}
	return (seat == r.Landlord) == r.LandlordWin
}

// ApplyToTotal 更新累计得分，输了扣分但不低于 0
func ApplyToTotal(total, score int, won bool) int {
	if won {
		return total + score
	}
	return max(0, total-score)
}
