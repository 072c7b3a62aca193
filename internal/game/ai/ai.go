// Package ai 电脑玩家的简单决策，纯函数，不包含任何延迟
package ai

import (
	"github.com/palemoky/doudizhu/internal/game/bidding"
	"github.com/palemoky/doudizhu/internal/game/card"
	"github.com/palemoky/doudizhu/internal/game/rule"
)

// HandStrength 估算手牌强度：对子 1，三张 2，炸弹 4，双王 5
func HandStrength(hand []card.Card) int {
	counts := card.RankCounts(hand)
	strength := 0
	for _, n := range counts {
		switch n {
		case 2:
			strength++
		case 3:
			strength += 2
		case 4:
			strength += 4
		}
	}
	if counts[card.RankBlackJoker] > 0 && counts[card.RankRedJoker] > 0 {
		strength += 5
	}
	return strength
}

// ChooseBid 按手牌强度叫分，不高于当前最高分时不叫
func ChooseBid(hand []card.Card, highest int) int {
	strength := HandStrength(hand)
	bid := 0
	switch {
	case strength >= 6:
		bid = bidding.MaxBid
	case strength >= 4:
		bid = 2
	case strength >= 2:
		bid = 1
	}
	if bid <= highest {
		return 0
	}
	return bid
}

// ChoosePlay 自由出牌时出最小单张；跟牌时出最小的同牌型，其次最小炸弹，再次王炸。
// 返回 nil 表示不出。
func ChoosePlay(hand []card.Card, lastPlay rule.ParsedHand) []card.Card {
	return rule.FindSmallestBeatingCards(hand, lastPlay)
}
