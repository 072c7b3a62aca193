package rule

import "github.com/palemoky/doudizhu/internal/game/card"

// FindSmallestBeatingCards 找到能打过 opponentHand 的最小牌组
// 如果找不到，返回 nil
func FindSmallestBeatingCards(playerHand []card.Card, opponentHand ParsedHand) []card.Card {
	// 如果是新一轮，出最小的单牌
	if opponentHand.IsEmpty() {
		if len(playerHand) == 0 {
			return nil
		}
		smallest := playerHand[0]
		for _, c := range playerHand[1:] {
			if c.Rank < smallest.Rank {
				smallest = c
			}
		}
		return []card.Card{smallest}
	}

	// LegalPlays 已按牌型排序：同牌型在前，然后是炸弹，最后是王炸
	plays := LegalPlays(playerHand, opponentHand)
	if len(plays) == 0 {
		return nil
	}
	return plays[0].Cards
}
