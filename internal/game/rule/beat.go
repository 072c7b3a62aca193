package rule

import (
	"fmt"

	"github.com/palemoky/doudizhu/internal/apperrors"
	"github.com/palemoky/doudizhu/internal/game/card"
)

func errInvalidShape(h ParsedHand) error {
	if h.Type == Pass {
		return fmt.Errorf("不能出空牌: %w", apperrors.ErrInvalidCards)
	}
	return fmt.Errorf("不支持的牌型 %s: %w", card.FormatCards(h.Cards), apperrors.ErrInvalidCards)
}

// CanBeat 判断 newHand 是否能大过 lastHand
func CanBeat(newHand, lastHand ParsedHand) bool {
	if !newHand.Valid() {
		return false
	}

	// 新一轮，任何合法牌型都可以出
	if lastHand.IsEmpty() {
		return true
	}

	// 王炸最大，且没有牌能大过王炸
	if lastHand.Type == Rocket {
		return false
	}
	if newHand.Type == Rocket {
		return true
	}

	// 炸弹可以大过任何非炸弹和非王炸的牌
	if newHand.Type == Bomb && lastHand.Type != Bomb {
		return true
	}

	// 如果牌型不同 (且我不是炸弹)，不能出
	if newHand.Type != lastHand.Type {
		return false
	}

	// 张数必须一致，飞机的组数也必须一致
	if newHand.Length != lastHand.Length || newHand.Groups != lastHand.Groups {
		return false
	}

	return newHand.KeyRank > lastHand.KeyRank
}

// CanBeatWithHand 检查一个玩家的整手牌中是否存在任何可以打过 opponentHand 的组合
func CanBeatWithHand(playerHand []card.Card, opponentHand ParsedHand) bool {
	// 如果是新一轮，只要有牌就能出
	if opponentHand.IsEmpty() {
		return len(playerHand) > 0
	}
	return len(LegalPlays(playerHand, opponentHand)) > 0
}
