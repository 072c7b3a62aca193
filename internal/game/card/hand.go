package card

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortHand 按点数从小到大排序，同点数按花色排序
func SortHand(hand []Card) {
	slices.SortFunc(hand, compareCards)
}

func compareCards(a, b Card) int {
	if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
		return c
	}
	return cmp.Compare(a.Suit, b.Suit)
}

// findRocketInHand 查找手牌中的王炸
func findRocketInHand(hand []Card) ([]Card, bool) {
	var black, red *Card
	for i := range hand {
		if hand[i].Rank == RankBlackJoker {
			black = &hand[i]
		}
		if hand[i].Rank == RankRedJoker {
			red = &hand[i]
		}
	}
	if black != nil && red != nil {
		return []Card{*black, *red}, true
	}
	return nil, false
}

// parseInputRanks 解析输入字符串为 Rank 计数
func parseInputRanks(input string) (map[Rank]int, error) {
	inputRanks := make(map[Rank]int)
	cleanInput := strings.ReplaceAll(strings.ToUpper(input), "10", "T")

	for _, char := range cleanInput {
		if char == ' ' || char == ',' {
			continue
		}
		rank, err := RankFromChar(char)
		if err != nil {
			return nil, err
		}
		inputRanks[rank]++
	}
	if len(inputRanks) == 0 {
		return nil, fmt.Errorf("没有选择任何牌")
	}
	return inputRanks, nil
}

// RankCounts 统计手牌中各 Rank 的数量
func RankCounts(hand []Card) map[Rank]int {
	counts := make(map[Rank]int)
	for _, c := range hand {
		counts[c.Rank]++
	}
	return counts
}

// extractCards 从手牌中按点数取出指定数量的牌，优先取排在前面的牌
func extractCards(hand []Card, inputRanks map[Rank]int) []Card {
	need := make(map[Rank]int, len(inputRanks))
	for r, n := range inputRanks {
		need[r] = n
	}
	var result []Card
	for _, c := range hand {
		if need[c.Rank] > 0 {
			result = append(result, c)
			need[c.Rank]--
		}
	}
	SortHand(result)
	return result
}

// FindCardsInHand 从手牌中根据输入字符串找出对应的牌
func FindCardsInHand(hand []Card, input string) ([]Card, error) {
	input = strings.ToUpper(strings.TrimSpace(input))

	// 处理王炸特殊情况
	if input == "JOKER" {
		if cards, ok := findRocketInHand(hand); ok {
			return cards, nil
		}
		return nil, fmt.Errorf("你没有王炸")
	}

	inputRanks, err := parseInputRanks(input)
	if err != nil {
		return nil, err
	}

	// 检查手牌是否足够
	handCounts := RankCounts(hand)
	for r, count := range inputRanks {
		if handCounts[r] < count {
			return nil, fmt.Errorf("你的 %s 不够", r.String())
		}
	}

	return extractCards(hand, inputRanks), nil
}

// FindByIDs 按 ID 从手牌中取牌。ID 不存在或重复时返回错误。
func FindByIDs(hand []Card, ids []string) ([]Card, error) {
	index := make(map[string]Card, len(hand))
	for _, c := range hand {
		index[c.ID] = c
	}
	seen := make(map[string]struct{}, len(ids))
	result := make([]Card, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("重复的牌: %s", id)
		}
		seen[id] = struct{}{}
		c, ok := index[id]
		if !ok {
			return nil, fmt.Errorf("手牌中没有 %s", id)
		}
		result = append(result, c)
	}
	return result, nil
}

// IDs 返回牌的 ID 列表
func IDs(cards []Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

// RemoveCards 从手牌中移除指定的牌（按 ID 匹配）
func RemoveCards(hand, toRemove []Card) []Card {
	drop := make(map[string]struct{}, len(toRemove))
	for _, c := range toRemove {
		drop[c.ID] = struct{}{}
	}
	result := make([]Card, 0, len(hand))
	for _, hCard := range hand {
		if _, ok := drop[hCard.ID]; !ok {
			result = append(result, hCard)
		}
	}
	return result
}

// FormatCards 以空格分隔输出牌面
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
