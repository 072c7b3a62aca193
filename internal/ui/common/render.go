package common

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/doudizhu/internal/game/card"
)

// Ordered 返回按显示顺序排列的副本，不修改原切片
func Ordered(cards []card.Card, descending bool) []card.Card {
	out := slices.Clone(cards)
	card.SortHand(out)
	if descending {
		slices.Reverse(out)
	}
	return out
}

// cardRows 渲染点数、花色两行
func cardRows(cards []card.Card) (string, string) {
	var rankStr, suitStr strings.Builder
	for _, c := range cards {
		style := cardStyle(c)
		rankStr.WriteString(style.Render(fmt.Sprintf("%-2s", c.Rank.String())))
		suit := c.Suit.String()
		if c.Rank.IsJoker() {
			suit = "王"
		}
		suitStr.WriteString(style.Render(fmt.Sprintf("%-2s", suit)))
	}
	return rankStr.String(), suitStr.String()
}

// RenderCards 单行输出牌面，用于出牌记录
func RenderCards(cards []card.Card) string {
	if len(cards) == 0 {
		return "(无)"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		style := BlackStyle
		if c.Color() == card.Red {
			style = RedStyle
		}
		parts[i] = style.Render(c.String())
	}
	return strings.Join(parts, " ")
}

// RenderHand 渲染玩家手牌，最后一行是出牌时输入的牌 ID
func RenderHand(hand []card.Card, isLandlord, descending bool) string {
	if len(hand) == 0 {
		return BoxStyle.Render("(无手牌)")
	}

	ordered := Ordered(hand, descending)
	rankRow, suitRow := cardRows(ordered)

	var idRow strings.Builder
	for _, c := range ordered {
		idRow.WriteString(lipgloss.NewStyle().Margin(0, 1).Render(fmt.Sprintf("%-3s", c.ID)))
	}

	title := fmt.Sprintf("我的手牌 %s (%d张)", RoleIcon(isLandlord), len(hand))
	content := lipgloss.JoinVertical(lipgloss.Center, title, rankRow, suitRow, idRow.String())
	return BoxStyle.Render(content)
}

// RenderBottom 渲染底牌，未揭晓时只显示占位
func RenderBottom(bottom []card.Card, revealed bool) string {
	if !revealed || len(bottom) == 0 {
		return BoxStyle.Render("底牌: (待揭晓)")
	}
	rankRow, suitRow := cardRows(Ordered(bottom, false))
	content := lipgloss.JoinVertical(lipgloss.Center, "底牌", rankRow, suitRow)
	return BoxStyle.Render(content)
}
