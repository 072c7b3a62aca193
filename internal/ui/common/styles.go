// Package common 终端界面的样式和牌面渲染
package common

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/doudizhu/internal/game/card"
)

const (
	LandlordIcon = "👑"
	FarmerIcon   = "🧑‍🌾"
)

var (
	RedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	BlackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// cardStyle 按牌的颜色选择样式
func cardStyle(c card.Card) lipgloss.Style {
	style := BlackStyle
	if c.Color() == card.Red {
		style = RedStyle
	}
	return style.Align(lipgloss.Center).Margin(0, 1)
}

// RoleIcon 地主或农民图标
func RoleIcon(landlord bool) string {
	if landlord {
		return LandlordIcon
	}
	return FarmerIcon
}

// TruncateName 按字符截断名字
func TruncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return name
}
