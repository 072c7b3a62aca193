// Package storage 保存跨局数据：累计得分、理牌顺序和最近的对局记录
package storage

import (
	"context"
	"fmt"
)

// CardOrder 手牌显示顺序
type CardOrder string

const (
	OrderAsc  CardOrder = "asc"  // 从小到大
	OrderDesc CardOrder = "desc" // 从大到小
)

// ParseCardOrder 解析理牌顺序
func ParseCardOrder(s string) (CardOrder, error) {
	switch CardOrder(s) {
	case OrderAsc, OrderDesc:
		return CardOrder(s), nil
	}
	return OrderAsc, fmt.Errorf("unknown card order %q", s)
}

// maxRecentRounds 最多保留的对局记录数
const maxRecentRounds = 50

// RoundRecord 一局的结算记录
type RoundRecord struct {
	RoundID  string `json:"round_id"`
	Mode     string `json:"mode"`
	Landlord int    `json:"landlord"`
	Winner   int    `json:"winner"`
	HumanWon bool   `json:"human_won"`
	Score    int    `json:"score"`
	Total    int    `json:"total"` // 结算后的累计得分
	PlayedAt int64  `json:"played_at"`
}

// Store 跨局数据存储
type Store interface {
	// ApplyScore 赢了加 score，输了减 score，累计得分不低于 0，返回新的累计得分
	ApplyScore(ctx context.Context, score int, won bool) (int, error)
	Total(ctx context.Context) (int, error)
	SetCardOrder(ctx context.Context, order CardOrder) error
	CardOrder(ctx context.Context) (CardOrder, error)
	RecordRound(ctx context.Context, rec RoundRecord) error
	// RecentRounds 最近的对局，新的在前
	RecentRounds(ctx context.Context, limit int) ([]RoundRecord, error)
}
