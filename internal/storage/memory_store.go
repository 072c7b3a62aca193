package storage

import (
	"context"
	"sync"

	"github.com/palemoky/doudizhu/internal/game/score"
)

// MemoryStore 进程内存储，未启用 Redis 时使用
type MemoryStore struct {
	mu     sync.Mutex
	total  int
	order  CardOrder
	rounds []RoundRecord // 新的在前
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{order: OrderAsc}
}

func (ms *MemoryStore) ApplyScore(_ context.Context, s int, won bool) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.total = score.ApplyToTotal(ms.total, s, won)
	return ms.total, nil
}

func (ms *MemoryStore) Total(context.Context) (int, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.total, nil
}

func (ms *MemoryStore) SetCardOrder(_ context.Context, order CardOrder) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.order = order
	return nil
}

func (ms *MemoryStore) CardOrder(context.Context) (CardOrder, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.order, nil
}

func (ms *MemoryStore) RecordRound(_ context.Context, rec RoundRecord) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.rounds = append([]RoundRecord{rec}, ms.rounds...)
	if len(ms.rounds) > maxRecentRounds {
		ms.rounds = ms.rounds[:maxRecentRounds]
	}
	return nil
}

func (ms *MemoryStore) RecentRounds(_ context.Context, limit int) ([]RoundRecord, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	n := min(limit, len(ms.rounds))
	if n <= 0 {
		return nil, nil
	}
	out := make([]RoundRecord, n)
	copy(out, ms.rounds[:n])
	return out, nil
}
