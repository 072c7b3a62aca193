//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/doudizhu/internal/storage"
)

// MockStore 实现 storage.Store 的 mock
type MockStore struct {
	mock.Mock
}

var _ storage.Store = (*MockStore)(nil)

func (m *MockStore) ApplyScore(ctx context.Context, score int, won bool) (int, error) {
	args := m.Called(ctx, score, won)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) Total(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) SetCardOrder(ctx context.Context, order storage.CardOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockStore) CardOrder(ctx context.Context) (storage.CardOrder, error) {
	args := m.Called(ctx)
	return args.Get(0).(storage.CardOrder), args.Error(1)
}

func (m *MockStore) RecordRound(ctx context.Context, rec storage.RoundRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockStore) RecentRounds(ctx context.Context, limit int) ([]storage.RoundRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.RoundRecord), args.Error(1)
}
