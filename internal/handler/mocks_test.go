package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/SlotHouse_Go/internal/domain"
)

// MockSlotsService mocks slots.Service
type MockSlotsService struct {
	mock.Mock
}

func (m *MockSlotsService) Settle(ctx context.Context, wager domain.Wager) (*domain.SettlementRecord, error) {
	args := m.Called(ctx, wager)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementRecord), args.Error(1)
}

func (m *MockSlotsService) GameConfig(id string) (domain.GameConfig, error) {
	args := m.Called(id)
	return args.Get(0).(domain.GameConfig), args.Error(1)
}

func (m *MockSlotsService) Games() []domain.GameConfig {
	args := m.Called()
	return args.Get(0).([]domain.GameConfig)
}

func (m *MockSlotsService) Balance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSlotsService) Transactions(ctx context.Context, userID string, limit, offset int) (*domain.Page[domain.TransactionEntry], error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.TransactionEntry]), args.Error(1)
}

func (m *MockSlotsService) GameHistory(ctx context.Context, userID string, limit, offset int) (*domain.Page[domain.GameHistoryEntry], error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.GameHistoryEntry]), args.Error(1)
}

func (m *MockSlotsService) OpenAccount(ctx context.Context, username string) (*domain.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockSlotsService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
