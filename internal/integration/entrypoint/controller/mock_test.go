package controller

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/gamevault/backoffice/internal/application/adapter"
	"github.com/gamevault/backoffice/internal/domain/entity"
)

type mockFinancialsRepository struct {
	mock.Mock
}

func (m *mockFinancialsRepository) ListBuyings(ctx context.Context, filter adapter.SourceFilter) ([]*entity.Buying, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Buying), args.Error(1)
}

func (m *mockFinancialsRepository) ListOrders(ctx context.Context, filter adapter.SourceFilter) ([]*entity.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *mockFinancialsRepository) ListRentals(ctx context.Context, filter adapter.SourceFilter) ([]*entity.Rental, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Rental), args.Error(1)
}

func (m *mockFinancialsRepository) ListTrades(ctx context.Context, filter adapter.SourceFilter) ([]*entity.Trade, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Trade), args.Error(1)
}

type mockGameRepository struct {
	mock.Mock
}

func (m *mockGameRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (m *mockGameRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Game, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Game), args.Error(1)
}

func (m *mockGameRepository) FindAll(ctx context.Context) ([]*entity.Game, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Game), args.Error(1)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func init() {
	gin.SetMode(gin.TestMode)
}
