package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/gamevault/backoffice/internal/domain/entity"
)

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

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func idPtr(id uuid.UUID) *uuid.UUID {
	return &id
}
