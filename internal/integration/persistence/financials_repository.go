// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/gamevault/backoffice/internal/application/adapter"
	"github.com/gamevault/backoffice/internal/domain/entity"
	"github.com/gamevault/backoffice/internal/integration/persistence/model"
)

// financialsRepository implements the adapter.FinancialsRepository interface.
type financialsRepository struct {
	db *gorm.DB
}

// NewFinancialsRepository creates a new financials repository instance.
func NewFinancialsRepository(db *gorm.DB) adapter.FinancialsRepository {
	return &financialsRepository{
		db: db,
	}
}

// orderedItems preloads item rows in their original line order.
func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// applySourceFilter narrows a query by status and by the given milestone column.
func applySourceFilter(query *gorm.DB, filter adapter.SourceFilter, dateColumn string) *gorm.DB {
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.From != nil {
		query = query.Where(dateColumn+" >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where(dateColumn+" <= ?", *filter.To)
	}
	return query
}

// ListBuyings retrieves buyings with items. Dates filter on completed_at.
func (r *financialsRepository) ListBuyings(ctx context.Context, filter adapter.SourceFilter) ([]*entity.Buying, error) {
	var buyingModels []model.BuyingModel

	query := r.db.WithContext(ctx).Model(&model.BuyingModel{}).Preload("Items", orderedItems)
	query = applySourceFilter(query, filter, "completed_at")

	if err := query.Order("completed_at ASC").Order("created_at ASC").Find(&buyingModels).Error; err != nil {
		return nil, fmt.Errorf("failed to query buyings: %w", err)
	}

	buyings := make([]*entity.Buying, len(buyingModels))
	for i := range buyingModels {
		buyings[i] = buyingModels[i].ToEntity()
	}
	return buyings, nil
}

// ListOrders retrieves orders with items. Dates filter on created_at.
func (r *financialsRepository) ListOrders(ctx context.Context, filter adapter.SourceFilter) ([]*entity.Order, error) {
	var orderModels []model.OrderModel

	query := r.db.WithContext(ctx).Model(&model.OrderModel{}).Preload("Items", orderedItems)
	query = applySourceFilter(query, filter, "created_at")

	if err := query.Order("created_at ASC").Order("id ASC").Find(&orderModels).Error; err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	orders := make([]*entity.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToEntity()
	}
	return orders, nil
}

// ListRentals retrieves rentals. Dates filter on updated_at.
func (r *financialsRepository) ListRentals(ctx context.Context, filter adapter.SourceFilter) ([]*entity.Rental, error) {
	var rentalModels []model.RentalModel

	query := applySourceFilter(r.db.WithContext(ctx).Model(&model.RentalModel{}), filter, "updated_at")

	if err := query.Order("updated_at ASC").Order("created_at ASC").Find(&rentalModels).Error; err != nil {
		return nil, fmt.Errorf("failed to query rentals: %w", err)
	}

	rentals := make([]*entity.Rental, len(rentalModels))
	for i := range rentalModels {
		rentals[i] = rentalModels[i].ToEntity()
	}
	return rentals, nil
}

// ListTrades retrieves trades with both sides of items. Dates filter on completed_at.
func (r *financialsRepository) ListTrades(ctx context.Context, filter adapter.SourceFilter) ([]*entity.Trade, error) {
	var tradeModels []model.TradeModel

	query := r.db.WithContext(ctx).Model(&model.TradeModel{}).Preload("Items", orderedItems)
	query = applySourceFilter(query, filter, "completed_at")

	if err := query.Order("completed_at ASC").Order("created_at ASC").Find(&tradeModels).Error; err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}

	trades := make([]*entity.Trade, len(tradeModels))
	for i := range tradeModels {
		trades[i] = tradeModels[i].ToEntity()
	}
	return trades, nil
}
