package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gamevault/backoffice/internal/domain/entity"
)

// OrderModel represents the orders table in the database.
type OrderModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Status         string          `gorm:"type:varchar(20);not null;index"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	DeliveryFee    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	PaymentMethod  string          `gorm:"type:varchar(50)"`
	Source         string          `gorm:"type:varchar(50)"`
	DeliveredAt    *time.Time      `gorm:"type:timestamp;index"`
	CreatedAt      time.Time       `gorm:"not null;index"`

	Items []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for the OrderModel.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel represents the order_items table in the database.
type OrderItemModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Variant string    `gorm:"type:varchar(20);not null;default:'with_case'"`
	GameLineColumns
}

// TableName returns the table name for the OrderItemModel.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToEntity converts an OrderModel and its loaded items to a domain Order entity.
func (m *OrderModel) ToEntity() *entity.Order {
	items := make([]entity.OrderItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = entity.OrderItem{
			GameLine: item.toEntity(),
			Variant:  entity.StockVariant(item.Variant),
		}
	}

	return &entity.Order{
		ID:             m.ID,
		Status:         entity.OrderStatus(m.Status),
		Subtotal:       m.Subtotal,
		DiscountAmount: m.DiscountAmount,
		DeliveryFee:    m.DeliveryFee,
		TotalAmount:    m.TotalAmount,
		PaymentMethod:  m.PaymentMethod,
		Source:         m.Source,
		Items:          items,
		DeliveredAt:    m.DeliveredAt,
		CreatedAt:      m.CreatedAt,
	}
}

// OrderFromEntity creates an OrderModel with items from a domain Order entity.
func OrderFromEntity(order *entity.Order) *OrderModel {
	items := make([]OrderItemModel, len(order.Items))
	for i, item := range order.Items {
		variant := item.Variant
		if variant == "" {
			variant = entity.StockVariantWithCase
		}
		items[i] = OrderItemModel{
			ID:              uuid.New(),
			OrderID:         order.ID,
			Variant:         string(variant),
			GameLineColumns: gameLineColumnsFromEntity(item.GameLine, i),
		}
	}

	return &OrderModel{
		ID:             order.ID,
		Status:         string(order.Status),
		Subtotal:       order.Subtotal,
		DiscountAmount: order.DiscountAmount,
		DeliveryFee:    order.DeliveryFee,
		TotalAmount:    order.TotalAmount,
		PaymentMethod:  order.PaymentMethod,
		Source:         order.Source,
		DeliveredAt:    order.DeliveredAt,
		CreatedAt:      order.CreatedAt,
		Items:          items,
	}
}
