// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment state of a customer order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// StockVariant identifies which stock pool an order line was sold from.
type StockVariant string

const (
	StockVariantWithCase      StockVariant = "with_case"
	StockVariantCartridgeOnly StockVariant = "cartridge_only"
)

// Order represents a customer sale.
// TotalAmount is post-discount and includes the delivery fee.
type Order struct {
	ID             uuid.UUID
	Status         OrderStatus
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	DeliveryFee    decimal.Decimal
	TotalAmount    decimal.Decimal
	PaymentMethod  string
	Source         string
	Items          []OrderItem
	DeliveredAt    *time.Time // Set once the order reaches the customer
	CreatedAt      time.Time
}

// OrderItem is one sold line of an order.
type OrderItem struct {
	GameLine
	Variant StockVariant
}
