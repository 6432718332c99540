package dto

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gamevault/backoffice/internal/application/usecase/pricing"
	"github.com/gamevault/backoffice/internal/domain/entity"
	"github.com/gamevault/backoffice/internal/domain/valueobject"
)

// RentalQuoteRequest represents the request body for a rental quote.
type RentalQuoteRequest struct {
	GameID    string           `json:"game_id,omitempty"`
	GamePrice *decimal.Decimal `json:"game_price,omitempty"`
	Days      int              `json:"days"`
}

// TradeItemRequest is one game on either side of a trade quote.
type TradeItemRequest struct {
	GameID    string           `json:"game_id,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	SalePrice *decimal.Decimal `json:"sale_price,omitempty"`
	Quantity  int              `json:"quantity"`
}

// TradeQuoteRequest represents the request body for a trade quote.
type TradeQuoteRequest struct {
	GamesGiven    []TradeItemRequest `json:"games_given"`
	GamesReceived []TradeItemRequest `json:"games_received"`
}

// OrderItemRequest is one line of an order quote.
type OrderItemRequest struct {
	GameID    string           `json:"game_id,omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Quantity  int              `json:"quantity"`
	Variant   string           `json:"variant,omitempty"`
}

// DiscountRequest describes an order discount.
type DiscountRequest struct {
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// OrderQuoteRequest represents the request body for an order quote.
type OrderQuoteRequest struct {
	Items       []OrderItemRequest `json:"items"`
	Discount    *DiscountRequest   `json:"discount,omitempty"`
	DeliveryFee decimal.Decimal    `json:"delivery_fee"`
}

// RentalQuoteResponse represents a priced rental.
type RentalQuoteResponse struct {
	GameID      string  `json:"game_id,omitempty"`
	GameTitle   string  `json:"game_title,omitempty"`
	GamePrice   float64 `json:"game_price"`
	Days        int     `json:"days"`
	RentalFee   float64 `json:"rental_fee"`
	Deposit     float64 `json:"deposit"`
	TotalDue    float64 `json:"total_due"`
	AppliedPlan string  `json:"applied_plan"`
}

// TradeGameResponse is one valued game of a trade.
type TradeGameResponse struct {
	GameID        string   `json:"game_id,omitempty"`
	OriginalPrice float64  `json:"original_price"`
	SalePrice     *float64 `json:"sale_price,omitempty"`
	Quantity      int      `json:"quantity"`
}

// TradeQuoteResponse represents a valued trade.
type TradeQuoteResponse struct {
	GamesGiven     []TradeGameResponse `json:"games_given"`
	GamesReceived  []TradeGameResponse `json:"games_received"`
	ValueGiven     float64             `json:"value_given"`
	ValueReceived  float64             `json:"value_received"`
	CashDifference float64             `json:"cash_difference"`
	TradeFee       float64             `json:"trade_fee"`
	TradeType      string              `json:"trade_type"`
	AmountDue      float64             `json:"amount_due"`
}

// OrderLineResponse is one priced order line.
type OrderLineResponse struct {
	ID        string  `json:"id"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

// OrderQuoteResponse represents a priced order.
type OrderQuoteResponse struct {
	Items       []OrderLineResponse `json:"items"`
	Subtotal    float64             `json:"subtotal"`
	Discount    float64             `json:"discount"`
	DeliveryFee float64             `json:"delivery_fee"`
	Total       float64             `json:"total"`
}

// ToQuoteRentalInput converts the request to the use case input.
func (r RentalQuoteRequest) ToQuoteRentalInput() (pricing.QuoteRentalInput, error) {
	gameID, err := parseOptionalID(r.GameID)
	if err != nil {
		return pricing.QuoteRentalInput{}, err
	}
	return pricing.QuoteRentalInput{GameID: gameID, GamePrice: r.GamePrice, Days: r.Days}, nil
}

// ToQuoteTradeInput converts the request to the use case input.
func (r TradeQuoteRequest) ToQuoteTradeInput() (pricing.QuoteTradeInput, error) {
	given, err := toTradeItems(r.GamesGiven)
	if err != nil {
		return pricing.QuoteTradeInput{}, err
	}
	received, err := toTradeItems(r.GamesReceived)
	if err != nil {
		return pricing.QuoteTradeInput{}, err
	}
	return pricing.QuoteTradeInput{GamesGiven: given, GamesReceived: received}, nil
}

// ToQuoteOrderInput converts the request to the use case input.
// A missing variant prices the line from the with-case stock.
func (r OrderQuoteRequest) ToQuoteOrderInput() (pricing.QuoteOrderInput, error) {
	items := make([]pricing.OrderItemInput, 0, len(r.Items))
	for i, item := range r.Items {
		gameID, err := parseOptionalID(item.GameID)
		if err != nil {
			return pricing.QuoteOrderInput{}, fmt.Errorf("items[%d]: %w", i, err)
		}
		variant := entity.StockVariant(item.Variant)
		if variant == "" {
			variant = entity.StockVariantWithCase
		}
		items = append(items, pricing.OrderItemInput{
			GameID:    gameID,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Variant:   variant,
		})
	}

	discount := valueobject.NoDiscount()
	if r.Discount != nil && r.Discount.Type != "" {
		discount = valueobject.DiscountSpec{Kind: valueobject.DiscountKind(r.Discount.Type), Value: r.Discount.Value}
	}

	return pricing.QuoteOrderInput{Items: items, Discount: discount, DeliveryFee: r.DeliveryFee}, nil
}

// ToRentalQuoteResponse converts a rental quote output to its response DTO.
func ToRentalQuoteResponse(output *pricing.QuoteRentalOutput) RentalQuoteResponse {
	resp := RentalQuoteResponse{
		GameTitle:   output.GameTitle,
		GamePrice:   money(output.Quote.GamePrice),
		Days:        output.Quote.Days,
		RentalFee:   money(output.Quote.RentalFee),
		Deposit:     money(output.Quote.Deposit),
		TotalDue:    money(output.Quote.TotalDue),
		AppliedPlan: output.Quote.AppliedPlan,
	}
	if output.GameID != nil {
		resp.GameID = output.GameID.String()
	}
	return resp
}

// ToTradeQuoteResponse converts a trade quote output to its response DTO.
func ToTradeQuoteResponse(output *pricing.QuoteTradeOutput) TradeQuoteResponse {
	return TradeQuoteResponse{
		GamesGiven:     toTradeGameResponses(output.GamesGiven),
		GamesReceived:  toTradeGameResponses(output.GamesReceived),
		ValueGiven:     money(output.Valuation.ValueGiven),
		ValueReceived:  money(output.Valuation.ValueReceived),
		CashDifference: money(output.Valuation.CashDifference),
		TradeFee:       money(output.Valuation.TradeFee),
		TradeType:      string(output.Valuation.TradeType),
		AmountDue:      money(output.AmountDue),
	}
}

// ToOrderQuoteResponse converts an order quote output to its response DTO.
func ToOrderQuoteResponse(output *pricing.QuoteOrderOutput) OrderQuoteResponse {
	items := make([]OrderLineResponse, len(output.Items))
	for i, item := range output.Items {
		items[i] = OrderLineResponse{
			ID:        item.ID,
			UnitPrice: money(item.UnitPrice),
			Quantity:  item.Quantity,
			LineTotal: money(valueobject.LineTotal(item)),
		}
	}
	return OrderQuoteResponse{
		Items:       items,
		Subtotal:    money(output.Pricing.Subtotal),
		Discount:    money(output.Pricing.Discount),
		DeliveryFee: money(output.Pricing.DeliveryFee),
		Total:       money(output.Pricing.Total),
	}
}

func toTradeItems(items []TradeItemRequest) ([]pricing.TradeItemInput, error) {
	out := make([]pricing.TradeItemInput, 0, len(items))
	for i, item := range items {
		gameID, err := parseOptionalID(item.GameID)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, pricing.TradeItemInput{
			GameID:    gameID,
			Price:     item.Price,
			SalePrice: item.SalePrice,
			Quantity:  item.Quantity,
		})
	}
	return out, nil
}

func toTradeGameResponses(games []valueobject.TradeGameValue) []TradeGameResponse {
	out := make([]TradeGameResponse, len(games))
	for i, g := range games {
		out[i] = TradeGameResponse{
			GameID:        g.GameID,
			OriginalPrice: money(g.OriginalPrice),
			Quantity:      g.Quantity,
		}
		if g.SalePrice != nil {
			sale := money(*g.SalePrice)
			out[i].SalePrice = &sale
		}
	}
	return out
}

func parseOptionalID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid game_id %q: %w", raw, err)
	}
	return &id, nil
}

func money(amount decimal.Decimal) float64 {
	f, _ := amount.Float64()
	return f
}
