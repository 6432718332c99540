package financials

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gamevault/backoffice/internal/domain/entity"
	"github.com/gamevault/backoffice/internal/domain/valueobject"
)

// Normalizer turns realized source records into financial events.
// Records that are not in their terminal status, or that lack the milestone date, produce no event.
type Normalizer struct {
	costPrices map[uuid.UUID]decimal.Decimal
}

// NewNormalizer builds a normalizer that prices trade costs against the given catalog.
func NewNormalizer(catalog []*entity.Game) *Normalizer {
	costPrices := make(map[uuid.UUID]decimal.Decimal, len(catalog))
	for _, game := range catalog {
		if game == nil {
			continue
		}
		costPrices[game.ID] = game.CostPrice
	}
	return &Normalizer{costPrices: costPrices}
}

// Normalize converts every realized record of the snapshot, in source order:
// buyings, orders, rentals, then trades.
func (n *Normalizer) Normalize(snapshot *Snapshot) []entity.FinancialEvent {
	if snapshot == nil {
		return nil
	}

	events := make([]entity.FinancialEvent, 0,
		len(snapshot.Buyings)+len(snapshot.Orders)+len(snapshot.Rentals)+len(snapshot.Trades))

	for _, buying := range snapshot.Buyings {
		if event, ok := n.FromBuying(buying); ok {
			events = append(events, event)
		}
	}
	for _, order := range snapshot.Orders {
		if event, ok := n.FromOrder(order); ok {
			events = append(events, event)
		}
	}
	for _, rental := range snapshot.Rentals {
		if event, ok := n.FromRental(rental); ok {
			events = append(events, event)
		}
	}
	for _, trade := range snapshot.Trades {
		if event, ok := n.FromTrade(trade); ok {
			events = append(events, event)
		}
	}

	return events
}

// FromBuying emits a cost event dated at completion.
func (n *Normalizer) FromBuying(buying *entity.Buying) (entity.FinancialEvent, bool) {
	if buying == nil || buying.Status != entity.BuyingStatusCompleted || !hasDate(buying.CompletedAt) {
		return entity.FinancialEvent{}, false
	}

	return entity.FinancialEvent{
		SourceType: entity.SourceTypeBuying,
		SourceID:   buying.ID,
		OccurredAt: *buying.CompletedAt,
		Revenue:    decimal.Zero,
		Cost:       buying.TotalCost,
		Category:   entity.EventCategoryCost,
		Platforms:  linePlatforms(buying.Items),
	}, true
}

// FromOrder emits a sale event for the order's final total, dated at delivery.
func (n *Normalizer) FromOrder(order *entity.Order) (entity.FinancialEvent, bool) {
	if order == nil || order.Status != entity.OrderStatusDelivered || !hasDate(order.DeliveredAt) {
		return entity.FinancialEvent{}, false
	}

	lines := make([]entity.GameLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, item.GameLine)
	}

	return entity.FinancialEvent{
		SourceType: entity.SourceTypeOrder,
		SourceID:   order.ID,
		OccurredAt: *order.DeliveredAt,
		Revenue:    order.TotalAmount,
		Cost:       decimal.Zero,
		Category:   entity.EventCategorySale,
		Platforms:  linePlatforms(lines),
	}, true
}

// FromRental emits the snapshotted rental fee as revenue, dated at the last status change.
// Deposits are liabilities and never count as revenue.
func (n *Normalizer) FromRental(rental *entity.Rental) (entity.FinancialEvent, bool) {
	if rental == nil || rental.Status != entity.RentalStatusCompleted || !hasDate(rental.UpdatedAt) {
		return entity.FinancialEvent{}, false
	}

	var platforms []string
	if rental.Platform != "" {
		platforms = []string{rental.Platform}
	}

	return entity.FinancialEvent{
		SourceType: entity.SourceTypeRental,
		SourceID:   rental.ID,
		OccurredAt: *rental.UpdatedAt,
		Revenue:    rental.RentalFee,
		Cost:       decimal.Zero,
		Category:   entity.EventCategoryRental,
		Platforms:  platforms,
	}, true
}

// FromTrade emits cash difference plus fee as revenue and the catalog cost of the
// games that left the store as cost. Games missing from the catalog cost nothing.
func (n *Normalizer) FromTrade(trade *entity.Trade) (entity.FinancialEvent, bool) {
	if trade == nil || trade.Status != entity.TradeStatusCompleted || !hasDate(trade.CompletedAt) {
		return entity.FinancialEvent{}, false
	}

	return entity.FinancialEvent{
		SourceType: entity.SourceTypeTrade,
		SourceID:   trade.ID,
		OccurredAt: *trade.CompletedAt,
		Revenue:    trade.CashDifference.Add(trade.TradeFee),
		Cost:       n.tradeCost(trade),
		Category:   entity.EventCategoryTrade,
		Platforms:  linePlatforms(trade.Lines()),
	}, true
}

func (n *Normalizer) tradeCost(trade *entity.Trade) decimal.Decimal {
	cost := decimal.Zero
	for _, line := range trade.GamesReceived {
		if line.Quantity < 1 {
			continue
		}
		costPrice, ok := n.costPrices[line.GameID]
		if !ok {
			continue
		}
		cost = cost.Add(valueobject.LineTotal(valueobject.LineItem{
			ID:        line.GameID.String(),
			UnitPrice: costPrice,
			Quantity:  line.Quantity,
		}))
	}
	return cost
}

// MatchesPlatform reports whether any platform carried by the event matches the filter.
func MatchesPlatform(event entity.FinancialEvent, platform string) bool {
	if platform == "" {
		return true
	}
	for _, p := range event.Platforms {
		if entity.PlatformMatches(p, platform) {
			return true
		}
	}
	return false
}

func hasDate(t *time.Time) bool {
	return t != nil && !t.IsZero()
}

func linePlatforms(lines []entity.GameLine) []string {
	var platforms []string
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if line.Platform == "" {
			continue
		}
		if _, ok := seen[line.Platform]; ok {
			continue
		}
		seen[line.Platform] = struct{}{}
		platforms = append(platforms, line.Platform)
	}
	return platforms
}
