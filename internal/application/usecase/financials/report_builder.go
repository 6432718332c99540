package financials

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gamevault/backoffice/internal/domain/entity"
	"github.com/gamevault/backoffice/internal/domain/valueobject"
)

const (
	// DefaultProjectionWindowDays is the trailing window projections extrapolate from.
	DefaultProjectionWindowDays = 30
	// ProjectionHorizonDays is the span projected figures cover, whatever the trailing window.
	ProjectionHorizonDays = 30
	// DefaultTopGamesLimit is the number of top games reported when the request sets none.
	DefaultTopGamesLimit = 10
	// UnknownBreakdownLabel labels orders recorded without a payment method or source.
	UnknownBreakdownLabel = "Unknown"
)

// DefaultCartridgeOnlyDiscount is the fixed amount taken off the base price for
// cartridge-only stock without an explicit price.
var DefaultCartridgeOnlyDiscount = decimal.NewFromInt(100)

// BuilderConfig configures a ReportBuilder.
type BuilderConfig struct {
	Location              *time.Location
	CartridgeOnlyDiscount decimal.Decimal
	ProjectionWindowDays  int
	DefaultTopGames       int
}

// ReportBuilder computes reports from snapshots. It holds no mutable state,
// so the same snapshot and request always produce the same report.
type ReportBuilder struct {
	loc                   *time.Location
	cartridgeOnlyDiscount decimal.Decimal
	windowDays            int
	defaultTopGames       int
}

// NewReportBuilder creates a new ReportBuilder, filling unset config with defaults.
func NewReportBuilder(cfg BuilderConfig) *ReportBuilder {
	b := &ReportBuilder{
		loc:                   cfg.Location,
		cartridgeOnlyDiscount: cfg.CartridgeOnlyDiscount,
		windowDays:            cfg.ProjectionWindowDays,
		defaultTopGames:       cfg.DefaultTopGames,
	}
	if b.loc == nil {
		b.loc = time.UTC
	}
	if b.cartridgeOnlyDiscount.IsNegative() {
		b.cartridgeOnlyDiscount = decimal.Zero
	}
	if b.windowDays <= 0 {
		b.windowDays = DefaultProjectionWindowDays
	}
	if b.defaultTopGames <= 0 {
		b.defaultTopGames = DefaultTopGamesLimit
	}
	return b
}

// Location returns the location reports are bucketed in.
func (b *ReportBuilder) Location() *time.Location {
	return b.loc
}

// Build computes the full report for the snapshot.
// Summary, series and breakdowns honor the date range; projections and inventory
// look at all records up to AsOf.
func (b *ReportBuilder) Build(snapshot *Snapshot, req ReportRequest) *Report {
	if snapshot == nil {
		snapshot = &Snapshot{}
	}
	if !req.Granularity.IsValid() {
		req.Granularity = GranularityMonth
	}
	platform := strings.TrimSpace(req.Platform)

	var rng *DateRange
	if req.DateRange != nil {
		r := NewDateRange(req.DateRange.Start.In(b.loc), req.DateRange.End.In(b.loc), b.loc)
		rng = &r
	}

	normalizer := NewNormalizer(snapshot.Games)
	var platformEvents, rangeEvents []entity.FinancialEvent
	for _, event := range normalizer.Normalize(snapshot) {
		if !MatchesPlatform(event, platform) {
			continue
		}
		platformEvents = append(platformEvents, event)
		if rng == nil || rng.Contains(event.OccurredAt) {
			rangeEvents = append(rangeEvents, event)
		}
	}

	delivered := b.deliveredOrders(snapshot.Orders, platform, rng)

	summary := b.buildSummary(rangeEvents, delivered, platform, req.OperatingExpenses)
	costs := b.buildCostBreakdown(snapshot.Buyings, platform, rng, summary)

	return &Report{
		Granularity:      req.Granularity,
		DateRange:        rng,
		Platform:         platform,
		Summary:          summary,
		TimeSeries:       AggregateEvents(rangeEvents, req.Granularity, b.loc, rng),
		RevenueBreakdown: b.buildRevenueBreakdown(snapshot.Orders, delivered, platform, rng),
		CostBreakdown:    costs,
		TopGames:         b.buildTopGames(delivered, snapshot.Games, platform, b.topGamesLimit(req.TopGames)),
		Inventory:        b.buildInventory(snapshot.Games, platform),
		Projections:      b.buildProjections(platformEvents, snapshot, platform, req.AsOf),
	}
}

func (b *ReportBuilder) topGamesLimit(requested int) int {
	if requested <= 0 {
		return b.defaultTopGames
	}
	return requested
}

func (b *ReportBuilder) buildSummary(events []entity.FinancialEvent, delivered []*entity.Order, platform string, operatingExpenses decimal.Decimal) Summary {
	s := Summary{
		TotalRevenue:  decimal.Zero,
		RentalRevenue: decimal.Zero,
		TradeRevenue:  decimal.Zero,
		TotalCosts:    decimal.Zero,
		TradeCosts:    decimal.Zero,
	}

	for _, event := range events {
		switch event.Category {
		case entity.EventCategorySale:
			s.TotalRevenue = s.TotalRevenue.Add(event.Revenue)
			s.OrderCount++
		case entity.EventCategoryRental:
			s.RentalRevenue = s.RentalRevenue.Add(event.Revenue)
			s.RentalCount++
		case entity.EventCategoryTrade:
			s.TradeRevenue = s.TradeRevenue.Add(event.Revenue)
			s.TradeCosts = s.TradeCosts.Add(event.Cost)
			s.TradeCount++
		case entity.EventCategoryCost:
			s.TotalCosts = s.TotalCosts.Add(event.Cost)
			s.BuyingCount++
		}
	}

	for _, order := range delivered {
		s.UnitsSold += matchingUnits(order, platform)
	}

	if operatingExpenses.IsNegative() {
		operatingExpenses = decimal.Zero
	}

	s.TotalRevenueWithRentalsAndTrades = s.TotalRevenue.Add(s.RentalRevenue).Add(s.TradeRevenue)
	s.GrossProfit = valueobject.Profit(s.TotalRevenueWithRentalsAndTrades, s.TotalCosts.Add(s.TradeCosts))
	s.OperatingExpenses = operatingExpenses
	s.NetProfit = s.GrossProfit.Sub(operatingExpenses)
	s.GrossMargin = valueobject.Margin(s.GrossProfit, s.TotalRevenueWithRentalsAndTrades)
	s.NetMargin = valueobject.Margin(s.NetProfit, s.TotalRevenueWithRentalsAndTrades)
	s.Status = profitStatus(s.GrossProfit)

	s.AverageOrderValue = decimal.Zero
	if s.OrderCount > 0 {
		s.AverageOrderValue = s.TotalRevenue.Div(decimal.NewFromInt(int64(s.OrderCount)))
	}

	return s
}

func (b *ReportBuilder) buildRevenueBreakdown(orders, delivered []*entity.Order, platform string, rng *DateRange) RevenueBreakdown {
	byStatus := newBreakdown()
	for _, order := range orders {
		if order == nil || !orderMatchesPlatform(order, platform) {
			continue
		}
		if rng != nil && (order.CreatedAt.IsZero() || !rng.Contains(order.CreatedAt)) {
			continue
		}
		byStatus.add(string(order.Status), order.TotalAmount)
	}

	byPaymentMethod := newBreakdown()
	bySource := newBreakdown()
	discounts := decimal.Zero
	deliveryFees := decimal.Zero
	for _, order := range delivered {
		byPaymentMethod.add(labelOrUnknown(order.PaymentMethod), order.TotalAmount)
		bySource.add(labelOrUnknown(order.Source), order.TotalAmount)
		discounts = discounts.Add(order.DiscountAmount)
		deliveryFees = deliveryFees.Add(order.DeliveryFee)
	}

	return RevenueBreakdown{
		ByStatus:        byStatus.entries(),
		ByPaymentMethod: byPaymentMethod.entries(),
		BySource:        bySource.entries(),
		TotalDiscounts:  discounts,
		DeliveryFees:    deliveryFees,
	}
}

func (b *ReportBuilder) buildCostBreakdown(buyings []*entity.Buying, platform string, rng *DateRange, summary Summary) CostBreakdown {
	bySupplier := newBreakdown()
	for _, buying := range buyings {
		if buying == nil || buying.Status != entity.BuyingStatusCompleted || !hasDate(buying.CompletedAt) {
			continue
		}
		if !linesMatchPlatform(buying.Items, platform) {
			continue
		}
		if rng != nil && !rng.Contains(*buying.CompletedAt) {
			continue
		}
		bySupplier.add(buying.Supplier(), buying.TotalCost)
	}

	return CostBreakdown{
		BySupplier:    bySupplier.entries(),
		PurchaseCosts: summary.TotalCosts,
		TradeCosts:    summary.TradeCosts,
		Total:         summary.TotalCosts.Add(summary.TradeCosts),
	}
}

// buildTopGames ranks games by order line revenue. Ties keep first-seen order.
func (b *ReportBuilder) buildTopGames(delivered []*entity.Order, games []*entity.Game, platform string, limit int) []TopGame {
	catalog := indexGames(games)

	var ranked []*TopGame
	byKey := make(map[string]*TopGame)
	for _, order := range delivered {
		for _, item := range order.Items {
			if item.Quantity < 1 || !entity.PlatformMatches(item.Platform, platform) {
				continue
			}

			key := item.GameID.String()
			top, ok := byKey[key]
			if !ok {
				top = &TopGame{
					GameID:   key,
					Title:    item.Title,
					Platform: item.Platform,
					Revenue:  decimal.Zero,
				}
				if game, found := catalog[key]; found {
					if top.Title == "" {
						top.Title = game.Title
					}
					if top.Platform == "" {
						top.Platform = game.Platform
					}
				}
				byKey[key] = top
				ranked = append(ranked, top)
			}

			top.UnitsSold += item.Quantity
			top.Revenue = top.Revenue.Add(valueobject.LineTotal(valueobject.LineItem{
				ID:        key,
				UnitPrice: item.UnitPrice,
				Quantity:  item.Quantity,
			}))
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue.GreaterThan(ranked[j].Revenue)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	result := make([]TopGame, 0, len(ranked))
	for _, top := range ranked {
		top.Cost = decimal.Zero
		if game, ok := catalog[top.GameID]; ok {
			top.Cost = game.CostPrice.Mul(decimal.NewFromInt(int64(top.UnitsSold)))
		}
		top.Profit = valueobject.Profit(top.Revenue, top.Cost)
		top.Margin = valueobject.Margin(top.Profit, top.Revenue)
		result = append(result, *top)
	}

	return result
}

func (b *ReportBuilder) buildInventory(games []*entity.Game, platform string) InventoryValuation {
	inv := InventoryValuation{
		InventoryValue:   decimal.Zero,
		PotentialRevenue: decimal.Zero,
	}

	for _, game := range games {
		if game == nil || !game.MatchesPlatform(platform) {
			continue
		}

		withCase := nonNegative(game.StockWithCase)
		cartridgeOnly := nonNegative(game.StockCartridgeOnly)

		inv.GameCount++
		inv.UnitsWithCase += withCase
		inv.UnitsCartridgeOnly += cartridgeOnly
		inv.InventoryValue = inv.InventoryValue.Add(
			game.CostPrice.Mul(decimal.NewFromInt(int64(withCase + cartridgeOnly))))
		inv.PotentialRevenue = inv.PotentialRevenue.
			Add(game.SellingPrice().Mul(decimal.NewFromInt(int64(withCase)))).
			Add(game.CartridgeOnlySellingPrice(b.cartridgeOnlyDiscount).Mul(decimal.NewFromInt(int64(cartridgeOnly))))
	}

	inv.TotalUnits = inv.UnitsWithCase + inv.UnitsCartridgeOnly
	inv.PotentialProfit = valueobject.Profit(inv.PotentialRevenue, inv.InventoryValue)

	return inv
}

// buildProjections extrapolates the trailing window (asOf - window, asOf].
func (b *ReportBuilder) buildProjections(events []entity.FinancialEvent, snapshot *Snapshot, platform string, asOf time.Time) Projections {
	asOf = asOf.In(b.loc)
	window := decimal.NewFromInt(int64(b.windowDays))
	windowStart := asOf.AddDate(0, 0, -b.windowDays)
	currentMonthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, b.loc)
	lastMonthStart := currentMonthStart.AddDate(0, -1, 0)

	p := Projections{
		AsOf:                asOf,
		WindowDays:          b.windowDays,
		CurrentMonthRevenue: decimal.Zero,
		LastMonthRevenue:    decimal.Zero,
	}

	windowRevenue := decimal.Zero
	windowCost := decimal.Zero
	for _, event := range events {
		at := event.OccurredAt
		if at.After(windowStart) && !at.After(asOf) {
			windowRevenue = windowRevenue.Add(event.Revenue)
			windowCost = windowCost.Add(event.Cost)
		}
		switch {
		case !at.Before(currentMonthStart) && !at.After(asOf):
			p.CurrentMonthRevenue = p.CurrentMonthRevenue.Add(event.Revenue)
		case !at.Before(lastMonthStart) && at.Before(currentMonthStart):
			p.LastMonthRevenue = p.LastMonthRevenue.Add(event.Revenue)
		}
	}

	for _, order := range snapshot.Orders {
		if !isRealizedOrder(order) || !orderMatchesPlatform(order, platform) {
			continue
		}
		deliveredAt := *order.DeliveredAt
		if deliveredAt.After(asOf) {
			continue
		}
		units := matchingUnits(order, platform)
		p.AllTimeUnitsSold += units
		if deliveredAt.After(windowStart) {
			p.UnitsSoldInWindow += units
		}
	}

	for _, game := range snapshot.Games {
		if game != nil && game.MatchesPlatform(platform) {
			p.StockOnHand += game.TotalStock()
		}
	}

	p.SalesVelocity = decimal.NewFromInt(int64(p.UnitsSoldInWindow)).Div(window)
	p.AverageDailyRevenue = windowRevenue.Div(window)
	p.AverageDailyCost = windowCost.Div(window)
	horizon := decimal.NewFromInt(ProjectionHorizonDays)
	p.ProjectedRevenue = p.AverageDailyRevenue.Mul(horizon)
	p.ProjectedCost = p.AverageDailyCost.Mul(horizon)
	p.ProjectedProfit = valueobject.Profit(p.ProjectedRevenue, p.ProjectedCost)

	p.InventoryTurnover = decimal.Zero
	if p.StockOnHand > 0 {
		p.InventoryTurnover = decimal.NewFromInt(int64(p.AllTimeUnitsSold)).Div(decimal.NewFromInt(int64(p.StockOnHand)))
	}

	p.DaysOfInventory = decimal.Zero
	if p.SalesVelocity.IsPositive() {
		p.DaysOfInventory = decimal.NewFromInt(int64(p.StockOnHand)).Div(p.SalesVelocity)
	}

	p.MonthOverMonth = decimal.Zero
	if p.LastMonthRevenue.IsPositive() {
		p.MonthOverMonth = p.CurrentMonthRevenue.Sub(p.LastMonthRevenue).
			Div(p.LastMonthRevenue).
			Mul(decimal.NewFromInt(100))
	}

	return p
}

// deliveredOrders returns realized orders touching the platform and delivered inside the range.
func (b *ReportBuilder) deliveredOrders(orders []*entity.Order, platform string, rng *DateRange) []*entity.Order {
	var delivered []*entity.Order
	for _, order := range orders {
		if !isRealizedOrder(order) || !orderMatchesPlatform(order, platform) {
			continue
		}
		if rng != nil && !rng.Contains(*order.DeliveredAt) {
			continue
		}
		delivered = append(delivered, order)
	}
	return delivered
}

func isRealizedOrder(order *entity.Order) bool {
	return order != nil && order.Status == entity.OrderStatusDelivered && hasDate(order.DeliveredAt)
}

func orderMatchesPlatform(order *entity.Order, platform string) bool {
	if platform == "" {
		return true
	}
	for _, item := range order.Items {
		if entity.PlatformMatches(item.Platform, platform) {
			return true
		}
	}
	return false
}

func linesMatchPlatform(lines []entity.GameLine, platform string) bool {
	if platform == "" {
		return true
	}
	for _, line := range lines {
		if entity.PlatformMatches(line.Platform, platform) {
			return true
		}
	}
	return false
}

// matchingUnits counts the units of the order's lines on the platform.
func matchingUnits(order *entity.Order, platform string) int {
	units := 0
	for _, item := range order.Items {
		if item.Quantity > 0 && entity.PlatformMatches(item.Platform, platform) {
			units += item.Quantity
		}
	}
	return units
}

func indexGames(games []*entity.Game) map[string]*entity.Game {
	index := make(map[string]*entity.Game, len(games))
	for _, game := range games {
		if game != nil {
			index[game.ID.String()] = game
		}
	}
	return index
}

func profitStatus(grossProfit decimal.Decimal) ProfitStatus {
	switch grossProfit.Sign() {
	case 1:
		return ProfitStatusProfit
	case -1:
		return ProfitStatusLoss
	default:
		return ProfitStatusBreakEven
	}
}

func labelOrUnknown(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return UnknownBreakdownLabel
	}
	return label
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// breakdown accumulates amounts per label.
type breakdown struct {
	byLabel map[string]*BreakdownEntry
}

func newBreakdown() *breakdown {
	return &breakdown{byLabel: make(map[string]*BreakdownEntry)}
}

func (bd *breakdown) add(label string, amount decimal.Decimal) {
	entry, ok := bd.byLabel[label]
	if !ok {
		entry = &BreakdownEntry{Label: label, Amount: decimal.Zero}
		bd.byLabel[label] = entry
	}
	entry.Amount = entry.Amount.Add(amount)
	entry.Count++
}

// entries returns the breakdown sorted by amount descending, then label.
func (bd *breakdown) entries() []BreakdownEntry {
	entries := make([]BreakdownEntry, 0, len(bd.byLabel))
	for _, entry := range bd.byLabel {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if cmp := entries[i].Amount.Cmp(entries[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return entries[i].Label < entries[j].Label
	})
	return entries
}
