package financials

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gamevault/backoffice/internal/domain/entity"
)

// Snapshot is the read-only set of source records a report is built from.
type Snapshot struct {
	Buyings []*entity.Buying
	Orders  []*entity.Order
	Rentals []*entity.Rental
	Trades  []*entity.Trade
	Games   []*entity.Game
}

// DateRange is an inclusive range of calendar days in a report's location.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange builds a range covering whole days from start's day through end's day in loc.
func NewDateRange(start, end time.Time, loc *time.Location) DateRange {
	return DateRange{
		Start: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc),
		End:   time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc),
	}
}

// Contains reports whether t falls on a day inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End.AddDate(0, 0, 1))
}

// ReportRequest parameterizes a report build.
type ReportRequest struct {
	DateRange         *DateRange
	Granularity       Granularity
	Platform          string
	OperatingExpenses decimal.Decimal
	TopGames          int
	AsOf              time.Time
}

// ProfitStatus classifies the gross result of a period.
type ProfitStatus string

const (
	ProfitStatusProfit    ProfitStatus = "profit"
	ProfitStatusLoss      ProfitStatus = "loss"
	ProfitStatusBreakEven ProfitStatus = "break-even"
)

// TimeBucket holds the folded totals of one period.
type TimeBucket struct {
	Key         string          `json:"key"`
	Label       string          `json:"label"`
	Revenue     decimal.Decimal `json:"revenue"`
	Costs       decimal.Decimal `json:"costs"`
	Profit      decimal.Decimal `json:"profit"`
	OrderCount  int             `json:"order_count"`
	RentalCount int             `json:"rental_count"`
	TradeCount  int             `json:"trade_count"`
}

// Summary holds the headline figures of a report.
type Summary struct {
	TotalRevenue                     decimal.Decimal `json:"total_revenue"`
	RentalRevenue                    decimal.Decimal `json:"rental_revenue"`
	TradeRevenue                     decimal.Decimal `json:"trade_revenue"`
	TotalRevenueWithRentalsAndTrades decimal.Decimal `json:"total_revenue_with_rentals_and_trades"`
	TotalCosts                       decimal.Decimal `json:"total_costs"`
	TradeCosts                       decimal.Decimal `json:"trade_costs"`
	GrossProfit                      decimal.Decimal `json:"gross_profit"`
	OperatingExpenses                decimal.Decimal `json:"operating_expenses"`
	NetProfit                        decimal.Decimal `json:"net_profit"`
	GrossMargin                      decimal.Decimal `json:"gross_margin"`
	NetMargin                        decimal.Decimal `json:"net_margin"`
	Status                           ProfitStatus    `json:"status"`
	OrderCount                       int             `json:"order_count"`
	RentalCount                      int             `json:"rental_count"`
	TradeCount                       int             `json:"trade_count"`
	BuyingCount                      int             `json:"buying_count"`
	UnitsSold                        int             `json:"units_sold"`
	AverageOrderValue                decimal.Decimal `json:"average_order_value"`
}

// BreakdownEntry is one labeled slice of a breakdown.
type BreakdownEntry struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// RevenueBreakdown splits order revenue by status, payment method and source.
type RevenueBreakdown struct {
	ByStatus        []BreakdownEntry `json:"by_status"`
	ByPaymentMethod []BreakdownEntry `json:"by_payment_method"`
	BySource        []BreakdownEntry `json:"by_source"`
	TotalDiscounts  decimal.Decimal  `json:"total_discounts"`
	DeliveryFees    decimal.Decimal  `json:"delivery_fees"`
}

// CostBreakdown splits costs by supplier and kind.
type CostBreakdown struct {
	BySupplier    []BreakdownEntry `json:"by_supplier"`
	PurchaseCosts decimal.Decimal  `json:"purchase_costs"`
	TradeCosts    decimal.Decimal  `json:"trade_costs"`
	Total         decimal.Decimal  `json:"total"`
}

// TopGame is the sales performance of one catalog game.
type TopGame struct {
	GameID    string          `json:"game_id"`
	Title     string          `json:"title"`
	Platform  string          `json:"platform"`
	UnitsSold int             `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
	Cost      decimal.Decimal `json:"cost"`
	Profit    decimal.Decimal `json:"profit"`
	Margin    decimal.Decimal `json:"margin"`
}

// InventoryValuation values the stock on hand at cost and at selling price.
type InventoryValuation struct {
	GameCount          int             `json:"game_count"`
	UnitsWithCase      int             `json:"units_with_case"`
	UnitsCartridgeOnly int             `json:"units_cartridge_only"`
	TotalUnits         int             `json:"total_units"`
	InventoryValue     decimal.Decimal `json:"inventory_value"`
	PotentialRevenue   decimal.Decimal `json:"potential_revenue"`
	PotentialProfit    decimal.Decimal `json:"potential_profit"`
}

// Projections extrapolates the trailing window ending at AsOf.
type Projections struct {
	AsOf                time.Time       `json:"as_of"`
	WindowDays          int             `json:"window_days"`
	UnitsSoldInWindow   int             `json:"units_sold_in_window"`
	SalesVelocity       decimal.Decimal `json:"sales_velocity"`
	AverageDailyRevenue decimal.Decimal `json:"average_daily_revenue"`
	AverageDailyCost    decimal.Decimal `json:"average_daily_cost"`
	ProjectedRevenue    decimal.Decimal `json:"projected_revenue"`
	ProjectedCost       decimal.Decimal `json:"projected_cost"`
	ProjectedProfit     decimal.Decimal `json:"projected_profit"`
	AllTimeUnitsSold    int             `json:"all_time_units_sold"`
	StockOnHand         int             `json:"stock_on_hand"`
	InventoryTurnover   decimal.Decimal `json:"inventory_turnover"`
	DaysOfInventory     decimal.Decimal `json:"days_of_inventory"`
	CurrentMonthRevenue decimal.Decimal `json:"current_month_revenue"`
	LastMonthRevenue    decimal.Decimal `json:"last_month_revenue"`
	MonthOverMonth      decimal.Decimal `json:"month_over_month_growth"`
}

// Report is the complete financial view for one request.
type Report struct {
	Granularity      Granularity        `json:"granularity"`
	DateRange        *DateRange         `json:"date_range,omitempty"`
	Platform         string             `json:"platform,omitempty"`
	Summary          Summary            `json:"summary"`
	TimeSeries       []TimeBucket       `json:"time_series"`
	RevenueBreakdown RevenueBreakdown   `json:"revenue_breakdown"`
	CostBreakdown    CostBreakdown      `json:"cost_breakdown"`
	TopGames         []TopGame          `json:"top_games"`
	Inventory        InventoryValuation `json:"inventory"`
	Projections      Projections        `json:"projections"`
}
