package dto

import (
	"time"

	"github.com/gamevault/backoffice/internal/application/usecase/financials"
)

const dateLayout = "2006-01-02"

// FinancialsResponse represents the response for the financials API.
type FinancialsResponse struct {
	Data FinancialsData `json:"data"`
}

// FinancialsData is the report payload.
type FinancialsData struct {
	Period           FinancialsPeriodResponse   `json:"period"`
	Summary          SummaryResponse            `json:"summary"`
	TimeSeries       []TimeBucketResponse       `json:"time_series"`
	RevenueBreakdown RevenueBreakdownResponse   `json:"revenue_breakdown"`
	CostBreakdown    CostBreakdownResponse      `json:"cost_breakdown"`
	TopGames         []TopGameResponse          `json:"top_games"`
	Inventory        InventoryValuationResponse `json:"inventory"`
	Projections      ProjectionsResponse        `json:"projections"`
}

// FinancialsPeriodResponse echoes the resolved report parameters.
type FinancialsPeriodResponse struct {
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Granularity string `json:"granularity"`
	Platform    string `json:"platform,omitempty"`
}

// SummaryResponse holds the headline figures.
type SummaryResponse struct {
	TotalRevenue                     float64 `json:"total_revenue"`
	RentalRevenue                    float64 `json:"rental_revenue"`
	TradeRevenue                     float64 `json:"trade_revenue"`
	TotalRevenueWithRentalsAndTrades float64 `json:"total_revenue_with_rentals_and_trades"`
	TotalCosts                       float64 `json:"total_costs"`
	TradeCosts                       float64 `json:"trade_costs"`
	GrossProfit                      float64 `json:"gross_profit"`
	OperatingExpenses                float64 `json:"operating_expenses"`
	NetProfit                        float64 `json:"net_profit"`
	GrossMargin                      float64 `json:"gross_margin"`
	NetMargin                        float64 `json:"net_margin"`
	Status                           string  `json:"status"`
	OrderCount                       int     `json:"order_count"`
	RentalCount                      int     `json:"rental_count"`
	TradeCount                       int     `json:"trade_count"`
	BuyingCount                      int     `json:"buying_count"`
	UnitsSold                        int     `json:"units_sold"`
	AverageOrderValue                float64 `json:"average_order_value"`
}

// TimeBucketResponse is one period of the time series.
type TimeBucketResponse struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Revenue     float64 `json:"revenue"`
	Costs       float64 `json:"costs"`
	Profit      float64 `json:"profit"`
	OrderCount  int     `json:"order_count"`
	RentalCount int     `json:"rental_count"`
	TradeCount  int     `json:"trade_count"`
}

// BreakdownEntryResponse is one labeled slice of a breakdown.
type BreakdownEntryResponse struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// RevenueBreakdownResponse splits order revenue.
type RevenueBreakdownResponse struct {
	ByStatus        []BreakdownEntryResponse `json:"by_status"`
	ByPaymentMethod []BreakdownEntryResponse `json:"by_payment_method"`
	BySource        []BreakdownEntryResponse `json:"by_source"`
	TotalDiscounts  float64                  `json:"total_discounts"`
	DeliveryFees    float64                  `json:"delivery_fees"`
}

// CostBreakdownResponse splits costs.
type CostBreakdownResponse struct {
	BySupplier    []BreakdownEntryResponse `json:"by_supplier"`
	PurchaseCosts float64                  `json:"purchase_costs"`
	TradeCosts    float64                  `json:"trade_costs"`
	Total         float64                  `json:"total"`
}

// TopGameResponse is one best-selling game.
type TopGameResponse struct {
	GameID    string  `json:"game_id"`
	Title     string  `json:"title"`
	Platform  string  `json:"platform"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
	Cost      float64 `json:"cost"`
	Profit    float64 `json:"profit"`
	Margin    float64 `json:"margin"`
}

// InventoryValuationResponse values the stock on hand.
type InventoryValuationResponse struct {
	GameCount          int     `json:"game_count"`
	UnitsWithCase      int     `json:"units_with_case"`
	UnitsCartridgeOnly int     `json:"units_cartridge_only"`
	TotalUnits         int     `json:"total_units"`
	InventoryValue     float64 `json:"inventory_value"`
	PotentialRevenue   float64 `json:"potential_revenue"`
	PotentialProfit    float64 `json:"potential_profit"`
}

// ProjectionsResponse holds the trailing-window projections.
type ProjectionsResponse struct {
	AsOf                string  `json:"as_of"`
	WindowDays          int     `json:"window_days"`
	UnitsSoldInWindow   int     `json:"units_sold_in_window"`
	SalesVelocity       float64 `json:"sales_velocity"`
	AverageDailyRevenue float64 `json:"average_daily_revenue"`
	AverageDailyCost    float64 `json:"average_daily_cost"`
	ProjectedRevenue    float64 `json:"projected_revenue"`
	ProjectedCost       float64 `json:"projected_cost"`
	ProjectedProfit     float64 `json:"projected_profit"`
	AllTimeUnitsSold    int     `json:"all_time_units_sold"`
	StockOnHand         int     `json:"stock_on_hand"`
	InventoryTurnover   float64 `json:"inventory_turnover"`
	DaysOfInventory     float64 `json:"days_of_inventory"`
	CurrentMonthRevenue float64 `json:"current_month_revenue"`
	LastMonthRevenue    float64 `json:"last_month_revenue"`
	MonthOverMonth      float64 `json:"month_over_month_growth"`
}

// ToFinancialsResponse converts a report to its response DTO.
func ToFinancialsResponse(report *financials.Report) FinancialsResponse {
	period := FinancialsPeriodResponse{
		Granularity: string(report.Granularity),
		Platform:    report.Platform,
	}
	if report.DateRange != nil {
		period.StartDate = report.DateRange.Start.Format(dateLayout)
		period.EndDate = report.DateRange.End.Format(dateLayout)
	}

	series := make([]TimeBucketResponse, len(report.TimeSeries))
	for i, b := range report.TimeSeries {
		series[i] = TimeBucketResponse{
			Key:         b.Key,
			Label:       b.Label,
			Revenue:     money(b.Revenue),
			Costs:       money(b.Costs),
			Profit:      money(b.Profit),
			OrderCount:  b.OrderCount,
			RentalCount: b.RentalCount,
			TradeCount:  b.TradeCount,
		}
	}

	topGames := make([]TopGameResponse, len(report.TopGames))
	for i, g := range report.TopGames {
		topGames[i] = TopGameResponse{
			GameID:    g.GameID,
			Title:     g.Title,
			Platform:  g.Platform,
			UnitsSold: g.UnitsSold,
			Revenue:   money(g.Revenue),
			Cost:      money(g.Cost),
			Profit:    money(g.Profit),
			Margin:    money(g.Margin),
		}
	}

	s := report.Summary
	inv := report.Inventory
	p := report.Projections

	return FinancialsResponse{Data: FinancialsData{
		Period: period,
		Summary: SummaryResponse{
			TotalRevenue:                     money(s.TotalRevenue),
			RentalRevenue:                    money(s.RentalRevenue),
			TradeRevenue:                     money(s.TradeRevenue),
			TotalRevenueWithRentalsAndTrades: money(s.TotalRevenueWithRentalsAndTrades),
			TotalCosts:                       money(s.TotalCosts),
			TradeCosts:                       money(s.TradeCosts),
			GrossProfit:                      money(s.GrossProfit),
			OperatingExpenses:                money(s.OperatingExpenses),
			NetProfit:                        money(s.NetProfit),
			GrossMargin:                      money(s.GrossMargin),
			NetMargin:                        money(s.NetMargin),
			Status:                           string(s.Status),
			OrderCount:                       s.OrderCount,
			RentalCount:                      s.RentalCount,
			TradeCount:                       s.TradeCount,
			BuyingCount:                      s.BuyingCount,
			UnitsSold:                        s.UnitsSold,
			AverageOrderValue:                money(s.AverageOrderValue),
		},
		TimeSeries: series,
		RevenueBreakdown: RevenueBreakdownResponse{
			ByStatus:        toBreakdownResponses(report.RevenueBreakdown.ByStatus),
			ByPaymentMethod: toBreakdownResponses(report.RevenueBreakdown.ByPaymentMethod),
			BySource:        toBreakdownResponses(report.RevenueBreakdown.BySource),
			TotalDiscounts:  money(report.RevenueBreakdown.TotalDiscounts),
			DeliveryFees:    money(report.RevenueBreakdown.DeliveryFees),
		},
		CostBreakdown: CostBreakdownResponse{
			BySupplier:    toBreakdownResponses(report.CostBreakdown.BySupplier),
			PurchaseCosts: money(report.CostBreakdown.PurchaseCosts),
			TradeCosts:    money(report.CostBreakdown.TradeCosts),
			Total:         money(report.CostBreakdown.Total),
		},
		TopGames: topGames,
		Inventory: InventoryValuationResponse{
			GameCount:          inv.GameCount,
			UnitsWithCase:      inv.UnitsWithCase,
			UnitsCartridgeOnly: inv.UnitsCartridgeOnly,
			TotalUnits:         inv.TotalUnits,
			InventoryValue:     money(inv.InventoryValue),
			PotentialRevenue:   money(inv.PotentialRevenue),
			PotentialProfit:    money(inv.PotentialProfit),
		},
		Projections: ProjectionsResponse{
			AsOf:                p.AsOf.Format(time.RFC3339),
			WindowDays:          p.WindowDays,
			UnitsSoldInWindow:   p.UnitsSoldInWindow,
			SalesVelocity:       money(p.SalesVelocity),
			AverageDailyRevenue: money(p.AverageDailyRevenue),
			AverageDailyCost:    money(p.AverageDailyCost),
			ProjectedRevenue:    money(p.ProjectedRevenue),
			ProjectedCost:       money(p.ProjectedCost),
			ProjectedProfit:     money(p.ProjectedProfit),
			AllTimeUnitsSold:    p.AllTimeUnitsSold,
			StockOnHand:         p.StockOnHand,
			InventoryTurnover:   money(p.InventoryTurnover),
			DaysOfInventory:     money(p.DaysOfInventory),
			CurrentMonthRevenue: money(p.CurrentMonthRevenue),
			LastMonthRevenue:    money(p.LastMonthRevenue),
			MonthOverMonth:      money(p.MonthOverMonth),
		},
	}}
}

func toBreakdownResponses(entries []financials.BreakdownEntry) []BreakdownEntryResponse {
	out := make([]BreakdownEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = BreakdownEntryResponse{Label: e.Label, Amount: money(e.Amount), Count: e.Count}
	}
	return out
}
