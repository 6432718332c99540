package financials

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gamevault/backoffice/internal/domain/entity"
)

// AggregateEvents folds events into time buckets keyed by granularity, in loc.
// When fill is set, every period of the range appears even if it holds no events.
// The result is sorted by key, which is chronological for every granularity.
func AggregateEvents(events []entity.FinancialEvent, granularity Granularity, loc *time.Location, fill *DateRange) []TimeBucket {
	if loc == nil {
		loc = time.UTC
	}

	buckets := make(map[string]*TimeBucket)

	if fill != nil {
		for _, period := range GeneratePeriodSeries(fill.Start.In(loc), fill.End.In(loc), granularity) {
			buckets[period.Key] = newBucket(period.Key, period.Label)
		}
	}

	for _, event := range events {
		occurredAt := event.OccurredAt.In(loc)
		key := GetPeriodKeyForDate(occurredAt, granularity)

		bucket, ok := buckets[key]
		if !ok {
			bucket = newBucket(key, GeneratePeriodLabel(occurredAt, granularity))
			buckets[key] = bucket
		}

		bucket.Revenue = bucket.Revenue.Add(event.Revenue)
		bucket.Costs = bucket.Costs.Add(event.Cost)

		switch event.Category {
		case entity.EventCategorySale:
			bucket.OrderCount++
		case entity.EventCategoryRental:
			bucket.RentalCount++
		case entity.EventCategoryTrade:
			bucket.TradeCount++
		}
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	series := make([]TimeBucket, 0, len(keys))
	for _, key := range keys {
		bucket := buckets[key]
		bucket.Profit = bucket.Revenue.Sub(bucket.Costs)
		series = append(series, *bucket)
	}

	return series
}

func newBucket(key, label string) *TimeBucket {
	return &TimeBucket{
		Key:     key,
		Label:   label,
		Revenue: decimal.Zero,
		Costs:   decimal.Zero,
		Profit:  decimal.Zero,
	}
}
