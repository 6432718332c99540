package financials

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestGetPeriodKeyForDate(t *testing.T) {
	tests := []struct {
		name        string
		date        time.Time
		granularity Granularity
		expected    string
	}{
		{name: "day", date: date(2025, time.March, 5), granularity: GranularityDay, expected: "2025-03-05"},
		{name: "month", date: date(2025, time.March, 31), granularity: GranularityMonth, expected: "2025-03"},
		{name: "first half", date: date(2025, time.June, 30), granularity: GranularityBiAnnual, expected: "2025-H1"},
		{name: "second half", date: date(2025, time.July, 1), granularity: GranularityBiAnnual, expected: "2025-H2"},
		{name: "annual", date: date(2025, time.December, 31), granularity: GranularityAnnual, expected: "2025"},
		{name: "all", date: date(2025, time.December, 31), granularity: GranularityAll, expected: "all"},
		{name: "week starting on sunday", date: date(2025, time.January, 5), granularity: GranularityWeek, expected: "2025-W01"},
		{name: "saturday belongs to previous sunday", date: date(2025, time.January, 11), granularity: GranularityWeek, expected: "2025-W01"},
		{name: "mid march week", date: date(2025, time.March, 19), granularity: GranularityWeek, expected: "2025-W11"},
		{name: "new year inside a december week", date: date(2025, time.January, 1), granularity: GranularityWeek, expected: "2024-W52"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPeriodKeyForDate(tt.date, tt.granularity))
		})
	}
}

func TestGeneratePeriodLabel(t *testing.T) {
	assert.Equal(t, "Mar 5, 2025", GeneratePeriodLabel(date(2025, time.March, 5), GranularityDay))
	assert.Equal(t, "Week 11 2025", GeneratePeriodLabel(date(2025, time.March, 19), GranularityWeek))
	assert.Equal(t, "Mar 2025", GeneratePeriodLabel(date(2025, time.March, 5), GranularityMonth))
	assert.Equal(t, "H2 2025", GeneratePeriodLabel(date(2025, time.August, 5), GranularityBiAnnual))
	assert.Equal(t, "2025", GeneratePeriodLabel(date(2025, time.August, 5), GranularityAnnual))
	assert.Equal(t, "All time", GeneratePeriodLabel(date(2025, time.August, 5), GranularityAll))
}

func TestGranularityIsValid(t *testing.T) {
	for _, g := range []Granularity{GranularityDay, GranularityWeek, GranularityMonth, GranularityBiAnnual, GranularityAnnual, GranularityAll} {
		assert.True(t, g.IsValid(), g)
	}
	assert.False(t, Granularity("quarter").IsValid())
	assert.False(t, Granularity("").IsValid())
}

func TestGeneratePeriodSeries(t *testing.T) {
	t.Run("months without gaps", func(t *testing.T) {
		periods := GeneratePeriodSeries(date(2025, time.January, 15), date(2025, time.March, 10), GranularityMonth)

		require.Len(t, periods, 3)
		assert.Equal(t, "2025-01", periods[0].Key)
		assert.Equal(t, "2025-02", periods[1].Key)
		assert.Equal(t, "2025-03", periods[2].Key)
		assert.Equal(t, "Feb 2025", periods[1].Label)
	})

	t.Run("weeks across a year boundary", func(t *testing.T) {
		periods := GeneratePeriodSeries(date(2024, time.December, 25), date(2025, time.January, 8), GranularityWeek)

		keys := make([]string, 0, len(periods))
		for _, p := range periods {
			keys = append(keys, p.Key)
		}
		assert.Equal(t, []string{"2024-W51", "2024-W52", "2025-W01"}, keys)
	})

	t.Run("halves", func(t *testing.T) {
		periods := GeneratePeriodSeries(date(2024, time.May, 1), date(2025, time.February, 1), GranularityBiAnnual)

		require.Len(t, periods, 3)
		assert.Equal(t, "2024-H1", periods[0].Key)
		assert.Equal(t, "2024-H2", periods[1].Key)
		assert.Equal(t, "2025-H1", periods[2].Key)
	})

	t.Run("all is a single period", func(t *testing.T) {
		periods := GeneratePeriodSeries(date(2020, time.January, 1), date(2025, time.January, 1), GranularityAll)

		require.Len(t, periods, 1)
		assert.Equal(t, AllBucketKey, periods[0].Key)
	})
}

func TestPeriodKeysSortChronologically(t *testing.T) {
	granularities := []Granularity{GranularityDay, GranularityWeek, GranularityMonth, GranularityBiAnnual, GranularityAnnual}

	rapid.Check(t, func(t *rapid.T) {
		g := rapid.SampledFrom(granularities).Draw(t, "granularity")
		offsets := rapid.SliceOfN(rapid.Int64Range(0, 100*365*24*3600), 1000, 1000).Draw(t, "offsets")

		base := date(1970, time.January, 1)
		dates := make([]time.Time, 0, len(offsets))
		for _, off := range offsets {
			dates = append(dates, base.Add(time.Duration(off)*time.Second))
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		keys := make([]string, 0, len(dates))
		for _, dt := range dates {
			keys = append(keys, GetPeriodKeyForDate(dt, g))
		}

		if !sort.StringsAreSorted(keys) {
			t.Fatalf("keys for %s are not in chronological order: %v", g, keys)
		}
	})
}

func TestCountPeriods(t *testing.T) {
	t.Run("matches the generated series", func(t *testing.T) {
		granularities := []Granularity{GranularityDay, GranularityWeek, GranularityMonth, GranularityBiAnnual, GranularityAnnual, GranularityAll}
		brt := time.FixedZone("BRT", -3*3600)

		rapid.Check(t, func(t *rapid.T) {
			g := rapid.SampledFrom(granularities).Draw(t, "granularity")
			startOffset := rapid.IntRange(0, 20*365).Draw(t, "start")
			length := rapid.IntRange(0, 3*365).Draw(t, "length")

			base := time.Date(2000, time.January, 1, 0, 0, 0, 0, brt)
			start := base.AddDate(0, 0, startOffset)
			end := start.AddDate(0, 0, length)

			series := GeneratePeriodSeries(start, end, g)
			if got := CountPeriods(start, end, g); got != len(series) {
				t.Fatalf("%s from %s to %s: counted %d, generated %d", g, start, end, got, len(series))
			}
		})
	})

	t.Run("widest calendar range", func(t *testing.T) {
		start := date(1, time.January, 1)
		end := date(9999, time.December, 31)

		assert.Equal(t, 3652059, CountPeriods(start, end, GranularityDay))
		assert.Equal(t, 9999*12, CountPeriods(start, end, GranularityMonth))
		assert.Equal(t, 9999*2, CountPeriods(start, end, GranularityBiAnnual))
		assert.Equal(t, 9999, CountPeriods(start, end, GranularityAnnual))
		assert.Equal(t, 1, CountPeriods(start, end, GranularityAll))
	})

	t.Run("reversed range is empty", func(t *testing.T) {
		assert.Equal(t, 0, CountPeriods(date(2025, time.March, 2), date(2025, time.March, 1), GranularityDay))
	})
}
