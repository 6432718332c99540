// Package financials contains the financial report use cases and the pure engine behind them.
package financials

import (
	"fmt"
	"time"
)

// Granularity represents the size of a time bucket in the report series.
type Granularity string

const (
	GranularityDay      Granularity = "day"
	GranularityWeek     Granularity = "week"
	GranularityMonth    Granularity = "month"
	GranularityBiAnnual Granularity = "bi-annual"
	GranularityAnnual   Granularity = "annual"
	GranularityAll      Granularity = "all"
)

// AllBucketKey is the single bucket key used by GranularityAll.
const AllBucketKey = "all"

// IsValid reports whether g is a supported granularity.
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth,
		GranularityBiAnnual, GranularityAnnual, GranularityAll:
		return true
	default:
		return false
	}
}

// GetPeriodStart returns the first instant of the period containing date, in date's location.
// Weeks start on Sunday.
func GetPeriodStart(date time.Time, granularity Granularity) time.Time {
	loc := date.Location()

	switch granularity {
	case GranularityDay:
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	case GranularityWeek:
		return getWeekStartDate(date)
	case GranularityMonth:
		return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, loc)
	case GranularityBiAnnual:
		month := time.January
		if date.Month() > time.June {
			month = time.July
		}
		return time.Date(date.Year(), month, 1, 0, 0, 0, 0, loc)
	case GranularityAnnual:
		return time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Time{}
	}
}

// nextPeriodStart returns the start of the period after the one starting at start.
func nextPeriodStart(start time.Time, granularity Granularity) time.Time {
	switch granularity {
	case GranularityDay:
		return start.AddDate(0, 0, 1)
	case GranularityWeek:
		return start.AddDate(0, 0, 7)
	case GranularityMonth:
		return start.AddDate(0, 1, 0)
	case GranularityBiAnnual:
		return start.AddDate(0, 6, 0)
	default:
		return start.AddDate(1, 0, 0)
	}
}

// GetPeriodKeyForDate returns the bucket key for the period containing date.
// Keys sort lexicographically in chronological order:
// - Day: "2006-01-02"
// - Week: "2006-W05", numbered by the Sunday that starts the week
// - Month: "2006-01"
// - Bi-annual: "2006-H1" / "2006-H2"
// - Annual: "2006"
// - All: "all"
func GetPeriodKeyForDate(date time.Time, granularity Granularity) string {
	switch granularity {
	case GranularityDay:
		return date.Format("2006-01-02")
	case GranularityWeek:
		start := getWeekStartDate(date)
		return fmt.Sprintf("%04d-W%02d", start.Year(), sundayWeekNumber(start))
	case GranularityMonth:
		return fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month()))
	case GranularityBiAnnual:
		half := 1
		if date.Month() > time.June {
			half = 2
		}
		return fmt.Sprintf("%04d-H%d", date.Year(), half)
	case GranularityAnnual:
		return fmt.Sprintf("%04d", date.Year())
	default:
		return AllBucketKey
	}
}

// GeneratePeriodLabel generates a human-readable label for the period containing date.
func GeneratePeriodLabel(date time.Time, granularity Granularity) string {
	switch granularity {
	case GranularityDay:
		return date.Format("Jan 2, 2006")
	case GranularityWeek:
		start := getWeekStartDate(date)
		return fmt.Sprintf("Week %d %d", sundayWeekNumber(start), start.Year())
	case GranularityMonth:
		return date.Format("Jan 2006")
	case GranularityBiAnnual:
		if date.Month() > time.June {
			return fmt.Sprintf("H2 %d", date.Year())
		}
		return fmt.Sprintf("H1 %d", date.Year())
	case GranularityAnnual:
		return fmt.Sprintf("%d", date.Year())
	default:
		return "All time"
	}
}

// PeriodInfo holds information about a single period.
type PeriodInfo struct {
	Key         string
	Label       string
	PeriodStart time.Time
}

// GeneratePeriodSeries generates every period between startDate and endDate (inclusive)
// so the series has no gaps. GranularityAll yields a single period.
func GeneratePeriodSeries(startDate, endDate time.Time, granularity Granularity) []PeriodInfo {
	if granularity == GranularityAll {
		return []PeriodInfo{{
			Key:   AllBucketKey,
			Label: GeneratePeriodLabel(startDate, granularity),
		}}
	}

	var periods []PeriodInfo
	for current := GetPeriodStart(startDate, granularity); !current.After(endDate); current = nextPeriodStart(current, granularity) {
		periods = append(periods, PeriodInfo{
			Key:         GetPeriodKeyForDate(current, granularity),
			Label:       GeneratePeriodLabel(current, granularity),
			PeriodStart: current,
		})
	}
	return periods
}

// CountPeriods returns how many periods GeneratePeriodSeries would yield for the range
// without building them.
func CountPeriods(startDate, endDate time.Time, granularity Granularity) int {
	if granularity == GranularityAll {
		return 1
	}
	if endDate.Before(startDate) {
		return 0
	}

	first := GetPeriodStart(startDate, granularity)
	last := GetPeriodStart(endDate, granularity)

	switch granularity {
	case GranularityDay:
		return civilDay(last) - civilDay(first) + 1
	case GranularityWeek:
		return (civilDay(last)-civilDay(first))/7 + 1
	case GranularityMonth:
		return (last.Year()-first.Year())*12 + int(last.Month()-first.Month()) + 1
	case GranularityBiAnnual:
		return (last.Year()-first.Year())*2 + (int(last.Month())-int(first.Month()))/6 + 1
	default:
		return last.Year() - first.Year() + 1
	}
}

// civilDay numbers calendar days so DST shifts never change the distance between two dates.
func civilDay(t time.Time) int {
	return int(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// getWeekStartDate returns the Sunday of the week containing the given date.
func getWeekStartDate(date time.Time) time.Time {
	daysFromSunday := int(date.Weekday())
	return time.Date(date.Year(), date.Month(), date.Day()-daysFromSunday, 0, 0, 0, 0, date.Location())
}

// sundayWeekNumber numbers a week by the position of its starting Sunday within that Sunday's year (1..53).
func sundayWeekNumber(sunday time.Time) int {
	return (sunday.YearDay()-1)/7 + 1
}
