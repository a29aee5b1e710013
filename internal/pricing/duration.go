package pricing

import (
	"time"

	"rentflow-backend/internal/domain"
)

// Granularity selects how a rental window is decomposed into a
// displayable duration and which unit the price rules count in.
type Granularity string

const (
	GranularityDay  Granularity = "day"
	GranularityHour Granularity = "hour"
)

// wholeDays is the signed whole-day difference between the window
// bounds, truncated toward zero. No rounding up.
func wholeDays(w domain.RentalWindow) int {
	return int(w.End.Sub(w.Start) / (24 * time.Hour))
}

// wholeHours is the signed whole-hour difference, truncated toward zero.
func wholeHours(w domain.RentalWindow) int {
	return int(w.End.Sub(w.Start) / time.Hour)
}

// Duration decomposes a rental window into days and leftover hours at
// the given granularity. An incomplete window yields the zero duration;
// this function never panics.
//
// Day granularity: days is the whole-day difference, hours is always 0.
// Hour granularity: days is the whole-hour difference divided by 24 and
// rounded up, hours is the remainder.
func Duration(w domain.RentalWindow, g Granularity) domain.RentalDuration {
	if !w.Complete() {
		return domain.RentalDuration{}
	}

	if g == GranularityDay {
		return domain.RentalDuration{Days: wholeDays(w), Hours: 0}
	}

	total := wholeHours(w)
	days := total / 24
	if total%24 != 0 && total > 0 {
		days++
	}
	return domain.RentalDuration{Days: days, Hours: total % 24}
}
