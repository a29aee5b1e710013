package pricing

import (
	"fmt"

	"rentflow-backend/internal/domain"
)

// DefaultDailySurcharge is the flat per-day surcharge of the day-rate
// policy, in the storefront's currency units.
const DefaultDailySurcharge int32 = 2000

// Policy turns a base price and a rental window into a per-item price.
// A policy never consults other basket items, and an incomplete window
// always prices to zero.
type Policy interface {
	ItemPrice(basePrice int32, w domain.RentalWindow) int32
	Granularity() Granularity
}

// DayRateWithSurcharge prices the first rental day into the base price
// and adds a flat surcharge for each additional full day. A day
// difference of one or less, including zero and negative windows,
// prices to the base price alone; inverted windows are not rejected
// here.
type DayRateWithSurcharge struct {
	SurchargePerDay int32
}

func (p DayRateWithSurcharge) ItemPrice(basePrice int32, w domain.RentalWindow) int32 {
	if !w.Complete() {
		return 0
	}
	d := wholeDays(w)
	if d > 1 {
		return basePrice + int32(d-1)*p.SurchargePerDay
	}
	return basePrice
}

func (p DayRateWithSurcharge) Granularity() Granularity { return GranularityDay }

// HourRate prices every whole rental hour at the base price. A zero or
// negative hour difference yields a zero or negative price.
type HourRate struct{}

func (p HourRate) ItemPrice(basePrice int32, w domain.RentalWindow) int32 {
	if !w.Complete() {
		return 0
	}
	return basePrice * int32(wholeHours(w))
}

func (p HourRate) Granularity() Granularity { return GranularityHour }

// NewPolicy builds the pricing policy named in configuration.
func NewPolicy(name string) (Policy, error) {
	switch name {
	case "day_rate_with_surcharge", "":
		return DayRateWithSurcharge{SurchargePerDay: DefaultDailySurcharge}, nil
	case "hour_rate":
		return HourRate{}, nil
	default:
		return nil, fmt.Errorf("unknown pricing policy: %q", name)
	}
}

// BasketTotal recomputes the aggregate price of the given items under
// the live window. Totals are always derived from scratch, never
// maintained incrementally, so a window change between add and remove
// can not leave a stale cached value behind.
func BasketTotal(p Policy, items []domain.BasketItem, w domain.RentalWindow) int32 {
	var total int32
	for _, item := range items {
		total += p.ItemPrice(item.BasePrice, w)
	}
	return total
}
