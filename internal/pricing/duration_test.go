package pricing

import (
	"testing"
	"time"

	"rentflow-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func window(start, end time.Time) domain.RentalWindow {
	return domain.RentalWindow{Start: start, End: end}
}

func TestDuration_DayGranularity(t *testing.T) {
	base := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	t.Run("Zero-length window", func(t *testing.T) {
		d := Duration(window(base, base), GranularityDay)
		assert.Equal(t, domain.RentalDuration{Days: 0, Hours: 0}, d)
	})

	t.Run("Whole days, no rounding up", func(t *testing.T) {
		d := Duration(window(base, base.Add(3*24*time.Hour+5*time.Hour)), GranularityDay)
		assert.Equal(t, 3, d.Days)
		assert.Equal(t, 0, d.Hours)
	})

	t.Run("Under one day floors to zero", func(t *testing.T) {
		d := Duration(window(base, base.Add(23*time.Hour)), GranularityDay)
		assert.Equal(t, domain.RentalDuration{Days: 0, Hours: 0}, d)
	})

	t.Run("Hours always zero", func(t *testing.T) {
		d := Duration(window(base, base.Add(50*time.Hour)), GranularityDay)
		assert.Equal(t, 0, d.Hours)
	})
}

func TestDuration_HourGranularity(t *testing.T) {
	base := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	t.Run("Zero-length window", func(t *testing.T) {
		d := Duration(window(base, base), GranularityHour)
		assert.Equal(t, domain.RentalDuration{Days: 0, Hours: 0}, d)
	})

	t.Run("Partial day rounds days up", func(t *testing.T) {
		// 30 whole hours: ceil(30/24) = 2 days, 30 mod 24 = 6 hours.
		d := Duration(window(base, base.Add(30*time.Hour)), GranularityHour)
		assert.Equal(t, 2, d.Days)
		assert.Equal(t, 6, d.Hours)
	})

	t.Run("Exact day boundary", func(t *testing.T) {
		d := Duration(window(base, base.Add(48*time.Hour)), GranularityHour)
		assert.Equal(t, 2, d.Days)
		assert.Equal(t, 0, d.Hours)
	})

	t.Run("Sub-hour window floors to zero hours", func(t *testing.T) {
		d := Duration(window(base, base.Add(45*time.Minute)), GranularityHour)
		assert.Equal(t, domain.RentalDuration{Days: 0, Hours: 0}, d)
	})
}

func TestDuration_IncompleteWindow(t *testing.T) {
	end := time.Date(2024, 5, 12, 9, 0, 0, 0, time.UTC)

	t.Run("Missing start", func(t *testing.T) {
		d := Duration(domain.RentalWindow{End: end}, GranularityDay)
		assert.Equal(t, domain.RentalDuration{}, d)
	})

	t.Run("Missing end", func(t *testing.T) {
		d := Duration(domain.RentalWindow{Start: end}, GranularityHour)
		assert.Equal(t, domain.RentalDuration{}, d)
	})
}
