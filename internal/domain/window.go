package domain

import "time"

// RentalWindow is the start/end instant pair selected by the user.
// A zero Start or End means "no window"; calculators yield zero price
// until both bounds are set.
type RentalWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Complete reports whether both bounds are set.
func (w RentalWindow) Complete() bool {
	return !w.Start.IsZero() && !w.End.IsZero()
}

// RentalDuration is a display-only decomposition of a rental window.
// It is recomputed from the window on every change and never persisted.
type RentalDuration struct {
	Days  int `json:"days"`
	Hours int `json:"hours"`
}
