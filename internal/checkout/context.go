package checkout

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/pricing"
)

// Context is the basket/checkout aggregate for one session. It owns
// every piece of checkout state — items, rental window, site
// selections, status flag — behind a single mutex, so resets are atomic
// and no caller can observe a half-cleared basket.
//
// Totals and durations are derived on demand from the live window,
// never cached, so removing an item after a window change can not
// subtract a stale per-item price.
type Context struct {
	mu         sync.Mutex
	policy     pricing.Policy
	items      []domain.BasketItem
	window     domain.RentalWindow
	rentSite   string
	returnSite string
	rentStatus string
	state      domain.CheckoutState
	lastActive time.Time
}

// PricedItem pairs a basket item with its price under the current
// window, for display.
type PricedItem struct {
	domain.BasketItem
	Price int32 `json:"price"`
}

// View is a consistent read-only snapshot of the aggregate.
type View struct {
	Items      []PricedItem          `json:"items"`
	Count      int                   `json:"count"`
	TotalPrice int32                 `json:"total_price"`
	Duration   domain.RentalDuration `json:"duration"`
	Window     domain.RentalWindow   `json:"window"`
	RentSite   string                `json:"rent_site"`
	ReturnSite string                `json:"return_site"`
	State      domain.CheckoutState  `json:"state"`
}

// Snapshot is the immutable capture taken when a submission begins.
// The in-flight request works from this copy only, so later mutations
// of the context can not corrupt it.
type Snapshot struct {
	SubmissionID string
	Request      domain.CheckoutRequest
	Items        []domain.BasketItem
	TotalPrice   int32
}

func NewContext(policy pricing.Policy) *Context {
	now := time.Now()
	return &Context{
		policy:     policy,
		window:     domain.RentalWindow{Start: now, End: now},
		state:      domain.CheckoutStateIdle,
		lastActive: now,
	}
}

// AddItem appends to the end of the basket. Duplicates are allowed and
// there is no capacity limit.
func (c *Context) AddItem(item domain.BasketItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	c.lastActive = time.Now()
}

// RemoveItem removes exactly the item at the given position, keeping
// the relative order of the rest. An out-of-range index is rejected
// without touching the basket.
func (c *Context) RemoveItem(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.items) {
		return domain.ErrIndexOutOfRange
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	c.lastActive = time.Now()
	return nil
}

// Clear empties the basket and resets the window, site selections and
// status flag in one transition.
func (c *Context) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *Context) clearLocked() {
	now := time.Now()
	c.items = nil
	c.window = domain.RentalWindow{Start: now, End: now}
	c.rentSite = ""
	c.returnSite = ""
	c.rentStatus = ""
	c.lastActive = now
}

// SetWindow replaces the rental window wholesale.
func (c *Context) SetWindow(w domain.RentalWindow) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.window = w
	c.lastActive = time.Now()
}

// SelectSites sets the rental and return site identifiers.
func (c *Context) SelectSites(rentSite, returnSite string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rentSite = rentSite
	c.returnSite = returnSite
	c.lastActive = time.Now()
}

// SetStatus sets the status flag carried verbatim into the payment
// request.
func (c *Context) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rentStatus = status
	c.lastActive = time.Now()
}

// TotalPrice recomputes the aggregate total under the live window.
func (c *Context) TotalPrice() int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return pricing.BasketTotal(c.policy, c.items, c.window)
}

// Duration recomputes the displayable rental duration.
func (c *Context) Duration() domain.RentalDuration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return pricing.Duration(c.window, c.policy.Granularity())
}

// Items returns a copy of the basket contents in insertion order.
func (c *Context) Items() []domain.BasketItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyItemsLocked()
}

func (c *Context) copyItemsLocked() []domain.BasketItem {
	items := make([]domain.BasketItem, len(c.items))
	copy(items, c.items)
	return items
}

// State reports where the context is in the submission state machine.
func (c *Context) State() domain.CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastActive reports when the context was last touched, for the idle
// sweep.
func (c *Context) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

// Snapshot returns a consistent view of the whole aggregate.
func (c *Context) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]PricedItem, len(c.items))
	for i, item := range c.items {
		items[i] = PricedItem{
			BasketItem: item,
			Price:      c.policy.ItemPrice(item.BasePrice, c.window),
		}
	}
	return View{
		Items:      items,
		Count:      len(c.items),
		TotalPrice: pricing.BasketTotal(c.policy, c.items, c.window),
		Duration:   pricing.Duration(c.window, c.policy.Granularity()),
		Window:     c.window,
		RentSite:   c.rentSite,
		ReturnSite: c.returnSite,
		State:      c.state,
	}
}

// BeginSubmission validates the guards, captures an immutable snapshot
// of the aggregate and moves the state machine to SUBMITTING. The
// payment collaborator must never be contacted when this returns an
// error: an incomplete window aborts silently and a submission already
// in flight is rejected rather than duplicated.
func (c *Context) BeginSubmission(userID string) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == domain.CheckoutStateSubmitting {
		return nil, domain.ErrSubmissionInFlight
	}
	if !c.window.Complete() {
		return nil, domain.ErrWindowIncomplete
	}

	items := c.copyItemsLocked()
	serials := make([]string, len(items))
	for i, item := range items {
		serials[i] = item.SerialNumber
	}
	total := pricing.BasketTotal(c.policy, c.items, c.window)

	snapshot := &Snapshot{
		SubmissionID: uuid.NewString(),
		Request: domain.CheckoutRequest{
			RentUserID:         userID,
			RentSerialNumbers:  serials,
			RentPlace:          c.rentSite,
			RentReturnPlace:    c.returnSite,
			RentDatetime:       c.window.Start.Format(domain.RentDatetimeLayout),
			RentReturnDatetime: c.window.End.Format(domain.RentDatetimeLayout),
			RentTotalPrice:     total,
			RentStatus:         c.rentStatus,
		},
		Items:      items,
		TotalPrice: total,
	}

	c.state = domain.CheckoutStateSubmitting
	c.lastActive = time.Now()
	return snapshot, nil
}

// FinishSuccess ends a submission that reached a successful terminal
// response: the aggregate is cleared atomically and the state machine
// returns to IDLE. The reset happens only now, never while the request
// is still in flight.
func (c *Context) FinishSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
	c.state = domain.CheckoutStateIdle
}

// FinishFailure ends a submission that failed: the state machine
// returns to IDLE and the basket is kept intact so the user can retry.
func (c *Context) FinishFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = domain.CheckoutStateIdle
	c.lastActive = time.Now()
}
