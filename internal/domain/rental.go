package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive RentalStatus = "active"
	RentalStatusClosed RentalStatus = "closed"
)

// Rental is a time-bounded order for one device by one customer. The
// interval is half-open [Start, End) at day granularity. Device and customer
// are referenced by ID only; a rental does not own their lifecycle.
//
// Invariant: for a given device, all rentals with status "active" have
// pairwise non-overlapping intervals.
type Rental struct {
	ID         string       `json:"id"`
	DeviceID   string       `json:"device_id"`
	CustomerID string       `json:"customer_id"`
	Start      time.Time    `json:"start_date"`
	End        time.Time    `json:"end_date"`
	Address    string       `json:"address,omitempty"`
	Notes      string       `json:"notes,omitempty"`
	Status     RentalStatus `json:"status"`
	// FeeCents is set exactly once, when the rental is closed.
	FeeCents  *int64    `json:"fee_cents,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}
