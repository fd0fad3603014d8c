package domain

type DeviceStatus string

const (
	DeviceStatusAvailable   DeviceStatus = "available"
	DeviceStatusScheduled   DeviceStatus = "scheduled"
	DeviceStatusRented      DeviceStatus = "rented"
	DeviceStatusMaintenance DeviceStatus = "maintenance"
)

// Device is a rentable unit of the fleet. Status is maintained by the rental
// lifecycle; maintenance is a manual override that blocks all scheduling
// until cleared.
type Device struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	DayRateCents int64        `json:"day_rate_cents"`
	Status       DeviceStatus `json:"status"`
}
