package transportation

import (
	"time"

	"crewline/internal/common"
)

// Transportation is the agency-arranged transport for one accepted
// application. At most one record per application.
type Transportation struct {
	ApplicationID   common.UUID `json:"application_id"`
	EventID         common.UUID `json:"event_id"`
	VehicleCapacity int         `json:"vehicle_capacity"`
	PickupLocation  string      `json:"pickup_location"`
	DepartureTime   time.Time   `json:"departure_time"`
	ReturnTime      *time.Time  `json:"return_time,omitempty"`
	Payment         float64     `json:"payment"`
}
