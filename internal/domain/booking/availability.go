package booking

import "time"

const (
	ReasonPast   = "past"
	ReasonBooked = "booked"
)

// Slot is a candidate annotated for client-facing display. Reason is
// empty when the slot is available.
type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}
