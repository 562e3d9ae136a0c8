package booking

import "github.com/HamidBoasidah/namaa-sub001/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
)

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrInvalidState("not_pending")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrInvalidState("not_cancellable")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrInvalidState("not_confirmed")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(s Status) bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusExpired
}
