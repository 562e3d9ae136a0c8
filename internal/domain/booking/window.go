package booking

import (
	"time"

	"github.com/HamidBoasidah/namaa-sub001/internal/models"
)

// Window is a half-open time interval [Start, End). Two windows that
// exactly touch do not overlap, so back-to-back bookings are allowed.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// NewOccupiedWindow builds the true exclusivity interval of a booking
// request: [start, start + duration + buffer).
func NewOccupiedWindow(start time.Time, durationMin, bufferMin int) Window {
	return Window{
		Start: start,
		End:   start.Add(time.Duration(durationMin+bufferMin) * time.Minute),
	}
}

// OccupiedWindowOf returns the occupied window of a stored booking,
// trailing buffer included.
func OccupiedWindowOf(b *models.Booking) Window {
	return Window{
		Start: b.StartAt,
		End:   b.EndAt.Add(time.Duration(b.BufferAfterMinutes) * time.Minute),
	}
}

// IsBlocking reports whether a booking occupies calendar time right
// now: confirmed, or pending with a still-valid hold. A lapsed pending
// hold stops blocking before the sweeper ever touches it.
func IsBlocking(b *models.Booking, now time.Time) bool {
	switch Status(b.Status) {
	case StatusConfirmed:
		return true
	case StatusPending:
		return b.ExpiresAt != nil && b.ExpiresAt.After(now)
	default:
		return false
	}
}
