package booking

import (
	"time"

	domain "github.com/HamidBoasidah/namaa-sub001/internal/domain/booking"
	"github.com/HamidBoasidah/namaa-sub001/internal/httperr"
)

const (
	minDurationMinutes = 5
	maxDurationMinutes = 8 * 60
)

// validateStart enforces the request-side rules: a start strictly in
// the future plus the configured lead time, then alignment to the
// acceptance granularity (finer than the display stepping). The
// past/lead check runs first so a stale request reports its real
// problem, not whatever grid offset it happens to land on.
func validateStart(start, now time.Time, alignMinutes, minLeadMinutes int) error {
	if start.IsZero() {
		return httperr.ErrValidation("missing_start")
	}

	minAllowed := now.Add(time.Duration(minLeadMinutes) * time.Minute)
	if !start.After(minAllowed) {
		return httperr.ErrValidation("start_in_past")
	}

	if alignMinutes > 0 {
		if start.Nanosecond() != 0 || start.Unix()%int64(alignMinutes*60) != 0 {
			return httperr.ErrValidation("misaligned_start")
		}
	}

	return nil
}

func validateDuration(durationMinutes int) error {
	if durationMinutes < minDurationMinutes || durationMinutes > maxDurationMinutes {
		return httperr.ErrValidation("invalid_duration")
	}
	return nil
}

func validateBookable(ref domain.BookableRef) error {
	if !ref.Valid() {
		return httperr.ErrValidation("invalid_bookable")
	}
	return nil
}
